// Package tweets turns a text corpus into a word-level Markov chain.
package tweets

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
)

const (
	// Label prefixes every generated tweet.
	Label = "Tweet"
	// MaxLength bounds the words of one tweet.
	MaxLength = 20
	// Delimiters separate words within a line.
	Delimiters = " \n\t\r"
	// MaxLineBytes is the longest line the tokenizer accepts.
	MaxLineBytes = 1 << 20
)

// ErrLineTooLong is returned when an input line exceeds MaxLineBytes.
var ErrLineTooLong = errors.New("line too long")

// Words is the capability set for word states.
type Words struct{}

func (Words) Equal(a, b string) bool { return a == b }

// Copy clones the word so the chain never aliases the tokenizer's buffer.
func (Words) Copy(v string) (string, error) { return strings.Clone(v), nil }

func (Words) Destroy(string) {}

func (Words) Display(w io.Writer, v string) error {
	_, err := io.WriteString(w, v)
	return err
}

// IsTerminal reports whether the word ends a sentence.
func (Words) IsTerminal(v string) bool {
	return strings.HasSuffix(v, ".")
}

func (Words) Key(v string) string { return v }

var (
	_ domain.Capabilities[string] = Words{}
	_ domain.Keyer[string]        = Words{}
)

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// Fill reads r line by line and feeds every word into c. Consecutive words of
// the same line are recorded as transitions, except after a terminal word.
// Reading stops after maxWords words; maxWords <= 0 reads everything.
// It returns the number of words read.
func Fill(ctx context.Context, c *chain.Chain[string], r io.Reader, maxWords int) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineBytes)

	count := 0
	for (maxWords <= 0 || count < maxWords) && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		var prev *chain.Node[string]
		for _, word := range strings.FieldsFunc(scanner.Text(), isDelimiter) {
			if maxWords > 0 && count >= maxWords {
				break
			}
			node, err := c.InsertOrGet(word)
			if err != nil {
				return count, fmt.Errorf("insert %q: %w", word, err)
			}
			if prev != nil {
				if err := c.RecordTransition(prev, node); err != nil {
					return count, fmt.Errorf("record %q: %w", word, err)
				}
			}
			if c.Capabilities().IsTerminal(word) {
				prev = nil
			} else {
				prev = node
			}
			count++
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return count, fmt.Errorf("%w: %w", domain.ErrInput, ErrLineTooLong)
		}
		return count, fmt.Errorf("read corpus: %w", err)
	}
	return count, nil
}
