package chain_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// words is a minimal capability set over strings used across the tests.
type words struct {
	copies    int
	destroyed []string
	failCopy  string
}

func (w *words) Equal(a, b string) bool { return a == b }

func (w *words) Copy(v string) (string, error) {
	if w.failCopy != "" && v == w.failCopy {
		return "", errors.New("out of memory")
	}
	w.copies++
	return strings.Clone(v), nil
}

func (w *words) Destroy(v string) { w.destroyed = append(w.destroyed, v) }

func (w *words) Display(out io.Writer, v string) error {
	_, err := fmt.Fprint(out, v)
	return err
}

func (w *words) IsTerminal(v string) bool { return strings.HasSuffix(v, ".") }

// keyedWords adds the optional Keyer capability.
type keyedWords struct{ words }

func (k *keyedWords) Key(v string) string { return v }

// collidingWords maps every value to the same key.
type collidingWords struct{ words }

func (c *collidingWords) Key(string) string { return "same" }
