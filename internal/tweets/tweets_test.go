package tweets_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/markov/internal/tweets"
	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edges lists every recorded transition as "from->to xN".
func edges(c *chain.Chain[string]) map[string]int {
	out := map[string]int{}
	for _, n := range c.Nodes() {
		for _, t := range n.Transitions() {
			out[n.Value()+"->"+t.Target.Value()] = t.Count
		}
	}
	return out
}

func values(c *chain.Chain[string]) []string {
	var out []string
	for _, n := range c.Nodes() {
		out = append(out, n.Value())
	}
	return out
}

func TestFill_TerminalBreak(t *testing.T) {
	c := chain.New[string](tweets.Words{})
	defer c.Destroy()

	n, err := tweets.Fill(context.Background(), c, strings.NewReader("a b c. d e"), 0)
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"a", "b", "c.", "d", "e"}, values(c))
	assert.Equal(t, map[string]int{"a->b": 1, "b->c.": 1, "d->e": 1}, edges(c))
}

func TestFill_LineBreakResets(t *testing.T) {
	c := chain.New[string](tweets.Words{})
	defer c.Destroy()

	input := "one two\nthree one two\r\n\n\tone  two three."
	_, err := tweets.Fill(context.Background(), c, strings.NewReader(input), 0)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"one->two":    3,
		"three->one":  1,
		"two->three.": 1,
	}, edges(c))
	assert.Equal(t, []string{"one", "two", "three", "three."}, values(c))
}

func TestFill_LongLineKeepsChaining(t *testing.T) {
	c := chain.New[string](tweets.Words{})
	defer c.Destroy()

	words := make([]string, 300)
	for i := range words {
		words[i] = fmt.Sprintf("w%03d", i)
	}
	line := strings.Join(words, " ")
	require.Greater(t, len(line), 1000)

	n, err := tweets.Fill(context.Background(), c, strings.NewReader(line+"\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 300, n)
	assert.Equal(t, 299, c.TransitionCount(), "no break inside a line past 1000 bytes")
	assert.Equal(t, 1, edges(c)["w199->w200"])
}

func TestFill_MaxWords(t *testing.T) {
	tests := []struct {
		name     string
		maxWords int
		want     int
	}{
		{name: "Unlimited", maxWords: 0, want: 6},
		{name: "Negative", maxWords: -3, want: 6},
		{name: "MidLine", maxWords: 2, want: 2},
		{name: "AcrossLines", maxWords: 4, want: 4},
		{name: "Larger", maxWords: 100, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := chain.New[string](tweets.Words{})
			defer c.Destroy()

			n, err := tweets.Fill(context.Background(), c, strings.NewReader("a b c\nd e f."), tt.maxWords)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	c := chain.New[string](tweets.Words{})
	defer c.Destroy()
	_, err := tweets.Fill(context.Background(), c, strings.NewReader("a b c\nd e f."), 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a->b": 1}, edges(c))
}

func TestFill_LineTooLong(t *testing.T) {
	c := chain.New[string](tweets.Words{})
	defer c.Destroy()

	long := strings.Repeat("x", tweets.MaxLineBytes+1)
	_, err := tweets.Fill(context.Background(), c, strings.NewReader(long), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInput)
	assert.ErrorIs(t, err, tweets.ErrLineTooLong)
}

func TestFill_Canceled(t *testing.T) {
	c := chain.New[string](tweets.Words{})
	defer c.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tweets.Fill(ctx, c, strings.NewReader("a b"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWords(t *testing.T) {
	w := tweets.Words{}
	assert.True(t, w.IsTerminal("end."))
	assert.False(t, w.IsTerminal("end.!"))
	assert.False(t, w.IsTerminal("mid"))
	assert.True(t, w.Equal("x", "x"))
	assert.Equal(t, "x", w.Key("x"))

	rendered, err := domain.Render[string](w, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", rendered)
}
