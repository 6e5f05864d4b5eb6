package text_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/markov/pkg/adapters/text"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type words struct{}

func (words) Equal(a, b string) bool        { return a == b }
func (words) Copy(v string) (string, error) { return v, nil }
func (words) Destroy(string)                {}
func (words) IsTerminal(v string) bool      { return strings.HasSuffix(v, ".") }
func (words) Display(w io.Writer, v string) error {
	_, err := fmt.Fprint(w, v)
	return err
}

func TestTextSink_Format(t *testing.T) {
	var buf bytes.Buffer
	sink := text.NewSink[string](&buf, words{})
	ctx := context.Background()

	require.NoError(t, sink.Emit(ctx, ports.Walk[string]{Label: "Tweet", Index: 1, States: []string{"hello", "big", "world."}}))
	require.NoError(t, sink.Emit(ctx, ports.Walk[string]{Label: "Tweet", Index: 2, States: []string{"solo"}}))
	require.NoError(t, sink.Emit(ctx, ports.Walk[string]{Label: "Tweet", Index: 3}))
	require.NoError(t, sink.Close())

	assert.Equal(t, "Tweet 1: hello big world.\nTweet 2: solo\nTweet 3: \n", buf.String())
}

func TestTextSink_Closed(t *testing.T) {
	var buf bytes.Buffer
	sink := text.NewSink[string](&buf, words{})
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())

	err := sink.Emit(context.Background(), ports.Walk[string]{Label: "Tweet", Index: 1})
	assert.ErrorIs(t, err, ports.ErrSinkClosed)
	assert.Empty(t, buf.String())
}

func TestTextSink_Color(t *testing.T) {
	var buf bytes.Buffer
	sink := text.NewSink[string](&buf, words{}, text.WithColor(termenv.TrueColor))
	require.NoError(t, sink.Emit(context.Background(), ports.Walk[string]{Label: "Tweet", Index: 1, States: []string{"hi", "there."}}))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Tweet 1: ")
	assert.Contains(t, out, "hi ")
	assert.Contains(t, out, "there.")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTextSink_AsciiProfileIsPlain(t *testing.T) {
	var buf bytes.Buffer
	sink := text.NewSink[string](&buf, words{}, text.WithColor(termenv.Ascii))
	require.NoError(t, sink.Emit(context.Background(), ports.Walk[string]{Label: "Walk", Index: 4, States: []string{"end."}}))
	assert.Equal(t, "Walk 4: end.\n", buf.String())
}
