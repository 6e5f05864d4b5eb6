package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpus = `the cat sat on the mat.
the dog sat on the cat.
a cat is not a dog but the dog is a friend.
`

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(corpus), 0o644))
	return path
}

func newApp(cfg config.Config) (*cli.App, *bytes.Buffer) {
	var out bytes.Buffer
	return cli.New(cfg, &out, nil), &out
}

func TestWalks_Tweets(t *testing.T) {
	path := writeCorpus(t)

	app, out := newApp(config.Default())
	require.NoError(t, app.Walks(context.Background(), cli.ClientTweets, []string{"7", "3", path}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for i, line := range lines {
		prefix := "Tweet " + string(rune('1'+i)) + ": "
		assert.True(t, strings.HasPrefix(line, prefix), "line %q", line)
		words := strings.Fields(strings.TrimPrefix(line, prefix))
		assert.NotEmpty(t, words)
		assert.LessOrEqual(t, len(words), 20)
	}
}

func TestWalks_Deterministic(t *testing.T) {
	path := writeCorpus(t)

	run := func(client string, args []string) string {
		app, out := newApp(config.Default())
		require.NoError(t, app.Walks(context.Background(), client, args))
		return out.String()
	}

	assert.Equal(t,
		run(cli.ClientTweets, []string{"11", "5", path}),
		run(cli.ClientTweets, []string{"11", "5", path}))
	assert.Equal(t,
		run(cli.ClientSnakes, []string{"3", "4"}),
		run(cli.ClientSnakes, []string{"3", "4"}))
}

func TestWalks_Snakes(t *testing.T) {
	app, out := newApp(config.Default())
	require.NoError(t, app.Walks(context.Background(), cli.ClientSnakes, []string{"1", "2"}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Random Walk 1: [1]"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Random Walk 2: [1]"), lines[1])
}

func TestWalks_MaxWords(t *testing.T) {
	path := writeCorpus(t)
	app, out := newApp(config.Default())

	// Only "the cat" is read: a two-state chain.
	require.NoError(t, app.Walks(context.Background(), cli.ClientTweets, []string{"1", "1", path, "2"}))
	assert.Equal(t, "Tweet 1: the cat\n", out.String())
}

func TestWalks_Errors(t *testing.T) {
	app, out := newApp(config.Default())
	ctx := context.Background()

	err := app.Walks(ctx, cli.ClientTweets, []string{"1", "1", filepath.Join(t.TempDir(), "missing.txt")})
	assertExit(t, err, cli.PathMessage)

	err = app.Walks(ctx, cli.ClientTweets, []string{"1"})
	assertExit(t, err, cli.UsageMessage)

	err = app.Walks(ctx, cli.ClientSnakes, []string{"1", "2", "3"})
	assertExit(t, err, cli.UsageMessage)

	err = app.Walks(ctx, "chess", nil)
	assert.ErrorIs(t, err, domain.ErrInput)

	assert.Empty(t, out.String(), "nothing is written before a failure")
}

func TestWalks_RedisSink(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Sink.Type = config.SinkRedis
	cfg.Sink.Redis.Addr = mr.Addr()
	cfg.Sink.Redis.Key = "test:walks"

	app, out := newApp(cfg)
	require.NoError(t, app.Walks(context.Background(), cli.ClientSnakes, []string{"5", "3"}))
	assert.Empty(t, out.String())

	items, err := mr.List("test:walks")
	require.NoError(t, err)
	require.Len(t, items, 3)

	var rec ports.WalkRecord
	require.NoError(t, json.Unmarshal([]byte(items[0]), &rec))
	assert.Equal(t, "Random Walk", rec.Label)
	assert.Equal(t, 1, rec.Index)
	assert.Equal(t, "[1]", strings.Fields(rec.States[0])[0])
}

func TestGraph(t *testing.T) {
	app, out := newApp(config.Default())
	require.NoError(t, app.Graph(context.Background(), cli.ClientSnakes, []string{"1", "0"}))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "graph TD\n"))
	assert.Contains(t, got, `n99(("[100]"))`)
	assert.NotContains(t, got, "classDef")

	out.Reset()
	require.NoError(t, app.Graph(context.Background(), cli.ClientSnakes, []string{"1", "1"}))
	assert.Contains(t, out.String(), "classDef current")
}

func TestReport(t *testing.T) {
	path := writeCorpus(t)
	app, out := newApp(config.Default())

	require.NoError(t, app.Report(context.Background(), cli.ClientTweets, []string{"2", "2", path}))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "# Tweet chain\n"), "plain markdown when not a terminal")
	assert.Contains(t, got, "## Top transitions")
	assert.Contains(t, got, "1. **Tweet 1:**")
	assert.Contains(t, got, "2. **Tweet 2:**")
}

func TestHandler(t *testing.T) {
	app, _ := newApp(config.Default())
	h, release, err := app.Handler(context.Background(), cli.ClientSnakes, []string{"9", "0"})
	require.NoError(t, err)
	defer release()

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/walk?max=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec ports.WalkRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "Random Walk", rec.Label)
	assert.LessOrEqual(t, len(rec.States), 5)

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "markov_nodes_inserted_total 100")
}

func TestEngine(t *testing.T) {
	app, _ := newApp(config.Default())
	engine, release, err := app.Engine(context.Background(), cli.ClientSnakes, []string{"9", "0"})
	require.NoError(t, err)
	defer release()

	assert.Equal(t, config.Default().Snakes.MaxLength, engine.DefaultLength())
	rec, err := engine.Walk(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Index)
	assert.LessOrEqual(t, len(rec.States), 4)

	snap, err := engine.Inspect()
	require.NoError(t, err)
	assert.Len(t, snap.Nodes, 100)
}

func TestServeMCP_UnknownClient(t *testing.T) {
	app, _ := newApp(config.Default())
	var out bytes.Buffer
	err := app.ServeMCP(context.Background(), "dice", nil, strings.NewReader(""), &out)
	assert.ErrorIs(t, err, domain.ErrInput)
	assert.Empty(t, out.String())
}

func TestServe_Shutdown(t *testing.T) {
	app, _ := newApp(config.Default())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- app.Serve(ctx, &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(cli.ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
