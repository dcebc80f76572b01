package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqgram/pkg/cache"
	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/observability"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

const clientServer = "Client -> Server: GET /api/data\nServer -> Client: JSONResponse\n"

func TestExecuteText(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(clientServer), Options{})
	require.NoError(t, err)

	require.Len(t, res.Lines, 15)
	assert.Equal(t, " ┌────────┐      ┌────────┐ ", res.Lines[1])
	assert.Equal(t, "     │──────────────>│      ", res.Lines[6])
	assert.Equal(t, "     │<──────────────│      ", res.Lines[9])
	assert.Equal(t, strings.Join(res.Lines, "\n")+"\n", string(res.Output))

	assert.Equal(t, 2, res.Stats.Participants)
	assert.Equal(t, 2, res.Stats.Messages)
	assert.Equal(t, 28, res.Stats.Width)
	assert.Equal(t, 15, res.Stats.Height)
	assert.Equal(t, []string{"Client", "Server"}, res.Diagram.Names())
}

func TestExecuteJSON(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(clientServer), Options{Format: FormatJSON})
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(res.Output, &doc))
	assert.Equal(t, res.Lines, doc.Lines)
	assert.Equal(t, 28, doc.Width)
	assert.Equal(t, 15, doc.Height)
	require.NotNil(t, doc.Geometry)
	assert.Len(t, doc.Geometry.Messages, 2)
}

func TestExecuteASCII(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(clientServer), Options{ASCII: true})
	require.NoError(t, err)

	for i, line := range res.Lines {
		for _, c := range line {
			assert.Less(t, c, rune(0x80), "line %d contains %q", i, c)
		}
	}
	assert.Equal(t, " +--------+      +--------+ ", res.Lines[1])
}

func TestExecuteCustomLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.MarginTop = 0
	cfg.MarginBottom = 0

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte("A -> B: x"), Options{Layout: &cfg})
	require.NoError(t, err)
	assert.Equal(t, " ┌───┐┌───┐ ", res.Lines[0])
	assert.Equal(t, " └───┘└───┘ ", res.Lines[len(res.Lines)-1])
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		code errors.Code
		line int
	}{
		{"malformed line", "A -> B: ok\nnot a statement", Options{}, errors.ErrCodeMalformedLine, 2},
		{"empty participant", " -> B: x", Options{}, errors.ErrCodeEmptyParticipant, 1},
		{"no participants", "\n\n", Options{}, errors.ErrCodeNoParticipants, 0},
		{"bad format", "A -> B: x", Options{Format: "svg"}, errors.ErrCodeInvalidFormat, 0},
		{"negative spacing", "A -> B: x", Options{Layout: &layout.Config{EdgeSpacing: -1}}, errors.ErrCodeInvalidLayout, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil, nil)
			_, err := r.Execute(context.Background(), []byte(tt.in), tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Equal(t, tt.line, errors.LineOf(err))
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(ctx, []byte(clientServer), Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, []byte(clientServer), Options{})
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)
	assert.False(t, first.CacheInfo.OutputHit)

	second, err := r.Execute(ctx, []byte(clientServer), Options{})
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LayoutHit)
	assert.True(t, second.CacheInfo.OutputHit)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, first.Geometry, second.Geometry)

	ascii, err := r.Execute(ctx, []byte(clientServer), Options{ASCII: true})
	require.NoError(t, err)
	assert.True(t, ascii.CacheInfo.LayoutHit, "glyphs do not affect geometry")
	assert.False(t, ascii.CacheInfo.OutputHit, "glyphs change the output key")

	jsonRes, err := r.Execute(ctx, []byte(clientServer), Options{Format: FormatJSON})
	require.NoError(t, err)
	jsonAgain, err := r.Execute(ctx, []byte(clientServer), Options{Format: FormatJSON})
	require.NoError(t, err)
	assert.True(t, jsonAgain.CacheInfo.OutputHit)
	assert.Equal(t, jsonRes.Lines, jsonAgain.Lines)

	refreshed, err := r.Execute(ctx, []byte(clientServer), Options{Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.CacheInfo.LayoutHit)
	assert.False(t, refreshed.CacheInfo.OutputHit)
	assert.Equal(t, first.Output, refreshed.Output)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, fmt.Errorf("backend down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return fmt.Errorf("backend down")
}

func (failingCache) Delete(context.Context, string) error { return nil }
func (failingCache) Close() error                         { return nil }

func TestExecuteToleratesCacheFailures(t *testing.T) {
	r := NewRunner(failingCache{}, nil, nil)
	res, err := r.Execute(context.Background(), []byte(clientServer), Options{})
	require.NoError(t, err)
	assert.Len(t, res.Lines, 15)
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseComplete(_ context.Context, n int, _ time.Duration, err error) {
	h.record(fmt.Sprintf("parse:%d:%v", n, err == nil))
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, w, ht int, _ time.Duration, _ error) {
	h.record(fmt.Sprintf("layout:%dx%d", w, ht))
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ time.Duration, _ error) {
	h.record("render:" + format)
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.record("miss:" + keyType)
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.record("hit:" + keyType)
}

func TestExecuteEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(fc, nil, nil)

	_, err = r.Execute(context.Background(), []byte(clientServer), Options{})
	require.NoError(t, err)
	_, err = r.Execute(context.Background(), []byte(clientServer), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"parse:2:true",
		"miss:geometry",
		"layout:28x15",
		"miss:output",
		"render:text",
		"parse:2:true",
		"hit:geometry",
		"hit:output",
	}, h.events)
}

func TestEncodeDecode(t *testing.T) {
	g := &layout.Geometry{Width: 3, Height: 2}
	lines := []string{"abc", "   "}

	for _, format := range []string{FormatText, FormatJSON} {
		data, err := Encode(format, g, lines)
		require.NoError(t, err, format)
		back, err := Decode(format, data)
		require.NoError(t, err, format)
		assert.Equal(t, lines, back, format)
	}

	_, err := Encode("png", g, lines)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestOptionsValidateIdempotent(t *testing.T) {
	var o Options
	require.NoError(t, o.ValidateAndSetDefaults())
	assert.Equal(t, FormatText, o.Format)
	require.NotNil(t, o.Layout)
	assert.Equal(t, layout.DefaultConfig(), *o.Layout)
	assert.NotNil(t, o.Logger)

	o.Format = "bogus"
	assert.NoError(t, o.ValidateAndSetDefaults(), "second call is a no-op")
}
