package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqgram/pkg/cache"
	"github.com/matzehuels/seqgram/pkg/observability"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
	"github.com/matzehuels/seqgram/pkg/seq/model"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one Runner may serve many
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs parse → layout → render on input.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	d, err := Parse(ctx, input)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Participants = len(d.Participants)
	result.Stats.Messages = len(d.Messages)

	logger.Debug("parsed diagram",
		"participants", len(d.Participants),
		"messages", len(d.Messages),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	g, layoutHit, err := r.LayoutWithCacheInfo(ctx, cache.Hash(input), d, opts)
	if err != nil {
		return nil, err
	}
	result.Geometry = g
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Width = g.Width
	result.Stats.Height = g.Height
	result.CacheInfo.LayoutHit = layoutHit

	logger.Debug("computed layout",
		"width", g.Width,
		"height", g.Height,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	lines, out, outputHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Lines = lines
	result.Output = out
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.OutputHit = outputHit

	logger.Debug("rendered diagram",
		"format", opts.Format,
		"ascii", opts.ASCII,
		"cached", outputHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the geometry of d with caching and reports
// whether it came from the cache. inputHash identifies the source text.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, inputHash string, d *model.Diagram, opts Options) (*layout.Geometry, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(inputHash, *opts.Layout)

	if !opts.Refresh {
		if data, hit := r.lookup(ctx, key, cache.KeyTypeGeometry, opts.Logger); hit {
			if g, err := layout.Unmarshal(data); err == nil {
				return g, true, nil
			}
			// Undecodable entries fall through and are overwritten.
		}
	}

	g, err := Layout(ctx, d, *opts.Layout)
	if err != nil {
		return nil, false, err
	}
	if data, err := layout.Marshal(g); err == nil {
		r.store(ctx, key, cache.KeyTypeGeometry, data, cache.TTLGeometry, opts.Logger)
	}
	return g, false, nil
}

// RenderWithCacheInfo renders and encodes g with caching and reports
// whether the output came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *layout.Geometry, opts Options) ([]string, []byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}

	geometryData, err := layout.Marshal(g)
	if err != nil {
		return nil, nil, false, fmt.Errorf("serialize geometry for cache key: %w", err)
	}
	key := r.Keyer.OutputKey(cache.Hash(geometryData), opts.OutputKeyOpts())

	if !opts.Refresh {
		if data, hit := r.lookup(ctx, key, cache.KeyTypeOutput, opts.Logger); hit {
			if lines, err := Decode(opts.Format, data); err == nil {
				return lines, data, true, nil
			}
		}
	}

	lines, out, err := renderOutput(ctx, g, opts)
	if err != nil {
		return nil, nil, false, err
	}
	r.store(ctx, key, cache.KeyTypeOutput, out, cache.TTLOutput, opts.Logger)
	return lines, out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads key from the cache. Backend errors are logged and treated as
// misses so that a broken cache never fails a render.
func (r *Runner) lookup(ctx context.Context, key, keyType string, logger *log.Logger) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
