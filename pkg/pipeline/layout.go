package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/seqgram/pkg/observability"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
	"github.com/matzehuels/seqgram/pkg/seq/model"
)

// Layout computes the geometry of d using cfg.
func Layout(ctx context.Context, d *model.Diagram, cfg layout.Config) (*layout.Geometry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(d.Participants), len(d.Messages))
	start := time.Now()

	g, err := layout.Compute(d, cfg)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, g.Width, g.Height, time.Since(start), nil)
	return g, nil
}
