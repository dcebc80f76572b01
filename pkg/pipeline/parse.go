package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/seqgram/pkg/observability"
	"github.com/matzehuels/seqgram/pkg/seq/model"
	"github.com/matzehuels/seqgram/pkg/seq/parse"
)

// Parse tokenizes input and builds the diagram model.
func Parse(ctx context.Context, input []byte) (*model.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(input))
	start := time.Now()

	stmts, err := parse.Parse(string(input))
	if err != nil {
		hooks.OnParseComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	d, err := model.Build(stmts)
	hooks.OnParseComplete(ctx, len(stmts), time.Since(start), err)
	return d, err
}
