package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/observability"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
	"github.com/matzehuels/seqgram/pkg/seq/render"
)

// Document is the JSON output format.
type Document struct {
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Lines    []string         `json:"lines"`
	Geometry *layout.Geometry `json:"geometry"`
}

// Render paints g and returns its rows.
func Render(ctx context.Context, g *layout.Geometry, ascii bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var opts []render.RenderOption
	if ascii {
		opts = append(opts, render.WithASCII())
	}
	return render.Lines(g, opts...)
}

// Encode serializes rendered lines in format. Text output ends with a
// newline after the last row.
func Encode(format string, g *layout.Geometry, lines []string) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	case FormatJSON:
		data, err := json.MarshalIndent(Document{
			Width:    g.Width,
			Height:   g.Height,
			Lines:    lines,
			Geometry: g,
		}, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return append(data, '\n'), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// Decode recovers rendered lines from output produced by Encode.
func Decode(format string, data []byte) ([]string, error) {
	switch format {
	case FormatText:
		return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
	case FormatJSON:
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode json")
		}
		return doc.Lines, nil
	default:
		return nil, ValidateFormat(format)
	}
}

// renderOutput runs Render and Encode with render hooks around them.
func renderOutput(ctx context.Context, g *layout.Geometry, opts Options) ([]string, []byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	lines, err := Render(ctx, g, opts.ASCII)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
		return nil, nil, err
	}
	out, err := Encode(opts.Format, g, lines)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	return lines, out, err
}
