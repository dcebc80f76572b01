// Package pkg provides the core libraries for seqgram sequence diagrams.
//
// # Overview
//
// seqgram turns a list of message statements into a sequence diagram drawn
// with box-drawing characters. The pkg directory is organized into three
// areas:
//
//  1. [seq] - Domain logic (parsing, model, layout, rendering, canvas)
//  2. [pipeline] - Orchestration (parse → layout → render) with caching
//  3. Infrastructure: [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow through seqgram:
//
//	Diagram text
//	     ↓
//	[seq/parse]   statements with line numbers
//	     ↓
//	[seq/model]   participants in order of first mention, messages
//	     ↓
//	[seq/layout]  column centers, rows, box and arrow geometry
//	     ↓
//	[seq/render]  glyphs painted onto a [seq/canvas]
//	     ↓
//	text lines or a JSON document
//
// # Quick Start
//
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, err := r.Execute(ctx, []byte("Client -> Server: GET /"), pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Output)
//
// The stages can also be used on their own:
//
//	stmts, _ := parse.Parse(src)
//	d, _ := model.Build(stmts)
//	g, _ := layout.Compute(d, layout.DefaultConfig())
//	lines, _ := render.Lines(g, render.WithASCII())
//
// # Main Packages
//
// [seq/parse] - Line-oriented tokenizer and parser for
// "A -> B: text" and "A <- B: text" statements. Syntax errors carry the
// offending line number.
//
// [seq/model] - Builds the participant list and normalized messages.
//
// [seq/layout] - Pure geometry computation from a model and a [layout.Config].
// Labels are never truncated; spans widen instead.
//
// [seq/render] - Paints geometry with a Unicode or ASCII glyph set.
//
// [seq/canvas] - Fixed-size rune grid with display-width aware text.
//
// [pipeline] - The complete pipeline used by the CLI and the HTTP server,
// caching geometry and output separately.
//
// [cache] - File, Redis and null cache backends with content-addressed keys.
//
// [errors] - Structured error codes shared by every stage.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// [seq]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq
// [seq/parse]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq/parse
// [seq/model]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq/model
// [seq/layout]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq/layout
// [layout.Config]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq/layout#Config
// [seq/render]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq/render
// [seq/canvas]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/seq/canvas
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/seqgram/pkg/buildinfo
package pkg
