// Package pipeline runs the complete diagram pipeline for every entry point.
//
// The CLI and the HTTP server both go through [Runner.Execute] so that a
// diagram renders identically regardless of how it was requested.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: tokenize statements and build the participant/message model
//  2. Layout: compute the character-grid geometry
//  3. Render: paint the geometry and serialize it as text or JSON
//
// Layout and render results are cached by content hash. Parsing is not
// cached; it is needed to validate every input and is cheap.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
//
// Stages can also be run on their own:
//
//	d, err := pipeline.Parse(ctx, input)
//	g, err := pipeline.Layout(ctx, d, cfg)
//	lines, err := pipeline.Render(ctx, g, false)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqgram/pkg/cache"
	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
	"github.com/matzehuels/seqgram/pkg/seq/model"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatText

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	// Layout overrides the default spacing. Nil means layout.DefaultConfig().
	Layout *layout.Config `json:"layout,omitempty"`

	// ASCII selects the ASCII glyph set instead of box-drawing characters.
	ASCII bool `json:"ascii,omitempty"`

	// Format is "text" (default) or "json".
	Format string `json:"format,omitempty"`

	// Refresh bypasses cache reads. Fresh results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Layout == nil {
		cfg := layout.DefaultConfig()
		o.Layout = &cfg
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// OutputKeyOpts returns cache key options for the serialized output.
func (o *Options) OutputKeyOpts() cache.OutputKeyOpts {
	return cache.OutputKeyOpts{Format: o.Format, ASCII: o.ASCII}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the parsed model.
	Diagram *model.Diagram

	// Geometry is the computed layout.
	Geometry *layout.Geometry

	// Lines are the rendered rows, each of display width Geometry.Width.
	Lines []string

	// Output is Lines serialized in the requested format.
	Output []byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Participants int
	Messages     int
	Width        int
	Height       int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool
	OutputHit bool
}
