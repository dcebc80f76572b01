package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/pipeline"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

// layoutFlags are the spacing overrides accepted by render, layout and serve.
type layoutFlags struct {
	participantPadding int
	messagePadding     int
	minNameWidth       int
	boxGap             int
	edgeSpacing        int
	margin             int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	def := layout.DefaultConfig()
	fs := cmd.Flags()
	fs.IntVar(&f.participantPadding, "participant-padding", def.ParticipantPaddingX, "blank cells between a name and its box border")
	fs.IntVar(&f.messagePadding, "message-padding", def.MessagePaddingX, "blank cells on each side of a message label")
	fs.IntVar(&f.minNameWidth, "min-name-width", def.MinNameWidth, "minimum name width inside boxes")
	fs.IntVar(&f.boxGap, "box-gap", def.BoxGap, "minimum blank cells between adjacent boxes")
	fs.IntVar(&f.edgeSpacing, "edge-spacing", def.EdgeSpacing, "spacer rows around each message")
	fs.IntVar(&f.margin, "margin", def.MarginLeft, "blank cells around the whole diagram")
}

// apply copies every flag the user set explicitly onto cfg.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *layout.Config) {
	fs := cmd.Flags()
	if fs.Changed("participant-padding") {
		cfg.ParticipantPaddingX = f.participantPadding
	}
	if fs.Changed("message-padding") {
		cfg.MessagePaddingX = f.messagePadding
	}
	if fs.Changed("min-name-width") {
		cfg.MinNameWidth = f.minNameWidth
	}
	if fs.Changed("box-gap") {
		cfg.BoxGap = f.boxGap
	}
	if fs.Changed("edge-spacing") {
		cfg.EdgeSpacing = f.edgeSpacing
	}
	if fs.Changed("margin") {
		cfg.MarginLeft = f.margin
		cfg.MarginRight = f.margin
		cfg.MarginTop = f.margin
		cfg.MarginBottom = f.margin
	}
}

// diagramFlags are the flags of every command that runs the pipeline.
type diagramFlags struct {
	config  string
	ascii   bool
	format  string
	refresh bool
	cache   cacheFlags
	layout  layoutFlags
}

func (f *diagramFlags) register(cmd *cobra.Command) {
	f.registerShared(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", pipeline.DefaultFormat, "output format: text, json")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// registerShared registers the flags that also apply to long-running
// commands, which choose the format per request.
func (f *diagramFlags) registerShared(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file (.toml, .yaml or .yml)")
	fs.BoolVar(&f.ascii, "ascii", false, "draw with ASCII characters only")
	fs.BoolVar(&f.cache.noCache, "no-cache", false, "disable caching")
	fs.StringVar(&f.cache.redisURL, "redis-url", "", "use a Redis cache (redis://host:port/db)")
	f.layout.register(cmd)
}

// resolve merges defaults, the config file and explicit flags, in that
// order of precedence.
func (f *diagramFlags) resolve(cmd *cobra.Command) (pipeline.Options, cacheFlags, error) {
	fc, err := loadConfig(f.config)
	if err != nil {
		return pipeline.Options{}, cacheFlags{}, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		fc.Format = f.format
	}
	if fs.Changed("ascii") {
		fc.ASCII = f.ascii
	}
	f.layout.apply(cmd, &fc.Layout)

	cf := cacheFlags{noCache: fc.Cache.Disabled, redisURL: fc.Cache.RedisURL}
	if fs.Changed("no-cache") {
		cf.noCache = f.cache.noCache
	}
	if fs.Changed("redis-url") {
		cf.redisURL = f.cache.redisURL
	}

	opts := pipeline.Options{
		Layout:  &fc.Layout,
		ASCII:   fc.ASCII,
		Format:  fc.Format,
		Refresh: f.refresh,
	}
	if err := pipeline.ValidateFormat(opts.Format); err != nil {
		return pipeline.Options{}, cacheFlags{}, err
	}
	if err := opts.Layout.Validate(); err != nil {
		return pipeline.Options{}, cacheFlags{}, err
	}
	return opts, cf, nil
}

// readInput reads the diagram source named by args: a file path, "-" or
// nothing for standard input.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read standard input")
		}
		return data, "<stdin>", nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "diagram file %s not found", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, path, nil
}
