package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqgram/pkg/pipeline"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

// layoutCommand creates the layout command, which prints the computed
// geometry as JSON for debugging and for external renderers.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		configPath string
		flags      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [file|-]",
		Short: "Compute diagram geometry and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			flags.apply(cmd, &fc.Layout)

			prog := newProgress(c.Logger)
			d, err := pipeline.Parse(ctx, input)
			if err != nil {
				return err
			}
			g, err := pipeline.Layout(ctx, d, fc.Layout)
			if err != nil {
				return err
			}
			prog.done("computed layout", "source", name, "width", g.Width, "height", g.Height)

			data, err := layout.Marshal(g)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	flags.register(cmd)

	return cmd
}
