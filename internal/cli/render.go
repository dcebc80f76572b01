package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  diagramFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a sequence diagram",
		Long: `Render reads statements of the form

  <participant> -> <participant> : <message text>

one per line, from a file or standard input, and prints the diagram.
Participants appear left to right in order of first mention.`,
		Example: `  seqgram render flow.seq
  echo "Client -> Server: GET /" | seqgram render --ascii
  seqgram render flow.seq -f json -o flow.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, cf, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cf, nil)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			res, err := runner.Execute(ctx, input, opts)
			if err != nil {
				return err
			}
			prog.done("rendered diagram", "source", name, "width", res.Stats.Width, "height", res.Stats.Height)

			if output == "" {
				_, err := cmd.OutOrStdout().Write(res.Output)
				return err
			}
			if err := os.WriteFile(output, res.Output, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %s", name)
			printFile(output)
			printStats(res.Stats.Participants, res.Stats.Messages, res.CacheInfo.OutputHit)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
