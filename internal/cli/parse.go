package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqgram/pkg/pipeline"
)

// parseCommand creates the parse command, which validates a diagram and
// prints its participants and messages as JSON.
func (c *CLI) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a diagram and print its model as JSON",
		Long: `Parse validates a diagram without laying it out. Participants are listed
in column order; messages refer to them by index.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			d, err := pipeline.Parse(cmd.Context(), input)
			if err != nil {
				return err
			}
			prog.done("parsed diagram", "source", name, "participants", len(d.Participants), "messages", len(d.Messages))

			data, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}
