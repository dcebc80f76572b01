package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqgram/internal/server"
	"github.com/matzehuels/seqgram/pkg/cache"
)

// serveKeyPrefix keeps server cache entries apart from CLI entries when both
// share a Redis instance.
const serveKeyPrefix = "serve:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   diagramFlags
		addr    string
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagram rendering over HTTP",
		Long: `Serve starts an HTTP server that renders diagrams posted to it.

  POST /v1/render   diagram source in the body, ?format=json and ?ascii=true
  POST /v1/layout   diagram source in the body, geometry JSON in the response
  GET  /healthz     liveness probe

The server stops gracefully on interrupt.`,
		Example: `  seqgram serve --addr :9000
  curl --data-binary @flow.seq localhost:8080/v1/render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, cf, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cf, cache.NewScopedKeyer(nil, serveKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				Addr:         addr,
				MaxBodyBytes: maxBody,
				Timeout:      timeout,
				Layout:       *opts.Layout,
				ASCII:        opts.ASCII,
			})

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx)
		},
	}

	flags.registerShared(cmd)
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")

	return cmd
}
