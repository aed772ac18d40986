package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/server"
)

// serveCommand creates the serve command, which exposes the dataset over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
		lf    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [quests.json]",
		Short: "Serve quests, layout and SVG over HTTP",
		Long: `Serve a quest dataset over HTTP.

Routes:
  GET /healthz
  GET /api/quests            ?group= &trader= &q= &milestones=
  GET /api/quests/{id}
  GET /api/groups
  GET /api/layout
  GET /api/graph
  GET /api/warnings
  GET /api/graph.svg         ?selected=

With --watch the dataset is reloaded whenever the file changes; a reload that
fails keeps serving the previous version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, cfg, err := c.prepare(cmd, &lf, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("watch") {
				watch = cfg.Server.Watch
			}

			ctx := cmd.Context()
			srv, err := server.New(ctx, runner, opts, c.Logger)
			if err != nil {
				return err
			}
			if watch {
				if err := srv.Watch(ctx); err != nil {
					return err
				}
			}

			printSuccess("Serving %s", opts.Path)
			printKeyValue("Address", addr)
			printKeyValue("Watch", boolWord(watch))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the dataset when the file changes")
	lf.register(cmd)

	return cmd
}

func boolWord(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
