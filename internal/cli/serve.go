package cli

import (
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/server"
	"github.com/matzehuels/sorttrace/pkg/session"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		sessionTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: `Serve bounds, comparison counts, quicksort traces, comparison sweeps and
pull-based merge sort trace sessions over HTTP. Sweep reports use the
configured cache. The server stops gracefully on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.settings().Server.Addr
			}

			runner, store, err := c.newSweepRunner(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(server.Options{
				Sweeps:     runner,
				Logger:     c.Logger,
				SessionTTL: sessionTTL,
			})

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printNextStep("Try", "curl -s "+baseURL(addr)+"/v1/bounds/1000")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "how long an idle merge session is kept")

	return cmd
}

// baseURL turns a listen address into a URL a local client can reach.
func baseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
