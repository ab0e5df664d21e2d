package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/server"
	"github.com/matzehuels/graphclip/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve exposes validation, the snippet store and rendering over HTTP.
The listen address defaults to the "[server] addr" config key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			lib, err := c.library()
			if err != nil {
				return err
			}
			return c.withStore(cmd, func(st store.Store) error {
				srv := server.New(st, lib,
					server.WithLogger(c.Logger),
					server.WithCodecOptions(c.codecOptions()...),
				)
				printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
				printDetail("Store: %s", c.cfg.Store)
				return srv.ListenAndServe(cmd.Context(), addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
