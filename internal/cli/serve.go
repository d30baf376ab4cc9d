package cli

import (
	"github.com/spf13/cobra"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve environment, CPF, audit and scoring endpoints over HTTP",
		Long: `Serve exposes the interop layer read-only:

  GET  /healthz
  GET  /v1/env?path=<dir>
  GET  /v1/cpf?path=<dir>
  POST /v1/audit/{manager}   body: audit transcript, header X-Exit-Code
  POST /v1/risk/score        body: {"positives", "negatives", "risk", "strict"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.settings().Server.Addr
			}
			printInfo("Listening on %s", StyleLink.Render("http://"+addr))
			return api.New(c.resolver(), c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8787)")

	return cmd
}
