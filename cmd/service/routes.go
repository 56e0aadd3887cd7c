package main

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/vetboard/internal/http/v2/server"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

func newRoutesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Lista las rutas HTTP registradas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.ToContext(cmd.Context(), logger.L())
			app, err := server.Build(ctx, g.cfg, version)
			if err != nil {
				return err
			}
			defer app.Close()

			routes, ok := app.Handler.(chi.Routes)
			if !ok {
				return fmt.Errorf("router does not expose its routes")
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				fmt.Fprintf(tw, "%s\t%s\n", method, strings.TrimSuffix(route, "/*"))
				return nil
			})
			if err != nil {
				return err
			}
			return tw.Flush()
		},
	}
}
