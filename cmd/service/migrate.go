package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/vetboard/internal/store/pg"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes (sólo driver postgres)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.cfg.Storage.Driver != "postgres" {
				return errors.New("migrate: storage.driver must be postgres")
			}
			ctx := cmd.Context()
			s, err := pg.Open(ctx, pg.Config{DSN: g.cfg.Storage.DSN})
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Migrate(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied=%v skipped=%d duration=%s\n", res.Applied, len(res.Skipped), res.Duration)
			return nil
		},
	}
}
