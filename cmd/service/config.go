package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Operaciones sobre la configuración",
	}

	var show bool
	check := &cobra.Command{
		Use:   "check",
		Short: "Valida la configuración y la tabla de destinos por categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := make(map[string]social.Route, len(g.cfg.Routes))
			for k, r := range g.cfg.Routes {
				routes[k] = social.Route{Dashboard: r.Dashboard, Completion: r.Completion}
			}
			if _, err := social.NewRouteTable(routes); err != nil {
				return err
			}
			if show {
				redacted := *g.cfg
				redacted.JWT.SigningKeySeed = mask(redacted.JWT.SigningKeySeed)
				redacted.Storage.DSN = mask(redacted.Storage.DSN)
				redacted.Cache.Redis.Password = mask(redacted.Cache.Redis.Password)
				redacted.Social.Google.ClientSecret = mask(redacted.Social.Google.ClientSecret)
				redacted.Social.Kakao.ClientSecret = mask(redacted.Social.Kakao.ClientSecret)
				redacted.Social.Naver.ClientSecret = mask(redacted.Social.Naver.ClientSecret)
				b, err := yaml.Marshal(&redacted)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(b))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	check.Flags().BoolVar(&show, "show", false, "imprime la configuración efectiva (secretos enmascarados)")

	cmd.AddCommand(check)
	return cmd
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
