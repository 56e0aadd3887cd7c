package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Utilidades de claves de firma",
		// no necesita configuración
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "gen-seed",
		Short: "Genera un seed Ed25519 para JWT_SIGNING_KEY_SEED",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := make([]byte, ed25519.SeedSize)
			if _, err := rand.Read(seed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "JWT_SIGNING_KEY_SEED=%s\n", base64.StdEncoding.EncodeToString(seed))
			return nil
		},
	})
	return cmd
}
