// Command service levanta la bolsa de trabajo veterinaria: login social
// (google, kakao, naver) y entrega de sesión al opener.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/vetboard/internal/config"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

// version se inyecta con -ldflags "-X main.version=..."
var version = "dev"

type globals struct {
	configPath string
	envFile    string
	cfg        *config.Config
}

func main() {
	g := &globals{}

	root := &cobra.Command{
		Use:           "vetboard",
		Short:         "Servicio de login social de la bolsa de trabajo veterinaria",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.envFile != "" {
				// .env es opcional; el entorno del proceso manda
				_ = godotenv.Load(g.envFile)
			}
			path := g.configPath
			if path == "" {
				path = defaultConfigPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			g.cfg = cfg
			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.Log.Level,
				ServiceName: cfg.App.Name,
				Version:     version,
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", os.Getenv("CONFIG_PATH"), "ruta a config.yaml (env CONFIG_PATH)")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "ruta a .env (opcional)")

	root.AddCommand(
		newServeCmd(g),
		newConfigCmd(g),
		newRoutesCmd(g),
		newMigrateCmd(g),
		newKeysCmd(),
	)

	err := root.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	for _, p := range []string{"configs/config.yaml", "configs/config.example.yaml"} {
		if fileExists(p) {
			return p
		}
	}
	return filepath.Join("configs", "config.yaml")
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
