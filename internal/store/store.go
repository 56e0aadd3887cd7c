// Package store abre el repository.Store configurado.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
	"github.com/dropDatabas3/vetboard/internal/store/memory"
	"github.com/dropDatabas3/vetboard/internal/store/pg"
)

// Config selecciona el driver y sus parámetros.
type Config struct {
	Driver          string // memory | postgres
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool   // postgres: aplicar migraciones al abrir
	FixturesPath    string // memory: YAML de semillas
}

// Open abre el store según el driver.
func Open(ctx context.Context, cfg Config) (repository.Store, error) {
	log := logger.From(ctx).With(logger.Component("store"))

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		s := memory.New()
		if cfg.FixturesPath != "" {
			if err := s.LoadFile(cfg.FixturesPath); err != nil {
				return nil, err
			}
			accounts, links := s.Counts()
			log.Info("memory store seeded", logger.Any("accounts", accounts), logger.Any("links", links))
		}
		return s, nil

	case "postgres", "pg", "postgresql":
		s, err := pg.Open(ctx, pg.Config{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			res, err := s.Migrate(ctx)
			if err != nil {
				_ = s.Close()
				return nil, err
			}
			log.Info("migrations applied",
				logger.Any("applied", res.Applied),
				logger.Any("skipped", len(res.Skipped)),
				logger.DurationMs(res.Duration),
			)
		}
		return s, nil
	}
	return nil, fmt.Errorf("store: unsupported driver %q", cfg.Driver)
}
