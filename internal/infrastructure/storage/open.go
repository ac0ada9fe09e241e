// Package storage elige el DocumentStore según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/domain/repository"
	"github.com/jhoicas/portal-notas/internal/infrastructure/jsonstore"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
	"github.com/jhoicas/portal-notas/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-notas/pkg/config"
)

// Opened store abierto y su función de cierre (pool de conexiones).
type Opened struct {
	Store    repository.DocumentStore
	Postgres *postgres.DocumentStore // no nil solo con STORAGE_DRIVER=postgres
	Driver   string
	Close    func()
}

// Open abre el store configurado. Con fallback, un store que no responde se reemplaza por
// uno en memoria y la aplicación sigue en modo local.
func Open(ctx context.Context, cfg *config.Config, fallback bool) (*Opened, error) {
	out, err := open(ctx, cfg)
	if err == nil {
		return out, nil
	}
	if !fallback {
		return nil, err
	}
	log.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("almacenamiento no disponible, usando memoria local")
	return &Opened{Store: memory.NewDocumentStore(nil), Driver: config.StorageMemory, Close: func() {}}, nil
}

func open(ctx context.Context, cfg *config.Config) (*Opened, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return &Opened{Store: memory.NewDocumentStore(nil), Driver: config.StorageMemory, Close: func() {}}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		store := postgres.NewDocumentStore(pool, "")
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Opened{Store: store, Postgres: store, Driver: config.StoragePostgres, Close: pool.Close}, nil

	default:
		store, err := jsonstore.New(cfg.Storage.JSONPath)
		if err != nil {
			return nil, err
		}
		return &Opened{Store: store, Driver: config.StorageJSON, Close: func() {}}, nil
	}
}
