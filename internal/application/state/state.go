// Package state mantiene el dataset en memoria y coordina su persistencia.
// Cada comando trabaja sobre una copia; si falla no se aplica nada. Si lo que falla es el
// guardado, el cambio queda en memoria y se informa domain.ErrPersistence.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

// Observer recibe el resultado de cada guardado (métricas).
type Observer interface {
	PersistFailed()
}

// Controller dueño único del dataset de la aplicación.
type Controller struct {
	store    repository.DocumentStore
	observer Observer

	mu      sync.RWMutex
	data    *entity.Dataset
	version uint64

	saveMu    sync.Mutex
	persisted uint64
}

// NewController crea el controlador con el dataset ya cargado.
func NewController(store repository.DocumentStore, initial *entity.Dataset) *Controller {
	if initial == nil {
		initial = entity.NewDataset()
	}
	initial.Normalize()
	return &Controller{store: store, data: initial}
}

// Load lee el dataset del store y construye el controlador.
func Load(ctx context.Context, store repository.DocumentStore) (*Controller, error) {
	ds, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar dataset: %w", err)
	}
	return NewController(store, ds), nil
}

// WithObserver registra un observador de guardados.
func (c *Controller) WithObserver(o Observer) *Controller {
	c.observer = o
	return c
}

// Snapshot devuelve una copia del dataset actual; el llamador puede leerla sin bloquear.
func (c *Controller) Snapshot() *entity.Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Clone()
}

// Version número de cambios aplicados desde el arranque.
func (c *Controller) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Update aplica fn sobre una copia del dataset. Si fn falla no cambia nada.
// Tras el intercambio persiste; un error de guardado se devuelve envuelto en ErrPersistence
// y el cambio en memoria se conserva.
func (c *Controller) Update(ctx context.Context, fn func(ds *entity.Dataset) error) error {
	c.mu.Lock()
	next := c.data.Clone()
	if err := fn(next); err != nil {
		c.mu.Unlock()
		return err
	}
	next.Normalize()
	c.data = next
	c.version++
	v := c.version
	c.mu.Unlock()

	return c.persist(ctx, next, v)
}

// Replace sustituye el dataset completo (importación) y lo persiste.
func (c *Controller) Replace(ctx context.Context, ds *entity.Dataset) error {
	return c.Update(ctx, func(cur *entity.Dataset) error {
		*cur = *ds.Clone()
		return nil
	})
}

// Flush vuelve a guardar el estado actual (p.ej. al apagar tras un guardado fallido).
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.RLock()
	ds := c.data.Clone()
	v := c.version
	c.mu.RUnlock()
	c.saveMu.Lock()
	c.persisted = 0
	c.saveMu.Unlock()
	return c.persist(ctx, ds, v)
}

func (c *Controller) persist(ctx context.Context, ds *entity.Dataset, v uint64) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	// una versión más nueva ya quedó guardada
	if v <= c.persisted {
		return nil
	}
	if err := c.store.Save(ctx, ds); err != nil {
		log.Warn().Err(err).Uint64("version", v).Msg("no se pudo guardar el dataset; el cambio queda solo en memoria")
		if c.observer != nil {
			c.observer.PersistFailed()
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	c.persisted = v
	return nil
}
