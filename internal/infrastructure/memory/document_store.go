// Package memory implementa un DocumentStore local sin persistencia real.
// Se usa en tests y como respaldo cuando el almacenamiento configurado no responde al arrancar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore guarda una copia del dataset en memoria.
type DocumentStore struct {
	mu    sync.Mutex
	data  *entity.Dataset
	saves int
	// Fail, si no es nil, hace fallar cada Save con ese error.
	Fail error
}

// NewDocumentStore crea el store con un dataset inicial (nil = vacío).
func NewDocumentStore(initial *entity.Dataset) *DocumentStore {
	if initial == nil {
		initial = entity.NewDataset()
	}
	return &DocumentStore{data: initial.Clone()}
}

// Load devuelve una copia del dataset guardado.
func (s *DocumentStore) Load(ctx context.Context) (*entity.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone(), nil
}

// Save reemplaza el dataset guardado.
func (s *DocumentStore) Save(ctx context.Context, ds *entity.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.data = ds.Clone()
	s.saves++
	return nil
}

// SetFail cambia el error de guardado de forma segura.
func (s *DocumentStore) SetFail(err error) {
	s.mu.Lock()
	s.Fail = err
	s.mu.Unlock()
}

// Saves cantidad de guardados exitosos.
func (s *DocumentStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
