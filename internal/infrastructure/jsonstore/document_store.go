// Package jsonstore implementa el DocumentStore sobre un archivo JSON local (database.json).
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore lee y sobrescribe el archivo completo. La escritura va a un temporal en el mismo
// directorio y se renombra, así un corte nunca deja el archivo a medias.
type DocumentStore struct {
	path string
	mu   sync.Mutex
}

// New abre el store y crea {invoices:[],suppliers:[],users:[]} si el archivo no existe.
func New(path string) (*DocumentStore, error) {
	s := &DocumentStore{path: path}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("jsonstore: crear directorio: %w", err)
		}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(entity.NewDataset()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("jsonstore: %w", err)
	}
	return s, nil
}

// Path ruta del archivo.
func (s *DocumentStore) Path() string { return s.path }

// Load lee el documento. Colecciones ausentes se devuelven vacías.
func (s *DocumentStore) Load(ctx context.Context) (*entity.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("jsonstore: leer %s: %w", s.path, err)
	}
	ds := entity.NewDataset()
	if err := json.Unmarshal(raw, ds); err != nil {
		return nil, fmt.Errorf("jsonstore: decodificar %s: %w", s.path, err)
	}
	ds.Normalize()
	return ds, nil
}

// Save sobrescribe el documento completo.
func (s *DocumentStore) Save(ctx context.Context, ds *entity.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ds)
}

func (s *DocumentStore) write(ds *entity.Dataset) error {
	raw, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: codificar: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".database-*.json")
	if err != nil {
		return fmt.Errorf("jsonstore: temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonstore: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonstore: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonstore: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("jsonstore: reemplazar %s: %w", s.path, err)
	}
	return nil
}
