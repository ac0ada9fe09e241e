package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

var _ repository.FileStore = (*LocalStore)(nil)

// LocalStore guarda en un directorio servido públicamente bajo publicPrefix (p.ej. /PDF).
type LocalStore struct {
	dir          string
	publicPrefix string
	maxBytes     int64
	now          func() time.Time
}

// NewLocalStore crea el directorio si no existe. maxBytes <= 0 = sin límite.
func NewLocalStore(dir, publicPrefix string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de adjuntos: %w", err)
	}
	return &LocalStore{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		maxBytes:     maxBytes,
		now:          time.Now,
	}, nil
}

// Dir directorio raíz (para servirlo como estático).
func (s *LocalStore) Dir() string { return s.dir }

// Save escribe el archivo con un nombre nuevo. Si supera el límite no queda nada en disco.
func (s *LocalStore) Save(ctx context.Context, originalName, contentType string, r io.Reader) (*repository.StoredFile, error) {
	name := StoredName(originalName, s.now())
	full := filepath.Join(s.dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("crear adjunto: %w", err)
	}
	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, s.maxBytes)
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, err
	}
	return &repository.StoredFile{Name: name, Path: s.publicPrefix + "/" + name, Size: n}, nil
}

// Open abre un adjunto por nombre de almacenamiento.
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: nombre de archivo inválido", domain.ErrInvalidInput)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: adjunto %s", domain.ErrNotFound, name)
		}
		return nil, err
	}
	return f, nil
}
