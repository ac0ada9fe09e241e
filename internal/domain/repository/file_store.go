package repository

import (
	"context"
	"io"
)

// StoredFile es la referencia devuelta al guardar un adjunto.
type StoredFile struct {
	Name string `json:"filename"` // nombre generado (único)
	Path string `json:"path"`     // ruta/URL para recuperarlo
	Size int64  `json:"size"`
}

// FileStore guarda adjuntos binarios. Cada Save genera un nombre nuevo; nunca sobrescribe.
type FileStore interface {
	Save(ctx context.Context, originalName, contentType string, r io.Reader) (*StoredFile, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
