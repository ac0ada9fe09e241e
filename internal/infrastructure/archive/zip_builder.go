// Package archive empaqueta adjuntos en un ZIP en memoria.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/jhoicas/portal-notas/internal/application/ports"
)

var _ ports.ArchiveBuilder = (*ZipBuilder)(nil)

// ZipBuilder arma el ZIP de descarga masiva.
type ZipBuilder struct {
	now func() time.Time
}

// NewZipBuilder construye el empaquetador.
func NewZipBuilder() *ZipBuilder { return &ZipBuilder{now: time.Now} }

// Build devuelve los bytes del ZIP con una entrada por adjunto, en el orden recibido.
// Los PDFs ya vienen comprimidos, por eso se guardan sin deflate.
func (b *ZipBuilder) Build(entries []ports.ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := b.now()
	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: zip.Store, Modified: modified})
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Content); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}
