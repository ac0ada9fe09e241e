// Package filestore guarda los PDFs adjuntos en disco local o en S3/MinIO.
// Cada guardado genera un nombre nuevo: <yyyyMMddHHmmss>_<8 hex>_<nombre original saneado>,
// de modo que dos envíos con el mismo nombre nunca se pisan.
package filestore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxBaseLen = 80

// StoredName genera el nombre de almacenamiento para originalName.
func StoredName(originalName string, now time.Time) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s", now.UTC().Format("20060102150405"), id, Sanitize(originalName))
}

// Sanitize deja solo letras ASCII, dígitos, '.', '-' y '_'; quita acentos y directorios.
func Sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if s, _, err := transform.String(t, name); err == nil {
		name = s
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "arquivo.pdf"
	}
	if len(out) > maxBaseLen {
		ext := path.Ext(out)
		if len(ext) > 10 {
			ext = ""
		}
		out = out[:maxBaseLen-len(ext)] + ext
	}
	return out
}

// validName rechaza nombres que intentan salir del directorio.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
