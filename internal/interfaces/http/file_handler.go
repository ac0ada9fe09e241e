package http

import (
	"io"
	"path"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

// FileHandler sirve los adjuntos guardados bajo la ruta pública (/PDF/<nombre>).
type FileHandler struct {
	files repository.FileStore
}

// NewFileHandler construye el handler.
func NewFileHandler(files repository.FileStore) *FileHandler {
	return &FileHandler{files: files}
}

// Serve GET /PDF/:name
func (h *FileHandler) Serve(c *fiber.Ctx) error {
	name := path.Base(c.Params("name"))
	rc, err := h.files.Open(c.Context(), name)
	if err != nil {
		return fail(c, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fail(c, err)
	}
	c.Type(path.Ext(name))
	return c.Send(data)
}
