package repository

import (
	"context"

	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// DocumentStore es el gateway de persistencia: lee y sobrescribe el documento completo
// {invoices, users, suppliers}. No hay actualizaciones parciales ni control de versiones;
// la última escritura gana.
type DocumentStore interface {
	Load(ctx context.Context) (*entity.Dataset, error)
	Save(ctx context.Context, data *entity.Dataset) error
}
