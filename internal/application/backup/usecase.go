// Package backup exporta e importa la base completa (notas, usuarios y fornecedores).
// La importación es en dos fases: primero se interpreta y se informa lo que se va a
// sobrescribir; solo con confirmación explícita se reemplaza todo.
package backup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
)

// BackupUseCase casos de uso de respaldo y restauración.
type BackupUseCase struct {
	state *state.Controller
	now   func() time.Time
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(st *state.Controller) *BackupUseCase {
	return &BackupUseCase{state: st, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *BackupUseCase) WithClock(now func() time.Time) *BackupUseCase {
	uc.now = now
	return uc
}

// Export genera el respaldo en el formato pedido (json por defecto).
func (uc *BackupUseCase) Export(ctx context.Context, v access.Viewer, format string) (*dto.Attachment, error) {
	if !access.CanExportDataset(v) {
		return nil, domain.ErrForbidden
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	now := uc.now()
	ts := now.UTC().Format("2006-01-02T15-04-05")
	ds := uc.state.Snapshot()

	var (
		att = &dto.Attachment{}
		err error
	)
	switch format {
	case FormatJSON:
		att.FileName = "BACKUP_TOTAL_DELP_" + ts + ".json"
		att.ContentType = "application/json"
		att.Content, err = EncodeJSON(ds, now)
	case FormatCSV:
		att.FileName = "BACKUP_FULL_EXCEL_" + ts + ".csv"
		att.ContentType = "text/csv; charset=utf-8"
		att.Content, err = EncodeCSV(ds)
	default:
		return nil, fmt.Errorf("%w: formato %q (use json o csv)", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("backup: serializar %s: %w", format, err)
	}
	meta := Metadata(ds)
	log.Info().Str("user_id", v.ID).Str("format", format).
		Int("invoices", meta.TotalInvoices).Int("users", meta.TotalUsers).Int("suppliers", meta.TotalSuppliers).
		Msg("respaldo exportado")
	return att, nil
}

// Import interpreta el respaldo y devuelve la vista previa. Con confirm reemplaza las tres
// colecciones en memoria y persiste; un respaldo inválido no aplica nada.
// format vacío se deduce de filename o del contenido.
func (uc *BackupUseCase) Import(ctx context.Context, v access.Viewer, filename string, content []byte, format string, confirm bool) (*dto.ImportPreview, error) {
	if !access.CanExportDataset(v) {
		return nil, domain.ErrForbidden
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DetectFormat(filename, content)
	}
	incoming, err := Decode(format, content)
	if err != nil {
		return nil, err
	}
	preview := &dto.ImportPreview{
		Format:   format,
		Incoming: Metadata(incoming),
		Current:  Metadata(uc.state.Snapshot()),
	}
	if !confirm {
		return preview, nil
	}

	err = uc.state.Replace(ctx, incoming)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	at := uc.now()
	preview.Applied = true
	preview.AppliedAt = &at
	log.Warn().Str("user_id", v.ID).Str("format", format).
		Int("invoices", preview.Incoming.TotalInvoices).Int("users", preview.Incoming.TotalUsers).
		Int("suppliers", preview.Incoming.TotalSuppliers).
		Msg("base de datos reemplazada por importación")
	return preview, err
}

// Dataset devuelve el documento crudo {invoices, users, suppliers} (contrato GET /api/data).
func (uc *BackupUseCase) Dataset(ctx context.Context, v access.Viewer) (*entity.Dataset, error) {
	if !access.CanExportDataset(v) {
		return nil, domain.ErrForbidden
	}
	return uc.state.Snapshot(), nil
}
