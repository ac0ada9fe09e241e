package invoice

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/filter"
	"github.com/jhoicas/portal-notas/internal/domain/lifecycle"
)

// utf8BOM hace que las planillas detecten la codificación.
const utf8BOM = "\ufeff"

var reportHeader = []string{"Status", "Setor", "Colaborador", "Fornecedor", "Nº Nota", "Emissão", "Postagem", "Valor", "Exportado"}

// DownloadName nombre sugerido del adjunto: NOTA_<número>_<10 primeros caracteres del fornecedor>.pdf
func DownloadName(inv *entity.Invoice) string {
	supplier := []rune(inv.SupplierName)
	if len(supplier) > 10 {
		supplier = supplier[:10]
	}
	return fmt.Sprintf("NOTA_%s_%s.pdf", inv.InvoiceNumber, strings.ToUpper(string(supplier)))
}

// DownloadAttachment devuelve el adjunto de una nota visible y la marca como exportada.
// La marca es idempotente.
func (uc *InvoiceUseCase) DownloadAttachment(ctx context.Context, v access.Viewer, id string) (*dto.Attachment, error) {
	inv, err := uc.Get(ctx, v, id)
	if err != nil {
		return nil, err
	}
	content, err := uc.readAttachment(ctx, inv)
	if err != nil {
		return nil, err
	}
	persistErr := uc.markExported(ctx, []string{inv.ID})
	return &dto.Attachment{
		FileName:    DownloadName(inv),
		ContentType: "application/pdf",
		Content:     content,
	}, persistErr
}

// BulkAttachments empaqueta en un ZIP los adjuntos de la lista filtrada y marca cada nota incluida.
// Las notas cuyo archivo no existe se omiten y se informan en el log.
func (uc *InvoiceUseCase) BulkAttachments(ctx context.Context, v access.Viewer, c filter.Criteria) (*dto.Attachment, int, error) {
	list := uc.List(ctx, v, c)
	if len(list) == 0 {
		return nil, 0, fmt.Errorf("%w: nenhuma nota para baixar", domain.ErrNotFound)
	}
	entries := make([]ports.ArchiveEntry, 0, len(list))
	ids := make([]string, 0, len(list))
	used := make(map[string]int, len(list))
	for i := range list {
		content, err := uc.readAttachment(ctx, &list[i])
		if err != nil {
			log.Warn().Err(err).Str("invoice_id", list[i].ID).Msg("adjunto omitido del paquete")
			continue
		}
		entries = append(entries, ports.ArchiveEntry{Name: uniqueName(used, DownloadName(&list[i])), Content: content})
		ids = append(ids, list[i].ID)
	}
	if len(entries) == 0 {
		return nil, 0, fmt.Errorf("%w: nenhum arquivo disponível", domain.ErrNotFound)
	}
	data, err := uc.archive.Build(entries)
	if err != nil {
		return nil, 0, fmt.Errorf("armar zip: %w", err)
	}
	persistErr := uc.markExported(ctx, ids)
	return &dto.Attachment{
		FileName:    fmt.Sprintf("NOTAS_%s.zip", uc.now().Format("20060102150405")),
		ContentType: "application/zip",
		Content:     data,
	}, len(entries), persistErr
}

// ReportCSV genera el relatorio de la lista filtrada (separador ';', UTF-8 con BOM).
func (uc *InvoiceUseCase) ReportCSV(ctx context.Context, v access.Viewer, c filter.Criteria) ([]byte, error) {
	return WriteReportCSV(uc.List(ctx, v, c))
}

// WriteReportCSV escribe el relatorio de notas en el formato de planilla.
func WriteReportCSV(list []entity.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	for i := range list {
		inv := &list[i]
		exported := "NÃO"
		if inv.IsExported {
			exported = "SIM"
		}
		row := []string{
			inv.Status,
			inv.UserSector,
			inv.UserName,
			inv.SupplierName,
			inv.InvoiceNumber,
			inv.EmissionDate,
			inv.PostDate(),
			inv.Value.StringFixed(2),
			exported,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (uc *InvoiceUseCase) readAttachment(ctx context.Context, inv *entity.Invoice) ([]byte, error) {
	name := AttachmentName(inv)
	if name == "" {
		return nil, fmt.Errorf("%w: la nota no tiene adjunto", domain.ErrNotFound)
	}
	rc, err := uc.files.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// AttachmentName nombre del archivo en el almacén. Los documentos antiguos solo traen la URL pública.
func AttachmentName(inv *entity.Invoice) string {
	if inv.FileName != "" {
		return inv.FileName
	}
	if inv.PdfURL != "" && !strings.HasPrefix(inv.PdfURL, "blob:") {
		return path.Base(inv.PdfURL)
	}
	return ""
}

func (uc *InvoiceUseCase) markExported(ctx context.Context, ids []string) error {
	changed := 0
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		for _, id := range ids {
			if i := ds.InvoiceIndex(id); i >= 0 && lifecycle.MarkExported(&ds.Invoices[i]) {
				changed++
			}
		}
		return nil
	})
	uc.recorder.AttachmentsExported(len(ids))
	if changed > 0 {
		log.Info().Int("invoices", changed).Msg("notas marcadas como exportadas")
	}
	return err
}

func uniqueName(used map[string]int, name string) string {
	if used[name] == 0 {
		used[name] = 1
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	// el sufijo puede coincidir con el nombre real de otra nota
	for n := used[name] + 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if used[candidate] == 0 {
			used[name] = n
			used[candidate] = 1
			return candidate
		}
	}
}
