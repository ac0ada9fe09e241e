// Package invoice orquesta el ciclo de vida de las notas: alta, corrección, recepción,
// pendencia, borrado y las descargas que marcan exportación.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/notify"
	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/filter"
	"github.com/jhoicas/portal-notas/internal/domain/lifecycle"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

// Recorder recibe los eventos de negocio para métricas.
type Recorder interface {
	InvoiceSubmitted()
	StatusChanged(status string)
	AttachmentsExported(n int)
}

type noopRecorder struct{}

func (noopRecorder) InvoiceSubmitted()       {}
func (noopRecorder) StatusChanged(string)    {}
func (noopRecorder) AttachmentsExported(int) {}

// Upload es un adjunto recibido junto con el formulario.
type Upload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// InvoiceUseCase casos de uso de notas fiscales.
type InvoiceUseCase struct {
	state    *state.Controller
	files    repository.FileStore
	mail     ports.MailComposer
	archive  ports.ArchiveBuilder
	recorder Recorder
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(st *state.Controller, files repository.FileStore, mail ports.MailComposer, archive ports.ArchiveBuilder) *InvoiceUseCase {
	return &InvoiceUseCase{
		state:    st,
		files:    files,
		mail:     mail,
		archive:  archive,
		recorder: noopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder registra el receptor de métricas.
func (uc *InvoiceUseCase) WithRecorder(r Recorder) *InvoiceUseCase {
	if r != nil {
		uc.recorder = r
	}
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// List devuelve las notas visibles para v que cumplen c, de la más reciente a la más antigua.
func (uc *InvoiceUseCase) List(ctx context.Context, v access.Viewer, c filter.Criteria) []entity.Invoice {
	return filter.Query(uc.state.Snapshot().Invoices, v, c)
}

// Get devuelve una nota si v puede verla.
func (uc *InvoiceUseCase) Get(ctx context.Context, v access.Viewer, id string) (*entity.Invoice, error) {
	ds := uc.state.Snapshot()
	idx := ds.InvoiceIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	inv := ds.Invoices[idx]
	if !access.CanView(v, &inv) {
		return nil, domain.ErrForbidden
	}
	return &inv, nil
}

// Submit publica una nota nueva en EM_ANALISE con la fotografía del remitente.
func (uc *InvoiceUseCase) Submit(ctx context.Context, v access.Viewer, in dto.SubmitInvoiceRequest, file *Upload) (*entity.Invoice, error) {
	ds := uc.state.Snapshot()
	idx := ds.UserIndex(v.ID)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}
	submitter := ds.Users[idx]

	sub, err := uc.submission(ds, in, file)
	if err != nil {
		return nil, err
	}
	if err := sub.Validate(true); err != nil {
		return nil, err
	}
	if err := uc.storeUpload(ctx, &sub, file); err != nil {
		return nil, err
	}

	inv := lifecycle.NewInvoice(uuid.New().String(), sub, submitter, uc.now())
	err = uc.state.Update(ctx, func(ds *entity.Dataset) error {
		ds.Invoices = append(ds.Invoices, inv)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	uc.recorder.InvoiceSubmitted()
	log.Info().Str("invoice_id", inv.ID).Str("user_id", v.ID).Str("status", inv.Status).Msg("nota publicada")
	return &inv, err
}

// Resubmit aplica una corrección. Quien no es ADMIN solo puede editar notas visibles que no estén RECEBIDA.
func (uc *InvoiceUseCase) Resubmit(ctx context.Context, v access.Viewer, id string, in dto.SubmitInvoiceRequest, file *Upload) (*entity.Invoice, error) {
	ds := uc.state.Snapshot()
	idx := ds.InvoiceIndex(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if !access.CanEditInvoice(v, &ds.Invoices[idx]) {
		return nil, domain.ErrForbidden
	}
	sub, err := uc.submission(ds, in, file)
	if err != nil {
		return nil, err
	}
	if err := sub.Validate(false); err != nil {
		return nil, err
	}
	if err := uc.storeUpload(ctx, &sub, file); err != nil {
		return nil, err
	}

	var out entity.Invoice
	err = uc.state.Update(ctx, func(ds *entity.Dataset) error {
		i := ds.InvoiceIndex(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		if !access.CanEditInvoice(v, &ds.Invoices[i]) {
			return domain.ErrForbidden
		}
		ds.Invoices[i] = lifecycle.Resubmit(ds.Invoices[i], sub)
		out = ds.Invoices[i]
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	uc.recorder.StatusChanged(out.Status)
	log.Info().Str("invoice_id", id).Str("user_id", v.ID).Str("status", out.Status).Msg("nota corregida")
	return &out, err
}

// Receive confirma la nota (solo ADMIN). Repetirlo sobre una RECEBIDA no cambia nada.
func (uc *InvoiceUseCase) Receive(ctx context.Context, v access.Viewer, id string) (*entity.Invoice, error) {
	if !access.CanChangeStatus(v) {
		return nil, domain.ErrForbidden
	}
	var out entity.Invoice
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		i := ds.InvoiceIndex(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		if err := lifecycle.MarkReceived(&ds.Invoices[i]); err != nil {
			return err
		}
		out = ds.Invoices[i]
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	uc.recorder.StatusChanged(out.Status)
	log.Info().Str("invoice_id", id).Str("status", out.Status).Msg("nota recibida")
	return &out, err
}

// ApplyPendency pasa la nota a PENDENTE y prepara el aviso al remitente (y al gestor si se pidió).
// Un fallo del canal de correo no revierte la pendencia.
func (uc *InvoiceUseCase) ApplyPendency(ctx context.Context, v access.Viewer, id string, in dto.PendencyRequest) (*dto.PendencyResponse, error) {
	if !access.CanChangeStatus(v) {
		return nil, domain.ErrForbidden
	}
	p := lifecycle.Pendency{Reason: in.Reason, NotifyManager: in.NotifyManager, ManagerEmail: in.ManagerEmail}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out entity.Invoice
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		i := ds.InvoiceIndex(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		if err := lifecycle.ApplyPendency(&ds.Invoices[i], p); err != nil {
			return err
		}
		out = ds.Invoices[i]
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, err
	}
	uc.recorder.StatusChanged(out.Status)
	log.Info().Str("invoice_id", id).Str("status", out.Status).Bool("notify_manager", p.NotifyManager).Msg("pendencia aplicada")

	resp := &dto.PendencyResponse{Invoice: out}
	draft := notify.ComposePendency(out, p)
	if uc.mail != nil {
		sent, mailErr := uc.mail.Compose(ctx, draft)
		if mailErr != nil {
			log.Warn().Err(mailErr).Str("invoice_id", id).Msg("no se pudo preparar el aviso de pendencia")
		} else {
			resp.Notification = sent
		}
	} else {
		resp.Notification = &draft
	}
	return resp, err
}

// Delete elimina la nota (solo ADMIN). El adjunto queda en el almacén de archivos.
func (uc *InvoiceUseCase) Delete(ctx context.Context, v access.Viewer, id string) error {
	if !access.CanDeleteInvoice(v) {
		return domain.ErrForbidden
	}
	err := uc.state.Update(ctx, func(ds *entity.Dataset) error {
		i := ds.InvoiceIndex(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		ds.Invoices = append(ds.Invoices[:i], ds.Invoices[i+1:]...)
		return nil
	})
	if err == nil || errors.Is(err, domain.ErrPersistence) {
		log.Info().Str("invoice_id", id).Str("user_id", v.ID).Msg("nota eliminada")
	}
	return err
}

// UploadFile guarda un adjunto suelto (flujo en dos pasos: subir y luego publicar).
func (uc *InvoiceUseCase) UploadFile(ctx context.Context, file Upload) (*repository.StoredFile, error) {
	if strings.TrimSpace(file.Name) == "" || file.Reader == nil {
		return nil, fmt.Errorf("%w: nenhum arquivo enviado", domain.ErrInvalidInput)
	}
	return uc.files.Save(ctx, file.Name, file.ContentType, file.Reader)
}

// submission arma el envío resolviendo el fornecedor registrado si viene SupplierID.
func (uc *InvoiceUseCase) submission(ds *entity.Dataset, in dto.SubmitInvoiceRequest, file *Upload) (lifecycle.Submission, error) {
	sub := lifecycle.Submission{
		SupplierID:    in.SupplierID,
		SupplierName:  in.SupplierName,
		SupplierCNPJ:  in.SupplierCNPJ,
		InvoiceNumber: in.InvoiceNumber,
		EmissionDate:  in.EmissionDate,
		OrderNumber:   in.OrderNumber,
		Value:         in.Value,
		DocType:       strings.ToUpper(strings.TrimSpace(in.DocType)),
		Observations:  in.Observations,
		UserResponse:  in.UserResponse,
		FileName:      in.FileName,
		PdfURL:        in.PdfURL,
	}
	if in.SupplierID != "" {
		// referencia colgante: se conservan nombre y CNPJ enviados
		if idx := ds.SupplierIndex(in.SupplierID); idx >= 0 {
			sub.SupplierName = ds.Suppliers[idx].Name
			sub.SupplierCNPJ = ds.Suppliers[idx].CNPJ
		}
	}
	if file != nil {
		// marcador para la validación; el nombre real lo asigna el almacén
		sub.FileName = file.Name
	}
	return sub, nil
}

func (uc *InvoiceUseCase) storeUpload(ctx context.Context, sub *lifecycle.Submission, file *Upload) error {
	if file == nil {
		return nil
	}
	stored, err := uc.files.Save(ctx, file.Name, file.ContentType, file.Reader)
	if err != nil {
		return fmt.Errorf("guardar adjunto: %w", err)
	}
	sub.FileName = stored.Name
	sub.PdfURL = stored.Path
	return nil
}
