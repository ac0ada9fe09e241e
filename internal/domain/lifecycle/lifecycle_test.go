package lifecycle_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/lifecycle"
)

var submitter = entity.User{
	ID: "user-1", Name: "Colaborador Delp", NotificationEmail: "colaborador@delp.com.br",
	Role: entity.RoleUser, Sector: "Financeiro",
}

func validSubmission() lifecycle.Submission {
	return lifecycle.Submission{
		SupplierName:  "Acme",
		InvoiceNumber: "123",
		EmissionDate:  "2024-01-10",
		Value:         decimal.RequireFromString("1000.00"),
		DocType:       entity.DocTypeOrder,
		FileName:      "nota.pdf",
		PdfURL:        "/PDF/nota.pdf",
	}
}

func TestNewInvoice_SiempreEnAnalise(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	inv := lifecycle.NewInvoice("inv-1", validSubmission(), submitter, now)

	assert.Equal(t, entity.StatusUnderReview, inv.Status)
	assert.Equal(t, "user-1", inv.UploadedBy)
	assert.Equal(t, "Financeiro", inv.UserSector)
	assert.Equal(t, "colaborador@delp.com.br", inv.UserEmail)
	assert.Equal(t, now, inv.CreatedAt)
	assert.False(t, inv.IsExported)
}

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*lifecycle.Submission)
		file   bool
		ok     bool
	}{
		{"válida", func(*lifecycle.Submission) {}, true, true},
		{"sin fornecedor", func(s *lifecycle.Submission) { s.SupplierName = "  " }, true, false},
		{"sin número", func(s *lifecycle.Submission) { s.InvoiceNumber = "" }, true, false},
		{"fecha inválida", func(s *lifecycle.Submission) { s.EmissionDate = "10/01/2024" }, true, false},
		{"valor negativo", func(s *lifecycle.Submission) { s.Value = decimal.NewFromInt(-1) }, true, false},
		{"tipo desconocido", func(s *lifecycle.Submission) { s.DocType = "NF" }, true, false},
		{"alta sin archivo", func(s *lifecycle.Submission) { s.FileName = "" }, true, false},
		{"corrección sin archivo", func(s *lifecycle.Submission) { s.FileName = "" }, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := s.Validate(tt.file)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestApplyPendency_MotivoSinGestor(t *testing.T) {
	inv := lifecycle.NewInvoice("inv-1", validSubmission(), submitter, time.Now())

	err := lifecycle.ApplyPendency(&inv, lifecycle.Pendency{Reason: "NF incorreta"})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, inv.Status)
	assert.Equal(t, "NF incorreta", inv.AdminObservations)
	assert.Empty(t, inv.ManagerNotifiedEmail)
}

func TestApplyPendency_Validaciones(t *testing.T) {
	inv := lifecycle.NewInvoice("inv-1", validSubmission(), submitter, time.Now())

	err := lifecycle.ApplyPendency(&inv, lifecycle.Pendency{Reason: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo vacío")

	long := "0123456789012345678901234567890123456789X"
	err = lifecycle.ApplyPendency(&inv, lifecycle.Pendency{Reason: long})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo de más de 40 caracteres")

	err = lifecycle.ApplyPendency(&inv, lifecycle.Pendency{Reason: "falta OC", NotifyManager: true, ManagerEmail: "gestor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "email del gestor sin @")

	assert.Equal(t, entity.StatusUnderReview, inv.Status, "una pendencia rechazada no cambia el estado")

	err = lifecycle.ApplyPendency(&inv, lifecycle.Pendency{Reason: "falta OC", NotifyManager: true, ManagerEmail: "gestor@delp.com.br"})
	require.NoError(t, err)
	assert.Equal(t, "gestor@delp.com.br", inv.ManagerNotifiedEmail)
}

func TestResubmit_ConservaIdentidadYLimpiaPendencia(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	inv := lifecycle.NewInvoice("inv-1", validSubmission(), submitter, created)
	inv.IsExported = true
	require.NoError(t, lifecycle.ApplyPendency(&inv, lifecycle.Pendency{Reason: "NF incorreta", NotifyManager: true, ManagerEmail: "g@delp.com.br"}))

	fix := validSubmission()
	fix.InvoiceNumber = "124"
	fix.FileName = ""
	fix.PdfURL = ""
	out := lifecycle.Resubmit(inv, fix)

	assert.Equal(t, entity.StatusUnderReview, out.Status)
	assert.Equal(t, "inv-1", out.ID)
	assert.Equal(t, "user-1", out.UploadedBy)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, "124", out.InvoiceNumber)
	assert.Empty(t, out.AdminObservations)
	assert.Empty(t, out.ManagerNotifiedEmail)
	assert.Equal(t, "nota.pdf", out.FileName, "sin archivo nuevo se conserva el adjunto")
	assert.True(t, out.IsExported, "la marca de exportación no se limpia")
}

func TestMarkReceived(t *testing.T) {
	inv := lifecycle.NewInvoice("inv-1", validSubmission(), submitter, time.Now())
	require.NoError(t, lifecycle.MarkReceived(&inv))
	assert.Equal(t, entity.StatusReceived, inv.Status)

	require.NoError(t, lifecycle.MarkReceived(&inv), "recibir dos veces es un no-op")
	assert.Equal(t, entity.StatusReceived, inv.Status)

	inv.Status = "BORRADOR"
	assert.ErrorIs(t, lifecycle.MarkReceived(&inv), domain.ErrInvalidTransition)
}

func TestMarkExported_Idempotente(t *testing.T) {
	inv := lifecycle.NewInvoice("inv-1", validSubmission(), submitter, time.Now())
	assert.True(t, lifecycle.MarkExported(&inv))
	assert.False(t, lifecycle.MarkExported(&inv))
	assert.True(t, inv.IsExported)
}

func TestCanTransition_SoloRechazaEstadoDesconocido(t *testing.T) {
	states := []string{entity.StatusUnderReview, entity.StatusReceived, entity.StatusPending}
	for _, from := range states {
		for _, to := range states {
			assert.True(t, lifecycle.CanTransition(from, to), "%s → %s", from, to)
		}
	}
	assert.False(t, lifecycle.CanTransition("", entity.StatusReceived))
	assert.False(t, lifecycle.CanTransition("BORRADOR", entity.StatusPending))
	assert.False(t, lifecycle.CanTransition(entity.StatusPending, "ARQUIVADA"))
}
