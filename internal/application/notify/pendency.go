// Package notify arma el aviso de pendencia que recibe quien publicó la nota.
package notify

import (
	"fmt"
	"strings"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/lifecycle"
)

const bodyTemplate = `Prezado(a) %s,

Informamos que a Nota Fiscal mencionada abaixo apresenta uma pendência identificada pela equipe fiscal e precisa de sua atenção.

DETALHES DA NOTA:
Fornecedor: %s
Número da NF: %s
Setor: %s

MOTIVO DA PENDÊNCIA:
"%s"

Atenciosamente,
Equipe Fiscal - Delp`

// ComposePendency arma destinatario, copia, asunto y cuerpo del aviso.
// El destinatario es el email de notificación registrado en la nota; la copia al gestor
// solo se agrega si se pidió avisarle.
func ComposePendency(inv entity.Invoice, p lifecycle.Pendency) dto.MailDraft {
	reason := strings.TrimSpace(p.Reason)
	d := dto.MailDraft{
		To:      inv.UserEmail,
		Subject: fmt.Sprintf("PENDÊNCIA - NF %s - %s", inv.InvoiceNumber, inv.SupplierName),
		Body:    fmt.Sprintf(bodyTemplate, inv.UserName, inv.SupplierName, inv.InvoiceNumber, inv.UserSector, strings.ToUpper(reason)),
	}
	if p.NotifyManager {
		d.Cc = strings.TrimSpace(p.ManagerEmail)
	}
	return d
}
