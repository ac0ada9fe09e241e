// Package mail entrega avisos al cliente de correo del usuario mediante URLs mailto.
package mail

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/application/ports"
)

var _ ports.MailComposer = (*MailtoComposer)(nil)

// MailtoComposer no envía correo: devuelve la URL mailto para que el navegador abra el cliente.
type MailtoComposer struct{}

// NewMailtoComposer construye el adaptador.
func NewMailtoComposer() *MailtoComposer { return &MailtoComposer{} }

// Compose completa MailtoURL y registra la entrega.
func (m *MailtoComposer) Compose(ctx context.Context, draft dto.MailDraft) (*dto.MailDraft, error) {
	draft.MailtoURL = MailtoURL(draft)
	log.Info().Str("to", draft.To).Str("cc", draft.Cc).Str("subject", draft.Subject).Msg("aviso de pendencia preparado")
	return &draft, nil
}

// MailtoURL arma mailto:<to>?cc=<cc>&subject=<...>&body=<...> con codificación de componente URI.
func MailtoURL(d dto.MailDraft) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(d.To)
	b.WriteString("?cc=")
	b.WriteString(d.Cc)
	b.WriteString("&subject=")
	b.WriteString(encodeComponent(d.Subject))
	b.WriteString("&body=")
	b.WriteString(encodeComponent(d.Body))
	return b.String()
}

// encodeComponent escapa como encodeURIComponent: espacio como %20 y !'()* sin escapar.
var componentFixups = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func encodeComponent(s string) string {
	return componentFixups.Replace(url.QueryEscape(s))
}
