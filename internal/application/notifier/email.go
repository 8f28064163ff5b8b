package notifier

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/fresco-api/internal/application/monitor"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

// Sender puerto de transporte de correo. La implementación real usa SMTP
// (gomail); en tests se sustituye por un fake.
type Sender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// EmailNotifier implementa monitor.Notifier: compone un digest HTML con los
// lotes por vencer y lo envía con un reintento acotado. El envío es mejor
// esfuerzo: agotar los reintentos devuelve error pero el caller solo lo loguea.
type EmailNotifier struct {
	sender     Sender
	recipients []string
	log        *logger.Logger

	maxAttempts int
	retryDelay  time.Duration
}

var _ monitor.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier construye el notificador. recipients: lista ya separada.
func NewEmailNotifier(sender Sender, recipients []string, log *logger.Logger) *EmailNotifier {
	return &EmailNotifier{
		sender:      sender,
		recipients:  recipients,
		log:         log,
		maxAttempts: 3,
		retryDelay:  5 * time.Second,
	}
}

// NotifyExpiring compone y envía el digest de vencimientos.
func (n *EmailNotifier) NotifyExpiring(ctx context.Context, items []monitor.ExpiringItem) error {
	if len(items) == 0 || len(n.recipients) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Alerta de vencimientos: %d lote(s) requieren atención", len(items))
	body := ComposeExpiryDigest(items)

	var lastErr error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		if err := n.sender.SendHTML(n.recipients, subject, body); err != nil {
			lastErr = err
			n.log.Warn().Err(err).Int("attempt", attempt).Msg("notifier: fallo envío de correo, reintentando")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.retryDelay):
			}
			continue
		}
		n.log.Info().Int("items", len(items)).Strs("to", n.recipients).Msg("notifier: digest de vencimientos enviado")
		return nil
	}
	return fmt.Errorf("enviar correo tras %d intentos: %w", n.maxAttempts, lastErr)
}

// ComposeExpiryDigest arma el HTML del correo: una tabla con los lotes
// ordenados por urgencia (vencidos primero, luego por días restantes).
func ComposeExpiryDigest(items []monitor.ExpiringItem) string {
	sorted := make([]monitor.ExpiringItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DaysUntilExpiry < sorted[j].DaysUntilExpiry
	})

	var sb strings.Builder
	sb.WriteString(`<html><body style="font-family:sans-serif">`)
	sb.WriteString(`<h2>Productos por vencer</h2>`)
	sb.WriteString(`<table border="1" cellpadding="6" cellspacing="0">`)
	sb.WriteString(`<tr><th>SKU</th><th>Producto</th><th>Cantidad</th><th>Vence</th><th>Estado</th></tr>`)
	for _, it := range sorted {
		sb.WriteString("<tr>")
		fmt.Fprintf(&sb, "<td>%s</td>", it.SKU)
		fmt.Fprintf(&sb, "<td>%s</td>", it.ItemName)
		fmt.Fprintf(&sb, "<td>%d %s</td>", it.Quantity, it.Unit)
		fmt.Fprintf(&sb, "<td>%s</td>", it.ExpiryDate.Format("2006-01-02"))
		fmt.Fprintf(&sb, "<td>%s</td>", digestLabel(it))
		sb.WriteString("</tr>")
	}
	sb.WriteString(`</table>`)
	sb.WriteString(`<p>Revise el panel de alertas para aprobar descuentos o registrar mermas.</p>`)
	sb.WriteString(`</body></html>`)
	return sb.String()
}

func digestLabel(it monitor.ExpiringItem) string {
	switch it.AlertType {
	case entity.AlertTypeExpired:
		return "VENCIDO"
	case entity.AlertTypeExpiringToday:
		return "vence hoy"
	case entity.AlertTypeExpiring1Day:
		return "vence mañana"
	case entity.AlertTypeExpiring2Days:
		return "vence en 2 días"
	default:
		return it.AlertType
	}
}
