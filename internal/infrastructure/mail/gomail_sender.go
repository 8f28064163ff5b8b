package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/fresco-api/internal/application/notifier"
	"github.com/jhoicas/fresco-api/pkg/config"
)

var _ notifier.Sender = (*GomailSender)(nil)

// GomailSender envía correos HTML por SMTP usando gomail.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender con la configuración SMTP de la app.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendHTML envía un correo HTML a los destinatarios dados.
func (s *GomailSender) SendHTML(to []string, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
