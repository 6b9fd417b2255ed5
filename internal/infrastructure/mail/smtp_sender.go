// Package mail envía las cotizaciones por SMTP con gomail.
package mail

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

var _ quoting.MailSender = (*SMTPSender)(nil)

// ErrDisabled no hay servidor SMTP configurado.
var ErrDisabled = errors.New("mail: envío deshabilitado (SMTP_HOST vacío)")

// dialer abstrae gomail.Dialer para tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implementa quoting.MailSender.
type SMTPSender struct {
	from   string
	dialer dialer
}

// NewSMTPSender construye el sender. Con SMTP deshabilitado todo envío devuelve ErrDisabled.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	s := &SMTPSender{from: cfg.From}
	if cfg.Enabled() {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return s
}

// Send arma el mensaje con el adjunto en memoria y lo entrega.
func (s *SMTPSender) Send(ctx context.Context, msg quoting.Message) error {
	if s.dialer == nil {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("mail: destinatario vacío")
	}
	if err := s.dialer.DialAndSend(buildMessage(s.from, msg)); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg quoting.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if a := msg.Attachment; a != nil && len(a.Content) > 0 {
		content := a.Content
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}
	return m
}
