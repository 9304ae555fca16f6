// Package mailer содержит адаптер отправки транзакционной почты по SMTP.
package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"inkpost/internal/config"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

const errMsgFailedToSendEmail = "failed to send email"

// messageSender описывает используемое подмножество SMTP-клиента.
type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer реализует интерфейс Mailer поверх gomail.
type SMTPMailer struct {
	dialer messageSender
	from   string
}

// NewSMTPMailer создает новый почтовый адаптер по конфигурации.
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{
		dialer: dialer,
		from:   cfg.From,
	}
}

// Send отправляет HTML-письмо одному получателю.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	log := logger.Log(ctx).With(zap.String("mailer", "smtp"), zap.String("method", "Send"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error(ctx, errMsgFailedToSendEmail, zap.String("to", to), zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgFailedToSendEmail, err)
	}

	log.Debug(ctx, "email sent", zap.String("to", to), zap.String("subject", subject))

	return nil
}

// проверка соответствия интерфейсу.
var _ svc.Mailer = (*SMTPMailer)(nil)
