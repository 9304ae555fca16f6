package services

import "context"

// Mailer отправляет транзакционные письма.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}
