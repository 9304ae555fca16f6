package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"inkpost/pkg/logger"
)

type fakeSender struct {
	err      error
	messages []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.messages = append(f.messages, m...)
	return f.err
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestSMTPMailer_Send(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful sending", func(t *testing.T) {
		sender := &fakeSender{}
		m := &SMTPMailer{dialer: sender, from: "no-reply@inkpost.local"}

		err := m.Send(ctx, "user@example.com", "Verify your email", "<p>hello</p>")

		require.NoError(t, err)
		require.Len(t, sender.messages, 1)

		msg := sender.messages[0]
		assert.Equal(t, []string{"no-reply@inkpost.local"}, msg.GetHeader("From"))
		assert.Equal(t, []string{"user@example.com"}, msg.GetHeader("To"))
		assert.Equal(t, []string{"Verify your email"}, msg.GetHeader("Subject"))
	})

	t.Run("smtp error is wrapped", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("connection refused")}
		m := &SMTPMailer{dialer: sender, from: "no-reply@inkpost.local"}

		err := m.Send(ctx, "user@example.com", "Verify your email", "<p>hello</p>")

		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgFailedToSendEmail)
	})
}
