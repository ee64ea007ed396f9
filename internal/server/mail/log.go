package mail

import (
	"context"

	"github.com/omkar-28/authd/internal/logging"
)

// LogNotifier writes emails to the logger instead of sending them. It is used
// when no SMTP relay is configured.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendVerification(ctx context.Context, email, code string) error {
	return n.log(ctx, verificationMessage(email, code))
}

func (n *LogNotifier) SendWelcome(ctx context.Context, email, name string) error {
	return n.log(ctx, welcomeMessage(email, name))
}

func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	return n.log(ctx, passwordResetMessage(email, resetURL))
}

func (n *LogNotifier) SendResetSuccess(ctx context.Context, email string) error {
	return n.log(ctx, resetSuccessMessage(email))
}

func (n *LogNotifier) log(ctx context.Context, m Message) error {
	n.logger.Info(ctx, "email", "to", m.To, "subject", m.Subject, "body", m.Body)
	return nil
}
