package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// sendTimeout bounds one delivery, dial included.
const sendTimeout = 10 * time.Second

// sendMail is a seam for testing the SMTP round trip.
var sendMail = func(ctx context.Context, c *gomail.Client, m *gomail.Msg) error {
	return c.DialAndSendWithContext(ctx, m)
}

// SMTPNotifier delivers emails through an SMTP relay. STARTTLS is used when
// the relay offers it, and PLAIN auth when a username is configured.
type SMTPNotifier struct {
	client  *gomail.Client
	from    string
	timeout time.Duration
}

func NewSMTPNotifier(host string, port int, username, password, from string) (*SMTPNotifier, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTimeout(sendTimeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client error: %w", err)
	}
	return &SMTPNotifier{client: client, from: from, timeout: sendTimeout}, nil
}

func (n *SMTPNotifier) SendVerification(ctx context.Context, email, code string) error {
	return n.send(ctx, verificationMessage(email, code))
}

func (n *SMTPNotifier) SendWelcome(ctx context.Context, email, name string) error {
	return n.send(ctx, welcomeMessage(email, name))
}

func (n *SMTPNotifier) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	return n.send(ctx, passwordResetMessage(email, resetURL))
}

func (n *SMTPNotifier) SendResetSuccess(ctx context.Context, email string) error {
	return n.send(ctx, resetSuccessMessage(email))
}

func (n *SMTPNotifier) send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := n.build(m)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := sendMail(ctx, n.client, msg); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}
	return nil
}

// build turns m into a MIME message. Headers are RFC 2047 encoded by go-mail.
func (n *SMTPNotifier) build(m Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", n.from, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)
	return msg, nil
}
