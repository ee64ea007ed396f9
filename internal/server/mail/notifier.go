// Package mail delivers the transactional emails of the account lifecycle.
// Delivery is best effort: callers log failures and carry on.
package mail

import (
	"context"
	"fmt"
)

// Notifier sends account lifecycle emails.
type Notifier interface {
	SendVerification(ctx context.Context, email, code string) error
	SendWelcome(ctx context.Context, email, name string) error
	SendPasswordReset(ctx context.Context, email, resetURL string) error
	SendResetSuccess(ctx context.Context, email string) error
}

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Body    string
}

func verificationMessage(email, code string) Message {
	return Message{
		To:      email,
		Subject: "Verify your email",
		Body: fmt.Sprintf("Thank you for signing up!\n\nYour verification code is: %s\n\n"+
			"Enter this code on the verification page to complete your registration.\n"+
			"This code will expire in 24 hours.\n", code),
	}
}

func welcomeMessage(email, name string) Message {
	return Message{
		To:      email,
		Subject: "Welcome!",
		Body:    fmt.Sprintf("Hello %s,\n\nYour email is verified and your account is ready.\n", name),
	}
}

func passwordResetMessage(email, resetURL string) Message {
	return Message{
		To:      email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("We received a request to reset your password.\n\n"+
			"Follow this link to choose a new one:\n%s\n\n"+
			"The link expires in 1 hour. If you didn't ask for this, ignore this email.\n", resetURL),
	}
}

func resetSuccessMessage(email string) Message {
	return Message{
		To:      email,
		Subject: "Password reset successful",
		Body: "Your password has been reset.\n\n" +
			"If you did not do this, contact support immediately.\n",
	}
}
