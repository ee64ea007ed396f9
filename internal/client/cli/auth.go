package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/omkar-28/authd/internal/client/client"
	"github.com/omkar-28/authd/internal/client/models"
	"github.com/omkar-28/authd/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, name and password and registers the account.
// The server mails a verification code and starts a session right away.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	user, err := a.api.Signup(ctx, email, string(password), name)
	if err != nil {
		return a.report("Signup failed", err)
	}

	a.user = user
	fmt.Fprintln(a.out, "Registered. Check your inbox for the verification code, then run 'verify'.")
	return nil
}

// Verify submits an email verification code.
func (a *App) Verify(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Enter verification code", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	user, err := a.api.VerifyEmail(ctx, code)
	if err != nil {
		return a.report("Verification failed", err)
	}

	if a.user != nil && a.user.ID == user.ID {
		a.user = user
	}
	fmt.Fprintf(a.out, "Email %s verified\n", user.Email)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return a.report("Login failed", err)
	}

	a.user = user
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	return nil
}

// Logout ends the session on the server and forgets the local user.
func (a *App) Logout(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Logout(ctx); err != nil {
		return a.report("Logout failed", err)
	}

	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Forgot asks the server to mail a password reset link.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.ForgotPassword(ctx, email); err != nil {
		return a.report("Request failed", err)
	}

	fmt.Fprintln(a.out, "Reset link sent. Run 'reset' with the token from the link.")
	return nil
}

// Reset sets a new password using the token from a reset link.
func (a *App) Reset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.ResetPassword(ctx, token, string(password)); err != nil {
		return a.report("Reset failed", err)
	}

	fmt.Fprintln(a.out, "Password changed. You can log in with the new password.")
	return nil
}

// Whoami asks the server who owns the current session.
func (a *App) Whoami(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	user, err := a.api.CheckAuth(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.user = nil
		}
		return a.report("Not authenticated", err)
	}

	a.user = user
	printUser(a, user)
	return nil
}

func (a *App) report(prefix string, err error) error {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "%s: %s\n", prefix, apiErr.Message)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s: server unavailable\n", prefix)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", prefix, err)
	}
	return err
}

func printUser(a *App, u *models.User) {
	fmt.Fprintf(a.out, "id:        %s\n", u.ID)
	fmt.Fprintf(a.out, "email:     %s\n", u.Email)
	fmt.Fprintf(a.out, "name:      %s\n", u.Name)
	fmt.Fprintf(a.out, "verified:  %t\n", u.IsVerified)
	if u.LastLogin != nil {
		fmt.Fprintf(a.out, "lastLogin: %s\n", u.LastLogin.Format("2006-01-02 15:04:05"))
	}
}
