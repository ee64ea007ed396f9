// Package cli provides authctl, an interactive client for the auth API.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// Commands: signup, verify, login, logout, forgot, reset, whoami, help, exit.
// The session cookie lives in the API client's cookie jar for the lifetime
// of the process.
package cli
