package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Verify(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	Whoami(ctx context.Context) error
}

// runREPL reads a line from reader, parses the first token as the
// command and dispatches to methods on a. Unknown commands are reported back
// to the user. The loop exits on EOF or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  - signup         create an account
//	  - verify         submit the emailed verification code
//	  - login          start a session
//	  - forgot         request a password reset link
//	  - reset          set a new password with a reset token
//
//	Logged in, additionally:
//	  - whoami         show the session owner
//	  - logout         end the session
//
// Errors returned by command handlers are ignored here; handlers report them
// to the user themselves. Command prompts share reader with the loop, so no
// input is buffered away from them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("authctl %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, verify, logout, forgot, reset, exit")
			} else {
				printlnFn("Available commands: signup, verify, login, forgot, reset, whoami, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
