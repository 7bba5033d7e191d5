package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Signin(ctx context.Context) error
	Me(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a until EOF or
// "exit"/"quit". Handlers report their own errors, so the loop ignores them.
//
// The reader is shared with the command prompts, so it must be the same
// *bufio.Reader the handlers read from.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gauth %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
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
				printlnFn("Available commands: me, logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "signin", "login":
			_ = a.Signin(ctx)

		case "me":
			if !a.isLoggedIn() {
				printlnFn("Sign in first")
				continue
			}
			_ = a.Me(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
