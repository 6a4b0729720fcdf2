package cli

import (
	"bufio"
	"context"
	"errors"
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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Users(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on end of input or when the user types "exit" or "quit".
//
// Commands:
//
//	help              show available commands
//	register          create an account and log in
//	login             authenticate
//	logout            end the current session
//	whoami            show the logged-in user
//	users             list registered accounts
//	export <file>     write the whole store to a JSON file
//	import <file>     replace the whole store with a JSON file
//	exit | quit       leave the program
//
// Handlers report their own failures to the user; returned errors are
// ignored here so one failed command never ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bench %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, users, logout, login, register, export <file>, import <file>, exit")
			} else {
				printlnFn("Available commands: register, login, export <file>, import <file>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "users":
			_ = a.Users(ctx)

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <file>")
				continue
			}
			_ = a.Export(ctx, args[0])

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
