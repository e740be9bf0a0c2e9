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
	HandleError(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	CheckToken(ctx context.Context, token string) error

	Create(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
	Verify(ctx context.Context, hash string) error
	Dashboard(ctx context.Context) error
	Chain(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, verify <hash>, token <token>, chain, help, exit"
	helpSignedIn  = "Available commands: whoami, profile, rename, passwd, dashboard, create, (l)ist, " +
		"show <id>, revoke <id>, verify <hash>, token <token>, chain, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the idkeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the second, if any, as its argument, and dispatches to methods
// on 'a'. Errors returned by handlers go to a.HandleError, so the loop keeps
// running. The loop exits on scanner EOF, when ctx is done, or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help             - show available commands
//	  - verify <hash>    - verify a credential and fetch its blockchain proof
//	  - token <token>    - check a token without touching the session
//	  - chain            - show the service's blockchain status
//	  - exit | quit      - leave the program
//
//	Not logged in:
//	  - register         - create an account
//	  - login            - authenticate
//
//	Logged in:
//	  - whoami           - show the cached user and session expiry
//	  - profile          - fetch the profile
//	  - rename           - change the full name
//	  - passwd           - change the password
//	  - dashboard        - profile and credentials together
//	  - create           - create a credential
//	  - list | l         - list credentials
//	  - show <id>        - show a credential
//	  - revoke <id>      - revoke a credential (asks for confirmation)
//	  - logout           - forget the session
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("idk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "rename":
			err = a.Rename(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)
		case "token":
			err = a.CheckToken(ctx, arg)

		case "create":
			err = a.Create(ctx)
		case "l", "list":
			err = a.List(ctx)
		case "show":
			err = a.Show(ctx, arg)
		case "revoke":
			err = a.Revoke(ctx, arg)
		case "verify":
			err = a.Verify(ctx, arg)
		case "dashboard":
			err = a.Dashboard(ctx)
		case "chain":
			err = a.Chain(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.HandleError(ctx, err)
	}
}
