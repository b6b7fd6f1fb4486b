package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophadmin/internal/client/router"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var printlnFn = fmt.Println
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	menu() []router.Route
	takeNotice() (string, bool)
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, target string) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	AddRole(ctx context.Context) error
	EditRole(ctx context.Context, id string) error
	DeleteRole(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the admin console.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". After every command a pending notice (for example "your
// session has expired") is printed.
//
//	Always:
//	  - help                  show available commands and screens
//	  - go <path>             open an in-app route, e.g. go /users?role=admin
//	  - whoami                show identity and token expiry
//	  - exit | quit           leave the program
//
//	Not logged in:
//	  - login                 authenticate
//
//	Logged in:
//	  - home | about
//	  - users [key=value...]  list users (username, email, role, phone,
//	                          is_active, page, page_size)
//	  - user <id>, adduser, edituser <id>, deluser <id>
//	  - roles [key=value...]  list roles (role_name, page, page_size)
//	  - role <id>, addrole, editrole <id>, delrole <id>
//	  - logout
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("ga %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !dispatch(ctx, a, cmd, args) {
			printlnFn("Bye!")
			return
		}

		if n, ok := a.takeNotice(); ok {
			printlnFn(n)
		}
	}
}

// dispatch runs one command and reports whether the REPL should continue.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "help":
		printHelp(a)

	case "login":
		_ = a.Login(ctx)

	case "logout":
		_ = a.Logout(ctx)

	case "whoami":
		_ = a.WhoAmI(ctx)

	case "go":
		if len(args) == 0 {
			printlnFn("Usage: go <path>")
			break
		}
		_ = a.Go(ctx, args[0])

	case "home":
		_ = a.Go(ctx, router.HomePath)

	case "about":
		_ = a.Go(ctx, "/about")

	case "users", "roles":
		target, err := screenPath("/"+cmd, args)
		if err != nil {
			printlnFn("Usage:", cmd, "[key=value ...]:", err)
			break
		}
		_ = a.Go(ctx, target)

	case "user", "role", "edituser", "deluser", "editrole", "delrole":
		if len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			break
		}
		runWithID(ctx, a, cmd, args[0])

	case "adduser":
		_ = a.AddUser(ctx)

	case "addrole":
		_ = a.AddRole(ctx)

	case "exit", "quit":
		return false

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}

func runWithID(ctx context.Context, a execIface, cmd, id string) {
	switch cmd {
	case "user":
		_ = a.Go(ctx, "/users/"+url.PathEscape(id))
	case "role":
		_ = a.Go(ctx, "/roles/"+url.PathEscape(id))
	case "edituser":
		_ = a.EditUser(ctx, id)
	case "deluser":
		_ = a.DeleteUser(ctx, id)
	case "editrole":
		_ = a.EditRole(ctx, id)
	case "delrole":
		_ = a.DeleteRole(ctx, id)
	}
}

func printHelp(a execIface) {
	if a.isLoggedIn() {
		printlnFn("Available commands: home, users, user <id>, adduser, edituser <id>, deluser <id>, " +
			"roles, role <id>, addrole, editrole <id>, delrole <id>, about, go <path>, whoami, logout, exit")
	} else {
		printlnFn("Available commands: login, whoami, go <path>, exit")
	}
	for _, rt := range a.menu() {
		printlnFn(fmt.Sprintf("  %-8s %s", rt.Path, rt.Title))
	}
}
