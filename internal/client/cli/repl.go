package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/trackit/internal/client/router"
	"github.com/dmitrijs2005/trackit/internal/logging"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var outMu sync.Mutex

// say prints one line. The redirect countdown prints from its own goroutine,
// so output is serialized.
func say(a ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	_, _ = printlnFn(a...)
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Screen() router.Screen
	Open(ctx context.Context, target string) error
	Back(ctx context.Context) error
	Home(ctx context.Context) error

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Forgot(ctx context.Context) error
	Resend(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Logout(ctx context.Context) error

	ResetPassword(ctx context.Context) error
}

var screenCommands = map[router.Screen][]string{
	router.ScreenLogin:             {"login", "register", "forgot", "resend", "logout"},
	router.ScreenMain:              {"list", "search", "add", "edit", "delete", "logout"},
	router.ScreenVerifyEmail:       {"back"},
	router.ScreenResetPassword:     {"reset", "back"},
	router.ScreenUnsupportedAction: {"back"},
	router.ScreenNotFound:          {"home"},
}

var alwaysCommands = []string{"open", "help", "exit"}

func allowed(screen router.Screen, cmd string) bool {
	for _, c := range screenCommands[screen] {
		if c == cmd {
			return true
		}
	}
	return false
}

func helpFor(screen router.Screen) string {
	cmds := append(append([]string{}, screenCommands[screen]...), alwaysCommands...)
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts a simple read–eval–print loop for the TrackIt CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The commands accepted depend on the screen
// currently shown:
//
//	login:           login, register, forgot, resend, logout
//	main:            list, search <term>, add, edit <id>, delete <id>, logout
//	verify-email:    back
//	reset-password:  reset, back
//	unsupported:     back
//	not-found:       home
//	everywhere:      open <path|url>, help, exit | quit
//
// Every command runs with a fresh operation id in its context. A handler
// error is printed and otherwise ignored, so the loop keeps running. The loop
// exits on EOF, on "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		say(fmt.Sprintf("trackit %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				say("Input error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		opCtx := logging.WithOpID(ctx, uuid.NewString())

		switch cmd {
		case "help":
			say(helpFor(a.Screen()))
			continue
		case "exit", "quit":
			say("Bye!")
			return
		case "open":
			if len(args) == 0 {
				say("Usage: open <path|url>")
				continue
			}
			report(a.Open(opCtx, args[0]))
			continue
		}

		if !allowed(a.Screen(), cmd) {
			say("Unknown command:", cmd)
			continue
		}

		switch cmd {
		case "login":
			report(a.Login(opCtx))
		case "register":
			report(a.Register(opCtx))
		case "forgot":
			report(a.Forgot(opCtx))
		case "resend":
			report(a.Resend(opCtx))
		case "list":
			report(a.List(opCtx))
		case "search":
			report(a.Search(opCtx, strings.Join(args, " ")))
		case "add":
			report(a.Add(opCtx))
		case "edit":
			if len(args) == 0 {
				say("Usage: edit <id>")
				continue
			}
			report(a.Edit(opCtx, args[0]))
		case "delete":
			if len(args) == 0 {
				say("Usage: delete <id>")
				continue
			}
			report(a.Delete(opCtx, args[0]))
		case "logout":
			report(a.Logout(opCtx))
		case "reset":
			report(a.ResetPassword(opCtx))
		case "back":
			report(a.Back(opCtx))
		case "home":
			report(a.Home(opCtx))
		}
	}
}

func report(err error) {
	if err != nil {
		say(userMessage(err))
	}
}
