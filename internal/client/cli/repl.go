package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

var errUsage = errors.New("usage")

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Listings(ctx context.Context) error
	Search(ctx context.Context, query string) error
	View(ctx context.Context, id string) error
	Sell(ctx context.Context) error
	Mine(ctx context.Context) error
	Delist(ctx context.Context, id string) error
	Buy(ctx context.Context, id string) error
	Purchases(ctx context.Context) error
	History(ctx context.Context) error
	Sales(ctx context.Context) error
	Export(ctx context.Context) error
	Notes(ctx context.Context) error
	AddNote(ctx context.Context) error
	Transactions(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: listings, search <text>, view <id>, buy <id>, sell, mine, delist <id>, " +
		"purchases, history, sales, export, notes, addnote, txs, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a
// until the user types "exit" or input ends. Handlers report their own
// errors, so the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nm %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, rest := parts[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), parts[0]))

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		dispatch(ctx, a, cmd, rest)

		if err != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return
	case "register":
		_ = a.Register(ctx)
		return
	case "login":
		_ = a.Login(ctx)
		return
	}

	if !a.isLoggedIn() {
		if _, known := commandsNeedingLogin[cmd]; known {
			printlnFn("Please log in first")
			return
		}
		printlnFn("Unknown command:", cmd)
		return
	}

	switch cmd {
	case "logout":
		_ = a.Logout(ctx)
	case "l", "listings":
		_ = a.Listings(ctx)
	case "search":
		_ = requireArg(arg, "search <text>", func() error { return a.Search(ctx, arg) })
	case "view":
		_ = requireArg(arg, "view <listing id>", func() error { return a.View(ctx, arg) })
	case "buy":
		_ = requireArg(arg, "buy <listing id>", func() error { return a.Buy(ctx, arg) })
	case "delist":
		_ = requireArg(arg, "delist <listing id>", func() error { return a.Delist(ctx, arg) })
	case "sell":
		_ = a.Sell(ctx)
	case "mine":
		_ = a.Mine(ctx)
	case "purchases":
		_ = a.Purchases(ctx)
	case "history":
		_ = a.History(ctx)
	case "sales":
		_ = a.Sales(ctx)
	case "export":
		_ = a.Export(ctx)
	case "notes":
		_ = a.Notes(ctx)
	case "addnote":
		_ = a.AddNote(ctx)
	case "txs":
		_ = a.Transactions(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

var commandsNeedingLogin = map[string]struct{}{
	"logout": {}, "l": {}, "listings": {}, "search": {}, "view": {}, "buy": {}, "delist": {},
	"sell": {}, "mine": {}, "purchases": {}, "history": {}, "sales": {}, "export": {},
	"notes": {}, "addnote": {}, "txs": {},
}

func requireArg(arg, usage string, fn func() error) error {
	if arg == "" {
		printlnFn("Usage:", usage)
		return errUsage
	}
	return fn()
}
