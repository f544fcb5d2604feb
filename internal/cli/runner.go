package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/jot/internal/model"
	"github.com/idilsaglam/jot/internal/store"
	"github.com/idilsaglam/jot/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carries everything a command needs; there is no package state.
type Options struct {
	Group       bool // list grouped by pending/done
	Interactive bool // todos ls opens the browser

	Open   store.Opener
	UI     *ui.UI
	Width  int // terminal width, 0 when unknown
	Logger *log.Logger

	// Browse runs the interactive browser. Nil disables -i.
	Browse func(ctx context.Context, s store.Store, theme ui.Theme) error
	// Now stamps unnamed notes. Defaults to time.Now.
	Now func() time.Time
}

// usageError marks errors caused by bad arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// Run dispatches a command and returns an exit code (0 ok, 1 error, 2 usage).
// Unknown commands and missing arguments show the home page.
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Logger == nil {
		opt.Logger = log.Default()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return finish(opt, dispatch(ctx, args, opt))
}

func dispatch(ctx context.Context, args []string, opt Options) error {
	if len(args) == 0 {
		return doHome(ctx, opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.UI.Out())
		return nil

	case "todos", "todo":
		if len(a) == 0 {
			return doHome(ctx, opt)
		}
		sub, rest := a[0], a[1:]
		switch sub {
		case "new", "add":
			if len(rest) == 0 {
				return doHome(ctx, opt)
			}
			return doNew(ctx, opt, strings.Join(rest, " "))
		case "do", "done":
			if len(rest) == 0 {
				return doHome(ctx, opt)
			}
			if len(rest) != 1 {
				return usageError{"usage: jot todos do <index>"}
			}
			n, err := strconv.Atoi(rest[0])
			if err != nil {
				return usageError{"todos do: not a number: " + rest[0]}
			}
			return doComplete(ctx, opt, n)
		case "ls", "list":
			return doList(ctx, opt)
		}

	case "notes", "note":
		if len(a) == 0 {
			return doHome(ctx, opt)
		}
		if a[0] == "new" {
			return doNoteNew(opt, strings.Join(a[1:], " "))
		}
	}

	opt.Logger.Debug("unrecognised command, showing home page", "args", args)
	return doHome(ctx, opt)
}

// finish reports err and maps it to an exit code.
func finish(opt Options, err error) int {
	if err == nil {
		return ExitOK
	}
	var uerr usageError
	switch {
	case errors.As(err, &uerr):
		opt.UI.Fail(uerr.msg)
		return ExitUsage
	case errors.Is(err, store.ErrEmptyTitle):
		opt.UI.Fail("todos new: empty title")
		return ExitUsage
	case errors.Is(err, store.ErrNotFound):
		opt.UI.Fail(err.Error())
		opt.UI.Hint("Hint: run `jot todos ls` to see valid indexes")
		return ExitError
	case errors.Is(err, store.ErrCorruptState):
		opt.UI.Fail(err.Error())
		opt.UI.Hint("Hint: fix or move the storage file aside; jot will start a new one")
		return ExitError
	default:
		opt.UI.Fail(err.Error())
		return ExitError
	}
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `jot - todos and notes from the terminal

Usage:
  jot [flags] <command> [args]

Commands:
  (none)                  Show the home page (all todos)
  todos new <title...>    Add a new todo (title can be multiple words)
  todos do <index>        Mark the todo with this index completed
  todos ls                List todos (-g to group, -i to browse)
  notes new [name]        Start a note (not available yet)
  help                    Show this help

Flags:
  -f, --file <path>       Storage file (default ~/.jot/todos.json)
      --backend <name>    json or sqlite
      --theme <name>      classic, neon or mono
  -g, --group             Group listings by pending/done
  -i, --interactive       Browse todos interactively
      --config <path>     Config file (default ~/.jot/config.toml)
      --log-level <lvl>   debug, info, warn or error

Examples:
  jot todos new "Buy milk"
  jot todos do 2
  jot todos ls --group
`)
}

// -------------- subcommand impls ----------------

func doHome(ctx context.Context, opt Options) error {
	var todos []model.Todo
	err := store.With(ctx, opt.Open, func(s store.Store) (err error) {
		todos, err = s.List(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	opt.UI.HomePage(todos, opt.Width)
	return nil
}

func doNew(ctx context.Context, opt Options, title string) error {
	return store.With(ctx, opt.Open, func(s store.Store) error {
		t, err := s.Create(ctx, title)
		if err != nil {
			return fmt.Errorf("todos new: %w", err)
		}
		opt.Logger.Info("todo created", "index", t.Index)
		opt.UI.OK(fmt.Sprintf("added [%d] %s", t.Index, t.Title))
		return nil
	})
}

func doComplete(ctx context.Context, opt Options, index int) error {
	return store.With(ctx, opt.Open, func(s store.Store) error {
		t, err := s.Complete(ctx, index)
		if err != nil {
			return fmt.Errorf("todos do: %w", err)
		}
		opt.Logger.Info("todo completed", "index", t.Index)
		opt.UI.OK(fmt.Sprintf("completed [%d] %s", t.Index, t.Title))
		return nil
	})
}

func doList(ctx context.Context, opt Options) error {
	return store.With(ctx, opt.Open, func(s store.Store) error {
		if opt.Interactive {
			if opt.Browse == nil {
				return fmt.Errorf("todos ls -i: %w", store.ErrNotImplemented)
			}
			return opt.Browse(ctx, s, opt.UI.Theme())
		}
		todos, err := s.List(ctx)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
		opt.UI.Listing(todos, opt.Group)
		return nil
	})
}

func doNoteNew(opt Options, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = opt.Now().Format("2006-01-02 15:04:05")
	}
	opt.Logger.Debug("note requested", "name", name)
	opt.UI.Println(fmt.Sprintf("Note %q noted. Notes are not stored yet.", name))
	return nil
}
