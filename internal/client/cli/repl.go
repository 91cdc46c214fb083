package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socrates/internal/client/router"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	show(ctx context.Context)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Navigate(ctx context.Context, location string) error
	Back(ctx context.Context) error
	Reload(ctx context.Context) error

	Filter(ctx context.Context, value string) error
	NewItem(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Send(ctx context.Context, text string) error
	SwitchMode(ctx context.Context, mode string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SetOption(ctx context.Context, name, value string) error
	Save(ctx context.Context) error
}

const (
	helpGuest = "Available commands: register, login, home, go <path>, reload, exit"
	helpUser  = `Available commands:
  dashboard | projects | messages | settings | home   switch screen
  project <id>, session <id>, go <path>, back         navigate
  open <id>                                           open an item on this screen
  new                                                 create a project or session
  filter <value>                                      filter projects or messages
  send <text>, mode <mode>                            chat in a session
  archive <id>, delete <id>                           manage messages
  theme|model|temperature|max-tokens <value>, save    edit settings
  reload, logout, exit`
)

// runREPL reads one command per line and dispatches it to a. Prompts
// issued by handlers read from the same reader. After every
// command the current screen is shown again. The loop ends on EOF or on
// "exit"/"quit". Handler errors are printed and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("socrates %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		rest = strings.TrimSpace(rest)
		if cmd == "" {
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}
			continue

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "home":
			err = a.Navigate(ctx, router.PathHome)
		case "dashboard":
			err = a.Navigate(ctx, router.PathDashboard)
		case "projects":
			err = a.Navigate(ctx, router.PathProjects)
		case "messages", "inbox":
			err = a.Navigate(ctx, router.PathMessages)
		case "settings":
			err = a.Navigate(ctx, router.PathSettings)
		case "project":
			err = withArg(cmd, rest, func(id string) error { return a.Navigate(ctx, router.ProjectPath(id)) })
		case "session":
			err = withArg(cmd, rest, func(id string) error { return a.Navigate(ctx, router.SessionPath(id)) })
		case "go":
			err = withArg(cmd, rest, func(loc string) error { return a.Navigate(ctx, loc) })
		case "back":
			err = a.Back(ctx)
		case "reload":
			err = a.Reload(ctx)

		case "filter":
			err = withArg(cmd, rest, func(v string) error { return a.Filter(ctx, v) })
		case "new":
			err = a.NewItem(ctx)
		case "open":
			err = withArg(cmd, rest, func(id string) error { return a.Open(ctx, id) })
		case "send", "say":
			err = withArg(cmd, rest, func(text string) error { return a.Send(ctx, text) })
		case "mode":
			err = withArg(cmd, rest, func(m string) error { return a.SwitchMode(ctx, m) })
		case "archive":
			err = withArg(cmd, rest, func(id string) error { return a.Archive(ctx, id) })
		case "delete":
			err = withArg(cmd, rest, func(id string) error { return a.Delete(ctx, id) })
		case "theme", "model", "temperature", "max-tokens":
			err = withArg(cmd, rest, func(v string) error { return a.SetOption(ctx, cmd, v) })
		case "save":
			err = a.Save(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err != nil {
			printlnFn("Error:", err)
		}
		a.show(ctx)
	}
}

func withArg(cmd, arg string, fn func(string) error) error {
	if arg == "" {
		return fmt.Errorf("usage: %s <value>", cmd)
	}
	return fn(arg)
}
