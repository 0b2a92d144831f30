package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/tui"
)

// command runs one client command with the arguments that follow its name.
type command func(ctx context.Context, args []string) error

type App struct {
	services *service.ClientServices
	commands map[string]command
	browser  Browser

	in          *bufio.Reader
	out         io.Writer
	interactive bool

	logger *logger.Logger
}

// NewApp builds the client. Prompts read from in and everything is written
// to out. interactive enables hidden password input on a terminal.
func NewApp(services *service.ClientServices, in io.Reader, out io.Writer, interactive bool, logger *logger.Logger) *App {
	a := &App{
		services:    services,
		browser:     tui.New(services.AccountService, logger),
		in:          newReader(in),
		out:         out,
		interactive: interactive,
		logger:      logger,
	}

	a.commands = map[string]command{
		"register": a.register,
		"login":    a.login,
		"logout":   a.logout,
		"list":     a.list,
		"browse":   a.browse,
		"search":   a.search,
		"show":     a.show,
		"create":   a.create,
		"update":   a.update,
		"delete":   a.delete,
		"version":  a.version,
		"help":     a.help,
	}

	return a
}

// Run dispatches args[0]. Every command except register, login, version and
// help needs a restored local session.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.help(ctx, nil)
	}

	name := args[0]
	cmd, ok := a.commands[name]
	if !ok {
		a.help(ctx, nil)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	switch name {
	case "register", "login", "version", "help":
	default:
		if _, err := a.services.AuthService.RestoreSession(ctx); err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				fmt.Fprintln(a.out, errorStyle.Render("Not logged in. Run `login` first."))
			}
			return err
		}
	}

	err := cmd(ctx, args[1:])
	if err != nil {
		a.logger.Err(err).Str("func", "App.Run").Str("command", name).Msg("command failed")
		a.explain(err)
	}
	return err
}

// explain prints a short message for errors the user can act on.
func (a *App) explain(err error) {
	var msg string
	switch {
	case errors.Is(err, service.ErrAccountUnavailable):
		msg = "This account is no longer available."
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid), errors.Is(err, service.ErrNotLoggedIn):
		msg = "Your login has expired. Run `login` again."
	case errors.Is(err, service.ErrWrongPassword):
		msg = "Invalid login or password."
	case errors.Is(err, service.ErrInvalidAccount):
		msg = err.Error()
	default:
		return
	}
	fmt.Fprintln(a.out, errorStyle.Render(msg))
}

func (a *App) help(_ context.Context, _ []string) error {
	renderTitle(a.out, "go-accounts client")
	fmt.Fprintln(a.out, `Commands:
  register                       create a user and log in
  login                          log in
  logout                         end the session
  list                           list visible accounts
  browse [QUERY]                 page, search and delete accounts interactively
  search QUERY                   search accounts by name
  show ID                        show one account
  create -name NAME [flags]      create an account
  update ID [flags]              change an account
  delete ID                      delete an account
  version                        print the server version`)
	fmt.Fprintln(a.out, helpStyle.Render("Account flags: -access Public|Private|Shared -users 2,3 -website -phone -email -notes"))
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: an account id is required", ErrUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q is not an account id", ErrUsage, args[0])
	}
	return id, nil
}
