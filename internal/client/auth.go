package client

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/MKhiriev/go-accounts/models"
)

func (a *App) credentials(name string, args []string, withName bool) (models.User, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	login := fs.String("login", "", "login")
	displayName := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	user := models.User{Login: *login, Name: *displayName}

	var err error
	if user.Login == "" {
		if user.Login, err = a.prompt("Login"); err != nil {
			return models.User{}, err
		}
	}
	if withName && user.Name == "" {
		if user.Name, err = a.prompt("Name"); err != nil {
			return models.User{}, err
		}
	}
	if user.Password, err = a.password(); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (a *App) register(ctx context.Context, args []string) error {
	user, err := a.credentials("register", args, true)
	if err != nil {
		return err
	}

	registered, err := a.services.AuthService.Register(ctx, user)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, noticeStyle.Render(fmt.Sprintf("Registered and logged in as %s.", registered.Login)))
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	user, err := a.credentials("login", args, false)
	if err != nil {
		return err
	}

	found, err := a.services.AuthService.Login(ctx, user)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, noticeStyle.Render(fmt.Sprintf("Logged in as %s.", found.Login)))
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.services.AuthService.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, noticeStyle.Render("Logged out."))
	return nil
}
