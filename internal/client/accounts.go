package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-accounts/models"
)

func (a *App) list(ctx context.Context, _ []string) error {
	accounts, err := a.services.AccountService.List(ctx)
	if err != nil {
		return err
	}

	renderAccounts(a.out, "Accounts", accounts)
	return nil
}

// browse hands the terminal to the interactive browser.
func (a *App) browse(ctx context.Context, args []string) error {
	if !a.interactive {
		return fmt.Errorf("%w: browse needs a terminal", ErrUsage)
	}
	return a.browser.Browse(ctx, strings.Join(args, " "))
}

func (a *App) search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	accounts, err := a.services.AccountService.Search(ctx, query)
	if err != nil {
		return err
	}

	title := "Accounts"
	if query != "" {
		title = fmt.Sprintf("Accounts matching %q", query)
	}
	renderAccounts(a.out, title, accounts)
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	account, err := a.services.AccountService.Show(ctx, id)
	if err != nil {
		return err
	}

	renderAccount(a.out, account)
	return nil
}

func (a *App) create(ctx context.Context, args []string) error {
	request, err := parseAccountFlags("create", args)
	if err != nil {
		return err
	}

	account, err := a.services.AccountService.Create(ctx, request)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, noticeStyle.Render(fmt.Sprintf("Created #%d %s.", account.ID, account.Name)))
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: an account id is required", ErrUsage)
	}
	id, err := parseID(args[:1])
	if err != nil {
		return err
	}

	request, err := parseAccountFlags("update", args[1:])
	if err != nil {
		return err
	}

	account, err := a.services.AccountService.Update(ctx, id, request)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, noticeStyle.Render(fmt.Sprintf("Saved #%d %s.", account.ID, account.Name)))
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if err = a.services.AccountService.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, noticeStyle.Render(fmt.Sprintf("Account #%d has been deleted.", id)))
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	version, err := a.services.AccountService.ServerVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, version)
	return nil
}

// parseAccountFlags builds a request from the flags that were given. Flags
// left out stay nil so an update only touches what the user named.
func parseAccountFlags(name string, args []string) (models.AccountRequest, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("name", "", "account name")
	fs.String("access", "", "Public, Private or Shared")
	fs.String("users", "", "comma separated user ids for Shared access")
	fs.String("website", "", "website")
	fs.String("phone", "", "phone")
	fs.String("email", "", "email")
	fs.String("notes", "", "notes")
	if err := fs.Parse(args); err != nil {
		return models.AccountRequest{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	var (
		request models.AccountRequest
		err     error
	)
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "name":
			request.Name = &value
		case "access":
			access := models.AccessMode(value)
			request.Access = &access
		case "users":
			request.Users, err = parseUserIDs(value)
		case "website":
			request.Website = &value
		case "phone":
			request.Phone = &value
		case "email":
			request.Email = &value
		case "notes":
			request.Notes = &value
		}
	})

	return request, err
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a user id", ErrUsage, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
