// Package tui implements the interactive account browser of the client.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultPerPage = 20

type TUI struct {
	accounts service.ClientAccountService
	perPage  int

	logger *logger.Logger
}

func New(accounts service.ClientAccountService, logger *logger.Logger) *TUI {
	return &TUI{accounts: accounts, perPage: defaultPerPage, logger: logger}
}

// Browse runs the browser full screen until the user quits. query, when not
// empty, is searched for right away. A rejected login ends the browser and
// is returned so the caller can ask for a new one.
func (t *TUI) Browse(ctx context.Context, query string) error {
	model := newBrowseModel(ctx, t.accounts, t.perPage, query)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		t.logger.Err(err).Str("func", "TUI.Browse").Msg("browser stopped")
		return err
	}

	result, ok := finalModel.(browseModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	return result.fatal
}
