package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// browseModel pages through the visible accounts in a table. The whole
// listing is fetched once per load and cut into pages locally.
type browseModel struct {
	ctx      context.Context
	accounts service.ClientAccountService

	table   table.Model
	search  textinput.Model
	spinner spinner.Model

	items   []models.Account
	page    int
	perPage int
	query   string

	searching  bool
	confirming *models.Account
	loading    bool
	status     string
	errMsg     string

	// fatal ends the program; it is returned from Browse.
	fatal error
}

func newBrowseModel(ctx context.Context, accounts service.ClientAccountService, perPage int, query string) browseModel {
	if perPage < 1 {
		perPage = defaultPerPage
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: 32},
			{Title: "Access", Width: 8},
			{Title: "Updated", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(perPage+1),
	)
	t.SetStyles(tableStyles())

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "account name"
	search.CharLimit = 128
	search.SetValue(query)

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return browseModel{
		ctx:      ctx,
		accounts: accounts,
		table:    t,
		search:   search,
		spinner:  s,
		page:     1,
		perPage:  perPage,
		query:    strings.TrimSpace(query),
		loading:  true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.items = msg.accounts
		m.page = min(m.page, m.totalPages())
		m.refreshRows()
		return m, nil
	case accountDeletedMsg:
		if errors.Is(msg.err, service.ErrAccountUnavailable) {
			m.errMsg = "This account is no longer available."
			return m, m.cmdLoad()
		}
		if msg.err != nil {
			m.loading = false
			return m.fail(msg.err)
		}
		m.status = fmt.Sprintf("Account #%d %s has been deleted.", msg.account.ID, msg.account.Name)
		m.errMsg = ""
		return m, m.cmdLoad()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case m.confirming != nil:
		return m.updateConfirm(msg)
	case m.searching:
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.esc):
		if m.query == "" {
			return m, nil
		}
		m.query = ""
		m.search.SetValue("")
		return m.reload(1)
	case key.Matches(msg, keys.next):
		m.turnPage(m.page + 1)
		return m, nil
	case key.Matches(msg, keys.prev):
		m.turnPage(m.page - 1)
		return m, nil
	case key.Matches(msg, keys.refresh):
		return m.reload(m.page)
	case key.Matches(msg, keys.delete):
		if account, ok := m.current(); ok {
			m.confirming = &account
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		account := *m.confirming
		m.confirming = nil
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdDelete(account))
	case key.Matches(msg, keys.no):
		m.confirming = nil
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		return m.reload(1)
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m browseModel) reload(page int) (tea.Model, tea.Cmd) {
	m.page = page
	m.loading = true
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, m.cmdLoad())
}

// fail shows err, or ends the browser when the login is gone.
func (m browseModel) fail(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) || errors.Is(err, service.ErrNotLoggedIn) {
		m.fatal = err
		return m, tea.Quit
	}
	m.errMsg = err.Error()
	return m, nil
}

func (m browseModel) cmdLoad() tea.Cmd {
	ctx, accounts, query := m.ctx, m.accounts, m.query
	return func() tea.Msg {
		var (
			items []models.Account
			err   error
		)
		if query == "" {
			items, err = accounts.List(ctx)
		} else {
			items, err = accounts.Search(ctx, query)
		}
		return accountsLoadedMsg{accounts: items, err: err}
	}
}

func (m browseModel) cmdDelete(account models.Account) tea.Cmd {
	ctx, accounts := m.ctx, m.accounts
	return func() tea.Msg {
		return accountDeletedMsg{account: account, err: accounts.Delete(ctx, account.ID)}
	}
}

func (m *browseModel) turnPage(page int) {
	page = max(1, min(page, m.totalPages()))
	if page == m.page {
		return
	}
	m.page = page
	m.refreshRows()
	m.table.SetCursor(0)
}

func (m browseModel) totalPages() int {
	return max(1, (len(m.items)+m.perPage-1)/m.perPage)
}

func (m browseModel) pageItems() []models.Account {
	from := min((m.page-1)*m.perPage, len(m.items))
	to := min(from+m.perPage, len(m.items))
	return m.items[from:to]
}

func (m browseModel) current() (models.Account, bool) {
	items := m.pageItems()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(items) {
		return models.Account{}, false
	}
	return items[idx], true
}

func (m *browseModel) refreshRows() {
	items := m.pageItems()
	rows := make([]table.Row, len(items))
	for i, account := range items {
		rows[i] = table.Row{
			strconv.FormatInt(account.ID, 10),
			fitText(account.Name, 32),
			string(account.Access),
			humanize.Time(account.UpdatedAt),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m browseModel) View() string {
	title := "Accounts"
	if m.query != "" {
		title = fmt.Sprintf("Accounts matching %q", m.query)
	}
	if m.loading {
		title += "  " + m.spinner.View()
	}

	var body strings.Builder
	if len(m.items) == 0 && !m.loading {
		body.WriteString(helpStyle.Render("No accounts."))
	} else {
		body.WriteString(m.table.View())
		body.WriteString("\n\n")
		body.WriteString(helpStyle.Render(fmt.Sprintf("Page %d of %d, %s %s",
			m.page, m.totalPages(), humanize.Comma(int64(len(m.items))), english.PluralWord(len(m.items), "account", ""))))
	}

	if m.searching {
		body.WriteString("\n\n")
		body.WriteString(m.search.View())
	}
	if m.confirming != nil {
		body.WriteString("\n\n")
		body.WriteString(overlayBoxStyle.Render(fmt.Sprintf("Delete %q?\n\ny yes    n no", m.confirming.Name)))
	}
	if m.status != "" {
		body.WriteString("\n\n")
		body.WriteString(noticeStyle.Render(m.status))
	}
	if m.errMsg != "" {
		body.WriteString("\n\n")
		body.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}

	return renderPage(title, body.String(), browseHelp())
}
