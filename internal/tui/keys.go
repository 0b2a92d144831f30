package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	next    key.Binding
	prev    key.Binding
	search  key.Binding
	enter   key.Binding
	esc     key.Binding
	refresh key.Binding
	delete  key.Binding
	quit    key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	next:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("n", "next page")),
	prev:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("p", "previous page")),
	search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n", "esc")),
}

// browseHelp is the hint line under the table.
func browseHelp() string {
	bindings := []key.Binding{keys.prev, keys.next, keys.search, keys.esc, keys.delete, keys.refresh, keys.quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
