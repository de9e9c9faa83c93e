package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	PrevColumn  key.Binding
	NextColumn  key.Binding
	Sort        key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	ClearAll    key.Binding
	Where       key.Binding
	Inspect     key.Binding
	Stats       key.Binding
	Copy        key.Binding
	Export      key.Binding
	Explain     key.Binding
	AppLogs     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PrevColumn:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		NextColumn:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Filter:      key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter column")),
		ClearFilter: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear column filter")),
		ClearAll:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all filters")),
		Where:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "where expression")),
		Inspect:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "inspect row")),
		Stats:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "column stats")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy row")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Explain:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "summarize (OpenAI)")),
		AppLogs:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "app logs")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Filter, k.ClearFilter, k.Where, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.PrevColumn, k.NextColumn, k.Sort, k.Filter, k.ClearFilter, k.ClearAll, k.Where},
		{k.Inspect, k.Stats, k.Copy, k.Export, k.Explain, k.AppLogs, k.Help, k.Quit},
	}
}
