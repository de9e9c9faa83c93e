package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"statboard/internal/ai"
	"statboard/internal/config"
	"statboard/internal/source"
	"statboard/internal/table"
)

// SourceOptions maps the configuration to a payload source.
func SourceOptions(cfg *config.Config) source.Options {
	opt := source.Options{Kind: source.KindDemo, Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second}
	switch {
	case cfg.URL != "":
		opt.Kind, opt.URL = source.KindURL, cfg.URL
	case cfg.FilePath != "":
		opt.Kind, opt.Path = source.KindFile, cfg.FilePath
	case cfg.UseStdin:
		opt.Kind = source.KindStdin
	}
	return opt
}

func initialModel(ctx context.Context, cfg *config.Config) *Model {
	m := &Model{
		ctx:    ctx,
		cfg:    cfg,
		opts:   SourceOptions(cfg),
		phase:  phaseLoading,
		styles: NewStyles(cfg.Theme == config.ThemeDark),
		keymap: DefaultKeyMap(),
		help:   help.New(),
		spin:   spinner.New(),
		where:  textinput.New(),

		summaries: ai.NewCache(""),
	}
	m.spin.Spinner = spinner.Dot
	m.where.Prompt = "where: "
	m.where.Placeholder = "commissions > 10 && sfw"
	m.where.CharLimit = 256
	m.modalVP = viewport.New(80, 20)
	m.grid = newGrid(m.styles, 20)

	cols := table.Columns()
	m.inputs = make([]textinput.Model, len(cols))
	for _, c := range cols {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = "filter"
		in.CharLimit = 64
		in.Width = c.Width - 1
		if c.Numeric {
			in.Placeholder = "#"
		}
		m.inputs[c.Index] = in
	}
	return m
}

func newGrid(st Styles, height int) btable.Model {
	g := btable.New(btable.WithFocused(true), btable.WithHeight(height))
	// Remove default padding to make width math exact
	ts := btable.DefaultStyles()
	ts.Header = st.TableStyles.Header.Copy().PaddingRight(1)
	ts.Cell = st.TableStyles.Cell.Copy().PaddingRight(1)
	ts.Selected = st.TableStyles.Selected
	g.SetStyles(ts)
	return g
}

func Run(ctx context.Context, cfg *config.Config) error {
	m := initialModel(ctx, cfg)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadCmd(m.ctx, m.opts))
}
