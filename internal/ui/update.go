package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"statboard/internal/table"
	"statboard/internal/util/logx"
)

// headerRow is the screen line of the grid's header: below the title and
// the filter row.
const headerRow = 2

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil
	case spinner.TickMsg:
		if m.phase != phaseLoading && !m.netBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case loadedMsg:
		return m, m.onLoaded(msg)
	case followStartedMsg:
		m.updates = msg.ch
		m.lastMsg = "following " + m.opts.Path
		return m, waitForUpdate(m.updates)
	case followMsg:
		m.onFollow(msg.update)
		return m, waitForUpdate(m.updates)
	case explainDoneMsg:
		m.netBusy = false
		if msg.err != nil {
			m.lastMsg = "summary failed: " + msg.err.Error()
			logx.Errorf("openai: %v", msg.err)
			return m, nil
		}
		m.lastMsg = ""
		m.openModal(modalExplain, "Summary", msg.text)
		return m, nil
	case toastMsg:
		m.lastMsg = msg.text
		return m, nil
	case tea.MouseMsg:
		if m.phase == phaseReady && !m.modalActive && msg.Type == tea.MouseLeft && msg.Y == headerRow {
			if col, ok := m.columnAt(msg.X); ok {
				m.selCol = col
				m.clickColumn(col)
				m.syncGrid()
			}
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.modalActive {
		return m.handleModalKey(msg)
	}
	if m.phase != phaseReady {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.AppLogs):
			m.openModal(modalLogs, "Application Logs", m.logsBody())
		}
		return m, nil
	}
	switch m.edit {
	case editFilter:
		return m.handleFilterKey(msg)
	case editWhere:
		return m.handleWhereKey(msg)
	}

	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.Up):
		m.grid.MoveUp(1)
	case key.Matches(msg, km.Down):
		m.grid.MoveDown(1)
	case key.Matches(msg, km.PageUp):
		m.grid.MoveUp(m.grid.Height())
	case key.Matches(msg, km.PageDown):
		m.grid.MoveDown(m.grid.Height())
	case key.Matches(msg, km.Top):
		m.grid.GotoTop()
	case key.Matches(msg, km.Bottom):
		m.grid.GotoBottom()
	case key.Matches(msg, km.PrevColumn):
		m.moveColumn(-1)
		m.syncGrid()
	case key.Matches(msg, km.NextColumn):
		m.moveColumn(1)
		m.syncGrid()
	case key.Matches(msg, km.Sort):
		m.clickColumn(m.selCol)
	case key.Matches(msg, km.Filter):
		return m, m.beginFilter()
	case key.Matches(msg, km.ClearFilter):
		m.setFilter(m.selCol, "")
	case key.Matches(msg, km.ClearAll):
		m.tbl.ClearFilters()
		m.syncInputs()
		m.refresh()
		m.lastMsg = "filters cleared"
	case key.Matches(msg, km.Where):
		m.edit = editWhere
		m.where.SetValue(m.tbl.Where())
		m.where.CursorEnd()
		m.layout()
		return m, m.where.Focus()
	case key.Matches(msg, km.Inspect):
		if br, ok := m.selectedRow(); ok {
			m.openModal(modalInspect, br.Key, renderRowDetail(m.tbl.Row(br.Row), m.tbl.Totals(), m.styles))
		}
	case key.Matches(msg, km.Stats):
		col := m.tbl.Columns()[m.selCol]
		m.openModal(modalStats, "Stats: "+col.Title, buildStats(m.tbl, col, m.visible))
	case key.Matches(msg, km.Copy):
		m.copySelected()
	case key.Matches(msg, km.Export):
		m.exportView()
	case key.Matches(msg, km.Explain):
		if !m.netBusy {
			return m, m.startExplain()
		}
	case key.Matches(msg, km.AppLogs):
		m.openModal(modalLogs, "Application Logs", m.logsBody())
	case key.Matches(msg, km.Help):
		h := m.help
		h.ShowAll = true
		m.openModal(modalHelp, "Help", h.View(m.keymap))
	}
	return m, nil
}

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.modalActive = false
		m.modalKind = modalNone
		return m, nil
	case "c":
		if m.modalKind != modalHelp {
			copyToClipboard(m.modalBody)
			m.lastMsg = "copied to clipboard"
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

// beginFilter focuses the selected column's filter control. The category
// selector has no text input; each press advances to the next option.
func (m *Model) beginFilter() tea.Cmd {
	col := m.tbl.Columns()[m.selCol]
	if len(col.Options) > 0 {
		m.setFilter(col.Index, nextOption(col.Options, m.tbl.Query(col.Index)))
		return nil
	}
	m.edit = editFilter
	in := &m.inputs[col.Index]
	in.CursorEnd()
	return in.Focus()
}

func nextOption(opts []string, cur string) string {
	for i, o := range opts {
		if strings.EqualFold(o, cur) {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := m.tbl.Columns()[m.selCol]
	in := &m.inputs[col.Index]
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyTab:
		in.Blur()
		m.edit = editNone
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if col.Numeric {
			sign := 1.0
			if msg.Type == tea.KeyDown {
				sign = -1
			}
			in.SetValue(stepValue(in.Value(), sign*col.Step))
			in.CursorEnd()
			m.setFilter(col.Index, in.Value())
		}
		return m, nil
	case tea.KeyRunes:
		if col.Numeric {
			msg.Runes = numericRunes(msg.Runes)
			if len(msg.Runes) == 0 {
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	before := in.Value()
	*in, cmd = in.Update(msg)
	if in.Value() != before {
		m.setFilter(col.Index, in.Value())
	}
	return m, cmd
}

func (m *Model) handleWhereKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.where.Blur()
		m.edit = editNone
		m.layout()
		return m, nil
	case tea.KeyEnter:
		if err := m.tbl.SetWhere(m.where.Value()); err != nil {
			m.lastMsg = "where: " + err.Error()
			return m, nil
		}
		m.where.Blur()
		m.edit = editNone
		m.lastMsg = ""
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.where, cmd = m.where.Update(msg)
	return m, cmd
}

func (m *Model) setFilter(col int, value string) {
	if err := m.tbl.SetColumnFilter(col, value); err != nil {
		m.lastMsg = err.Error()
		return
	}
	m.inputs[col].SetValue(m.tbl.Query(col))
	m.refresh()
}

func (m *Model) clickColumn(col int) {
	if !m.tbl.ClickColumn(col) {
		m.lastMsg = m.tbl.Columns()[col].Title + " is not sortable"
		return
	}
	m.lastMsg = ""
	m.refresh()
}

// numericRunes keeps the characters a number filter accepts.
func numericRunes(rs []rune) []rune {
	out := rs[:0]
	for _, r := range rs {
		if (r >= '0' && r <= '9') || r == '.' || r == '%' {
			out = append(out, r)
		}
	}
	return out
}

// stepValue adds delta to the number in s, never going below zero. The result
// is rounded to delta's precision and printed like the cells are, without
// trailing zeros, so it can prefix-match them.
func stepValue(s string, delta float64) string {
	v, _ := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	step := math.Abs(delta)
	decimals := 0
	if _, frac, ok := strings.Cut(strconv.FormatFloat(step, 'f', -1, 64), "."); ok {
		decimals = len(frac)
	}
	scale := math.Pow10(decimals)
	v = math.Round((v+delta)/step) * step
	v = math.Round(v*scale) / scale
	if v < 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// syncInputs copies the table's queries into the filter inputs.
func (m *Model) syncInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue(m.tbl.Query(i))
	}
	m.where.SetValue(m.tbl.Where())
}

// refresh rebuilds the structural view after any table change.
func (m *Model) refresh() {
	m.view = m.tbl.View()
	m.visible = m.visible[:0]
	for _, br := range m.view.Body {
		if !br.Hidden {
			m.visible = append(m.visible, br)
		}
	}
	if m.tbl.ColumnHidden(m.selCol) {
		m.moveColumn(1)
	}
	m.syncGrid()
}

func (m *Model) moveColumn(delta int) {
	cols := m.view.VisibleColumns()
	if len(cols) == 0 {
		return
	}
	pos := -1
	for i, c := range cols {
		if c == m.selCol {
			pos = i
			break
		}
	}
	if pos < 0 {
		// selected column just became hidden; take its nearest visible neighbour
		for i, c := range cols {
			if c > m.selCol {
				m.selCol = c
				return
			}
			pos = i
		}
		m.selCol = cols[pos]
		return
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(cols) {
		pos = len(cols) - 1
	}
	m.selCol = cols[pos]
}

// syncGrid loads the visible columns and rows into the grid, keeping the
// cursor on the same position where possible.
func (m *Model) syncGrid() {
	cols := m.tbl.Columns()
	vis := m.view.VisibleColumns()
	gc := make([]btable.Column, len(vis))
	for i, c := range vis {
		gc[i] = btable.Column{Title: m.headerTitle(m.view.Headers[c]), Width: cols[c].Width}
	}
	rows := make([]btable.Row, len(m.visible))
	for i, br := range m.visible {
		r := make(btable.Row, len(vis))
		for j, c := range vis {
			r[j] = alignCell(br.Cells[c], cols[c])
		}
		rows[i] = r
	}
	cursor := m.grid.Cursor()
	// rows are dropped first so they never outnumber the columns
	m.grid.SetRows(nil)
	m.grid.SetColumns(gc)
	m.grid.SetRows(rows)
	m.grid.SetCursor(cursor)
	m.layout()
}

// layout gives the grid the lines left by the title, filter row, optional
// where line, status and help.
func (m *Model) layout() {
	h := m.termHeight - 4
	if m.edit == editWhere || m.tbl != nil && m.tbl.Where() != "" {
		h--
	}
	if h < 2 {
		h = 2
	}
	m.grid.SetHeight(h)
}

func (m *Model) selectedRow() (table.BodyRow, bool) {
	i := m.grid.Cursor()
	if i < 0 || i >= len(m.visible) {
		return table.BodyRow{}, false
	}
	return m.visible[i], true
}

// columnAt maps a terminal x position on the header row to a column.
func (m *Model) columnAt(x int) (int, bool) {
	cols := m.tbl.Columns()
	left := 0
	for _, c := range m.view.VisibleColumns() {
		right := left + cols[c].Width
		if x >= left && x < right {
			return c, true
		}
		left = right + 1
	}
	return 0, false
}

func (m *Model) copySelected() {
	br, ok := m.selectedRow()
	if !ok {
		return
	}
	cols := m.view.VisibleColumns()
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = br.Cells[c]
	}
	text := strings.Join(cells, "\t")
	if err := clipboard.WriteAll(text); err != nil {
		logx.Debugf("clipboard: %v, falling back to OSC52", err)
		copyToClipboard(text)
	}
	m.lastMsg = "copied " + br.Key
}
