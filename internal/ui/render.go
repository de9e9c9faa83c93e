package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"statboard/internal/table"
)

func (m *Model) View() string {
	var v string
	switch m.phase {
	case phaseLoading:
		v = fmt.Sprintf("\n  %s Loading statistics from %s...\n", m.spin.View(), m.cfg.Source())
	case phasePayloadError:
		v = m.renderError("The statistics service reported an error", m.errText)
	case phaseFailed:
		v = m.renderError("Could not load statistics", m.errText)
	default:
		v = m.renderTable()
	}
	if m.modalActive {
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderModal())
	}
	return v
}

func (m *Model) renderError(title, text string) string {
	w := m.termWidth - 4
	if w < 20 {
		w = 20
	}
	body := m.styles.Error.Render(title) + "\n\n" + text
	hint := m.styles.Help.Render("[L]=app logs  [q]=quit")
	return m.styles.ErrorBox.Width(w).Render(body) + "\n" + hint
}

func (m *Model) renderTable() string {
	cols := m.tbl.Columns()
	visCols := m.view.VisibleColumns()
	var b strings.Builder

	title := m.styles.Title.Render("statboard")
	info := fmt.Sprintf("  %s  rows: %d", m.cfg.Source(), m.tbl.Len())
	if m.updates != nil {
		info += fmt.Sprintf("  reloads: %d", m.reloads)
	}
	if m.netBusy {
		info += "  " + m.spin.View()
	}
	b.WriteString(title + m.styles.Status.Render(info) + "\n")

	ts := m.styles.TableStyles
	controls := make([]string, 0, len(visCols))
	for _, c := range visCols {
		controls = append(controls, m.renderControl(m.view.Controls[c], cols[c], ts))
	}
	b.WriteString(strings.Join(controls, " ") + "\n")
	b.WriteString(m.grid.View() + "\n")
	if m.edit == editWhere {
		b.WriteString(m.where.View() + "\n")
	} else if w := m.tbl.Where(); w != "" {
		b.WriteString(ts.Filter.Render("where: "+w) + "\n")
	}

	status := []string{}
	if r := m.view.Results; r != "" {
		status = append(status, r)
	}
	if len(m.visible) == 0 {
		status = append(status, "no rows match")
	}
	if s := m.tbl.Sort(); len(s) > 0 {
		status = append(status, "sort: "+m.describeSort(s))
	}
	if m.lastMsg != "" {
		status = append(status, m.lastMsg)
	}
	b.WriteString(m.styles.Status.Render(strings.Join(status, "  |  ")) + "\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keymap)))
	return b.String()
}

// headerTitle is a column title with its sort rank and direction in front;
// the selected column is marked with ›.
func (m *Model) headerTitle(h table.HeaderCell) string {
	title := h.Title
	if h.Position > 0 {
		title = fmt.Sprintf("%s%d %s", h.Direction.Arrow(), h.Position, title)
	}
	if h.Column == m.selCol {
		title = "›" + title
	}
	return title
}

func (m *Model) renderControl(ctl table.FilterControl, c table.Column, ts TableStyles) string {
	box := lipgloss.NewStyle().Width(c.Width).MaxWidth(c.Width)
	if ctl.Kind == table.ControlSelect {
		v := ctl.Value
		if v == "" {
			return box.Render(ts.FilterEmpty.Render("[any]"))
		}
		return box.Render(ts.Filter.Render("[" + v + "]"))
	}
	if m.edit == editFilter && ctl.Column == m.selCol {
		return box.Render(m.inputs[ctl.Column].View())
	}
	if ctl.Value == "" {
		return box.Render(ts.FilterEmpty.Render(strings.Repeat("·", c.Width)))
	}
	return box.Render(ts.Filter.Render(truncateRunes(ctl.Value, c.Width)))
}

func (m *Model) describeSort(s table.SortState) string {
	cols := m.tbl.Columns()
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = cols[k.Column].Title + " " + k.Direction.Arrow()
	}
	return strings.Join(parts, ", ")
}

// alignCell right-aligns numbers within the column width; the grid cuts
// anything longer.
func alignCell(s string, c table.Column) string {
	if c.Numeric {
		return padLeft(s, c.Width)
	}
	return s
}

func (m *Model) openModal(kind modalKind, title, body string) {
	m.modalActive = true
	m.modalKind = kind
	m.modalTitle = title
	m.modalBody = body
	m.resizeModal()
}

func (m *Model) resizeModal() {
	w := m.termWidth - 6
	h := m.termHeight - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.modalVP = viewport.New(w-4, h-4)
	m.modalVP.SetContent(m.modalBody)
}

func (m *Model) renderModal() string {
	hint := "[esc/enter]=close  [↑/↓]=scroll  [c]=copy"
	if m.modalKind == modalHelp {
		hint = "[esc/enter]=close"
	}
	content := m.modalVP.View() + "\n" + m.styles.Help.Render(hint)
	if m.modalKind == modalLogs && m.tbl != nil {
		head := fmt.Sprintf("rows: %d  visible: %d  reloads: %d  source: %s", m.tbl.Len(), m.tbl.VisibleCount(), m.reloads, m.cfg.Source())
		content = m.styles.Help.Render(head) + "\n" + content
	}
	boxW := m.termWidth - 6
	if boxW < 20 {
		boxW = 20
	}
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}
