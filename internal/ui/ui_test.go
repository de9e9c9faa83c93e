package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statboard/internal/config"
	"statboard/internal/model"
	"statboard/internal/source"
	"statboard/internal/table"
	"statboard/internal/util/logx"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newReadyModel(t *testing.T, cfg *config.Config) *Model {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{Theme: config.ThemeDark, OpenAITimeoutSec: 60}
	}
	m := initialModel(context.Background(), cfg)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	msg := loadCmd(context.Background(), source.Options{Kind: source.KindDemo})()
	m.Update(msg)
	require.Equal(t, phaseReady, m.phase)
	return m
}

func visibleKeys(m *Model) []string {
	out := make([]string, len(m.visible))
	for i, br := range m.visible {
		out[i] = br.Key
	}
	return out
}

func TestLoadedDemoShowsAllRows(t *testing.T) {
	m := newReadyModel(t, nil)
	assert.Len(t, m.visible, 10)
	assert.Equal(t, "Ashgrove", m.visible[0].Key)
	assert.Equal(t, "Juniper Vale", m.visible[9].Key)
	out := m.View()
	assert.Contains(t, out, "Artist")
	assert.NotContains(t, out, "Search results")
}

func TestGridShowsVisibleRowsAndSortMarks(t *testing.T) {
	m := newReadyModel(t, nil)
	require.Len(t, m.grid.Rows(), 10)
	assert.Equal(t, "Ashgrove", m.grid.Rows()[0][0])

	m.Update(runes("s"))
	assert.Contains(t, m.View(), "›▲1 Artist")

	m.Update(runes("G"))
	assert.Equal(t, 9, m.grid.Cursor())
	br, ok := m.selectedRow()
	require.True(t, ok)
	assert.Equal(t, "Juniper Vale", br.Key)

	// filtering keeps the cursor inside the shorter row set
	m.Update(runes("f"))
	m.Update(runes("ash"))
	require.Len(t, m.grid.Rows(), 1)
	assert.Equal(t, 0, m.grid.Cursor())
	br, ok = m.selectedRow()
	require.True(t, ok)
	assert.Equal(t, "Ashgrove", br.Key)
}

func TestGridRightAlignsNumbers(t *testing.T) {
	m := newReadyModel(t, nil)
	cols := m.tbl.Columns()
	// Artist, SFW, % of total, Commissions, ...
	row := m.grid.Rows()[0]
	assert.Equal(t, "Ashgrove", row[0])
	assert.Len(t, row[3], cols[table.ColCommissions].Width)
	assert.True(t, strings.HasSuffix(row[3], " 42"))
}

func TestPayloadErrorPanel(t *testing.T) {
	m := initialModel(context.Background(), &config.Config{Theme: config.ThemeLight})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(loadedMsg{err: &model.PayloadError{Message: "database offline"}})
	assert.Equal(t, phasePayloadError, m.phase)
	assert.Contains(t, m.View(), "database offline")
	assert.Nil(t, m.tbl)
}

func TestTransportFailurePanel(t *testing.T) {
	m := initialModel(context.Background(), &config.Config{Theme: config.ThemeDark})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(loadedMsg{err: errors.New("fetch url: connection refused")})
	assert.Equal(t, phaseFailed, m.phase)
	assert.Contains(t, m.View(), "connection refused")
}

func TestSortKeyCyclesSelectedColumn(t *testing.T) {
	m := newReadyModel(t, nil)
	m.Update(runes("s"))
	assert.Equal(t, "Ashgrove", m.visible[0].Key)
	m.Update(runes("s"))
	assert.Equal(t, "Juniper Vale", m.visible[0].Key)
	m.Update(runes("s"))
	assert.Empty(t, m.tbl.Sort())
	assert.Equal(t, "Ashgrove", m.visible[0].Key)
}

func TestTypingFiltersLive(t *testing.T) {
	m := newReadyModel(t, nil)
	m.Update(runes("f"))
	require.Equal(t, editFilter, m.edit)
	m.Update(runes("a"))
	m.Update(runes("sh"))
	assert.Equal(t, []string{"Ashgrove"}, visibleKeys(m))
	assert.Equal(t, "Search results: 1 results", m.view.Results)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, editNone, m.edit)
	m.Update(runes("x"))
	assert.Len(t, m.visible, 10)
	assert.Empty(t, m.view.Results)
}

func TestCategorySelectorCyclesAndPins(t *testing.T) {
	m := newReadyModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, table.ColSFW, m.selCol)

	m.Update(runes("f"))
	assert.Equal(t, "Yes", m.tbl.Query(table.ColSFW))
	assert.Len(t, m.visible, 6)
	assert.True(t, m.view.Headers[table.ColShareGlobal].Hidden)
	assert.False(t, m.view.Headers[table.ColShareCategory].Hidden)

	m.Update(runes("f"))
	assert.Equal(t, "No", m.tbl.Query(table.ColSFW))
	assert.Len(t, m.visible, 4)

	m.Update(runes("f"))
	assert.Equal(t, "", m.tbl.Query(table.ColSFW))
	assert.Len(t, m.visible, 10)
	assert.False(t, m.view.Headers[table.ColShareGlobal].Hidden)
	assert.True(t, m.view.Headers[table.ColShareCategory].Hidden)
}

func TestNumberFilterRejectsLettersAndSteps(t *testing.T) {
	m := newReadyModel(t, nil)
	for m.selCol != table.ColCommissions {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	m.Update(runes("f"))
	m.Update(runes("1x"))
	assert.Equal(t, "1", m.tbl.Query(table.ColCommissions))
	// 12 and 17 (twice) start with "1"
	assert.ElementsMatch(t, []string{"bellwether", "gloamling", "Harrow"}, visibleKeys(m))

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "2", m.tbl.Query(table.ColCommissions))
	assert.Equal(t, []string{"Eventide"}, visibleKeys(m))
}

func TestSteppingOntoWholePercentMatchesCells(t *testing.T) {
	m := newReadyModel(t, nil)
	for m.selCol != table.ColPictureShare {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	m.Update(runes("f"))
	m.Update(runes("99.99"))
	assert.Empty(t, m.visible)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "100", m.tbl.Query(table.ColPictureShare))
	assert.ElementsMatch(t, []string{"bellwether", "Eventide"}, visibleKeys(m))
}

func TestWhereExpression(t *testing.T) {
	m := newReadyModel(t, nil)
	m.Update(runes("w"))
	require.Equal(t, editWhere, m.edit)
	for _, r := range "commissions > 30" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, editNone, m.edit)
	assert.ElementsMatch(t, []string{"Ashgrove", "Cinder & Moss", "Juniper Vale"}, visibleKeys(m))

	m.Update(runes("w"))
	m.where.SetValue("commissions >")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, editWhere, m.edit, "a bad expression keeps the editor open")
	assert.True(t, strings.HasPrefix(m.lastMsg, "where:"))
	assert.Equal(t, "commissions > 30", m.tbl.Where())
}

func TestMouseClickOnHeaderSorts(t *testing.T) {
	m := newReadyModel(t, nil)
	cols := m.tbl.Columns()
	x := cols[table.ColArtist].Width + 1 + cols[table.ColSFW].Width + 1 + cols[table.ColShareGlobal].Width + 1 + cols[table.ColCommissions].Width + 1
	col, ok := m.columnAt(x)
	require.True(t, ok)
	assert.Equal(t, table.ColPictures, col)

	x = cols[table.ColArtist].Width + 1 + cols[table.ColSFW].Width + 1 + cols[table.ColShareGlobal].Width + 1
	m.Update(tea.MouseMsg{X: x, Y: headerRow, Type: tea.MouseLeft})
	m.Update(tea.MouseMsg{X: x, Y: headerRow, Type: tea.MouseLeft})
	assert.Equal(t, table.ColCommissions, m.selCol)
	assert.Equal(t, "Juniper Vale", m.visible[0].Key)
}

func TestModals(t *testing.T) {
	m := newReadyModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.modalActive)
	assert.Equal(t, modalInspect, m.modalKind)
	assert.Contains(t, m.modalBody, "Ashgrove")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.modalActive)

	for m.selCol != table.ColCommissions {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	m.Update(runes("t"))
	assert.Equal(t, modalStats, m.modalKind)
	assert.Contains(t, m.modalBody, "n=10")
	assert.Contains(t, m.modalBody, "sum")
	assert.Contains(t, m.modalBody, "223")
}

func TestLogsModalHighlightsErrors(t *testing.T) {
	m := newReadyModel(t, nil)
	logx.Infof("loaded demo rows")
	logx.Errorf("explain failed: quota")
	m.Update(runes("L"))
	require.True(t, m.modalActive)
	require.Equal(t, modalLogs, m.modalKind)
	body := stripANSI(m.modalBody)
	assert.Contains(t, body, "loaded demo rows")
	assert.Contains(t, body, "explain failed: quota")
	for _, l := range strings.Split(m.modalBody, "\n") {
		if strings.Contains(l, "explain failed: quota") {
			assert.Equal(t, m.styles.Error.Render(stripANSI(l)), l)
		}
	}
}

func TestExplainDisabledOffline(t *testing.T) {
	m := newReadyModel(t, &config.Config{Theme: config.ThemeDark, Offline: true, OpenAITimeoutSec: 60})
	_, cmd := m.Update(runes("i"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.lastMsg, "offline")
}

func TestApplyConfig(t *testing.T) {
	p, err := model.Decode(source.Demo())
	require.NoError(t, err)
	rows, tot, err := model.BuildRows(p)
	require.NoError(t, err)
	tb := table.New(rows, tot)
	cfg := &config.Config{Sort: "4:desc", Filters: []config.ColumnFilter{{Column: table.ColSFW, Value: "yes"}}, Where: "thumbnails > 10"}
	require.NoError(t, ApplyConfig(tb, cfg))
	got := []string{}
	for _, i := range tb.VisibleRows() {
		got = append(got, tb.Row(i).Key)
	}
	assert.Equal(t, []string{"Juniper Vale", "Ashgrove", "bellwether", "Harrow"}, got)

	assert.Error(t, ApplyConfig(tb, &config.Config{Sort: "1:asc"}))
	assert.Error(t, ApplyConfig(tb, &config.Config{Where: "commissions >"}))
}

func TestFollowReplacesRows(t *testing.T) {
	m := newReadyModel(t, nil)
	m.Update(runes("f"))
	m.Update(runes("a"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	p := model.Payload{SFW: model.Category{
		Artists:     model.Listing{Count: 2, Details: []string{"Alpha", "Zed"}},
		Commissions: model.Counter{Count: 3, Details: map[string]int{"Alpha": 1, "Zed": 2}},
		Thumbnails:  model.Counter{Count: 0, Details: map[string]int{}},
	}}
	m.onFollow(source.Update{Payload: p})
	assert.Equal(t, 1, m.reloads)
	assert.Equal(t, []string{"Alpha"}, visibleKeys(m))

	m.onFollow(source.Update{Err: errors.New("bad line")})
	assert.Equal(t, 1, m.reloads)
	assert.Contains(t, m.lastMsg, "bad line")
}

func TestStepValue(t *testing.T) {
	assert.Equal(t, "1", stepValue("", 1))
	assert.Equal(t, "0", stepValue("0", -1))
	assert.Equal(t, "12.51", stepValue("12.5%", 0.01))
	assert.Equal(t, "0", stepValue("0.01", -0.01))
	assert.Equal(t, "100", stepValue("99.99", 0.01))
	assert.Equal(t, "25", stepValue("25.01%", -0.01))
	assert.Equal(t, "0.3", stepValue("0.29", 0.01))
}

func TestNextOption(t *testing.T) {
	assert.Equal(t, "Yes", nextOption(table.CategoryOptions, ""))
	assert.Equal(t, "No", nextOption(table.CategoryOptions, "yes"))
	assert.Equal(t, "", nextOption(table.CategoryOptions, "No"))
}
