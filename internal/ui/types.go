package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"statboard/internal/ai"
	"statboard/internal/config"
	"statboard/internal/model"
	"statboard/internal/source"
	"statboard/internal/table"
)

type phase int

const (
	phaseLoading phase = iota
	phaseReady
	// phasePayloadError shows the upstream's own error text instead of the table.
	phasePayloadError
	// phaseFailed is a transport or parse failure; terminal for this run.
	phaseFailed
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalInspect
	modalStats
	modalLogs
	modalExplain
)

type editMode int

const (
	editNone editMode = iota
	editFilter
	editWhere
)

type Model struct {
	ctx  context.Context
	cfg  *config.Config
	opts source.Options

	phase   phase
	errText string

	// Data
	tbl  *table.Table
	view table.View
	// visible holds the body rows currently rendered, in display order.
	visible []table.BodyRow

	// UI
	styles     Styles
	keymap     KeyMap
	help       help.Model
	spin       spinner.Model
	inputs     []textinput.Model
	where      textinput.Model
	edit       editMode
	grid       btable.Model
	selCol     int
	termWidth  int
	termHeight int

	summaries *ai.Cache

	// Follow mode
	updates <-chan source.Update
	reloads int

	// status
	lastMsg string
	netBusy bool

	// Modal popup
	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string
}

type loadedMsg struct {
	rows   []model.Row
	totals model.Totals
	err    error
}

type followStartedMsg struct{ ch <-chan source.Update }

type followMsg struct{ update source.Update }

type explainDoneMsg struct {
	text string
	err  error
}

type toastMsg struct{ text string }
