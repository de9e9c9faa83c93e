package table

import (
	"strconv"

	"statboard/internal/filter"
	"statboard/internal/model"
)

// Mode decides when a column is shown relative to the category filter.
type Mode int

const (
	ModeAlways Mode = iota
	// ModeUnpinned columns are shown only while no category is selected.
	ModeUnpinned
	// ModePinned columns are shown only while a category is selected.
	ModePinned
)

// Display positions of the dashboard columns.
const (
	ColArtist = iota
	ColSFW
	ColShareGlobal
	ColShareCategory
	ColCommissions
	ColPictures
	ColPictureShare
)

// WhereColumn is the virtual column used by the expression filter in a row's
// hidden set.
const WhereColumn = -1

// Column describes one displayed field. The descriptor drives filtering,
// sorting and rendering; nothing branches on the index itself.
type Column struct {
	Index    int
	Title    string
	Match    filter.MatchKind
	Sortable bool
	Numeric  bool
	Step     float64
	Mode     Mode
	Options  []string
	Width    int
}

// CategoryOptions are the choices of the SFW selector, in cycle order.
var CategoryOptions = []string{"", "Yes", "No"}

// Columns returns the dashboard columns in display order.
func Columns() []Column {
	return []Column{
		{Index: ColArtist, Title: "Artist", Match: filter.MatchContains, Sortable: true, Width: 24},
		{Index: ColSFW, Title: "SFW", Match: filter.MatchCategorical, Options: CategoryOptions, Width: 5},
		{Index: ColShareGlobal, Title: "% of total", Match: filter.MatchPrefix, Sortable: true, Numeric: true, Step: 0.01, Mode: ModeUnpinned, Width: 11},
		{Index: ColShareCategory, Title: "% of category", Match: filter.MatchPrefix, Sortable: true, Numeric: true, Step: 0.01, Mode: ModePinned, Width: 14},
		{Index: ColCommissions, Title: "Commissions", Match: filter.MatchPrefix, Sortable: true, Numeric: true, Step: 1, Width: 12},
		{Index: ColPictures, Title: "Pictures", Match: filter.MatchPrefix, Sortable: true, Numeric: true, Step: 1, Width: 9},
		{Index: ColPictureShare, Title: "Pictures/comm.", Match: filter.MatchPrefix, Sortable: true, Numeric: true, Step: 0.01, Width: 15},
	}
}

// Cell renders the displayed text of one row at one column.
func Cell(r model.Row, col int) string {
	switch col {
	case ColArtist:
		return r.Key
	case ColSFW:
		if r.SFW {
			return "Yes"
		}
		return "No"
	case ColShareGlobal:
		return percent(r.ShareOfGlobal)
	case ColShareCategory:
		return percent(r.ShareOfCategory)
	case ColCommissions:
		return strconv.Itoa(r.Commissions)
	case ColPictures:
		return strconv.Itoa(r.Thumbnails)
	case ColPictureShare:
		return percent(r.PictureShare)
	}
	return ""
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// rowParams exposes a row to the where expression.
func rowParams(r model.Row) map[string]any {
	return map[string]any{
		"key":            r.Key,
		"sfw":            r.SFW,
		"commissions":    float64(r.Commissions),
		"thumbnails":     float64(r.Thumbnails),
		"share_global":   r.ShareOfGlobal,
		"share_category": r.ShareOfCategory,
		"picture_share":  r.PictureShare,
	}
}
