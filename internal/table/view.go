package table

// ControlKind is the kind of input shown in the filter row.
type ControlKind int

const (
	ControlText ControlKind = iota
	ControlNumber
	ControlSelect
)

type HeaderCell struct {
	Column    int
	Title     string
	Sortable  bool
	Position  int // 1-based sort priority, 0 when unsorted
	Direction Direction
	Hidden    bool
}

type FilterControl struct {
	Column  int
	Kind    ControlKind
	Value   string
	Options []string
	Step    float64
	Hidden  bool
}

type BodyRow struct {
	Row    int
	Key    string
	Cells  []string
	Hidden bool
	// Stripe alternates over the rendered (visible) rows in display order.
	Stripe bool
}

// View is the structure of the rendered table, independent of any terminal.
type View struct {
	Headers  []HeaderCell
	Controls []FilterControl
	Body     []BodyRow
	Results  string
}

// View builds the header row, filter row and body in the current order.
// Column visibility is reported once per column, never per row.
func (t *Table) View() View {
	v := View{
		Headers:  make([]HeaderCell, len(t.cols)),
		Controls: make([]FilterControl, len(t.cols)),
		Body:     make([]BodyRow, 0, len(t.order)),
		Results:  t.ResultsLabel(),
	}
	for _, c := range t.cols {
		hidden := t.ColumnHidden(c.Index)
		h := HeaderCell{Column: c.Index, Title: c.Title, Sortable: c.Sortable, Hidden: hidden}
		if pos, dir, ok := t.SortPosition(c.Index); ok {
			h.Position, h.Direction = pos, dir
		}
		v.Headers[c.Index] = h

		ctl := FilterControl{Column: c.Index, Kind: ControlText, Value: t.queries[c.Index], Step: c.Step, Hidden: hidden}
		switch {
		case len(c.Options) > 0:
			ctl.Kind = ControlSelect
			ctl.Options = c.Options
		case c.Numeric:
			ctl.Kind = ControlNumber
		}
		v.Controls[c.Index] = ctl
	}
	stripe := false
	for _, i := range t.order {
		br := BodyRow{Row: i, Key: t.rows[i].Key, Cells: t.cells[i], Hidden: t.RowHidden(i)}
		if !br.Hidden {
			br.Stripe = stripe
			stripe = !stripe
		}
		v.Body = append(v.Body, br)
	}
	return v
}

// VisibleColumns returns the indices of the columns not hidden table-wide.
func (v View) VisibleColumns() []int {
	out := make([]int, 0, len(v.Headers))
	for _, h := range v.Headers {
		if !h.Hidden {
			out = append(out, h.Column)
		}
	}
	return out
}
