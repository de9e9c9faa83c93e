package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"statboard/internal/filter"
	"statboard/internal/model"
	"statboard/internal/util/logx"
)

// ColumnSet is a set of column indices.
type ColumnSet map[int]struct{}

// Sorted returns the members in ascending order.
func (s ColumnSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

var ErrNoColumn = errors.New("no such column")

// Table is the interactive state of one dashboard table: rows, the sort
// keys, the per-column filter values and each row's failing columns.
// It is not safe for concurrent use; the UI mutates it from one goroutine.
type Table struct {
	cols   []Column
	rows   []model.Row
	totals model.Totals
	cells  [][]string

	sort  SortState
	order []int

	queries map[int]string
	where   *filter.Evaluator
	hidden  []ColumnSet
	pinned  bool
}

func New(rows []model.Row, totals model.Totals) *Table {
	t := &Table{cols: Columns(), queries: map[int]string{}}
	t.load(rows, totals)
	return t
}

func (t *Table) load(rows []model.Row, totals model.Totals) {
	t.rows = rows
	t.totals = totals
	t.cells = make([][]string, len(rows))
	t.hidden = make([]ColumnSet, len(rows))
	for i, r := range rows {
		cells := make([]string, len(t.cols))
		for _, c := range t.cols {
			cells[c.Index] = Cell(r, c.Index)
		}
		t.cells[i] = cells
		t.hidden[i] = ColumnSet{}
	}
	t.resort()
}

// Replace swaps in a freshly built row set and re-applies the current sort
// and filters to it.
func (t *Table) Replace(rows []model.Row, totals model.Totals) {
	t.load(rows, totals)
	for col := range t.queries {
		t.recompute(col)
	}
	if t.where != nil {
		t.recomputeWhere()
	}
	logx.Debugf("table: replaced rows=%d filtered=%d", len(rows), t.FilteredCount())
}

func (t *Table) Columns() []Column { return t.cols }
func (t *Table) Len() int { return len(t.rows) }
func (t *Table) Row(i int) model.Row { return t.rows[i] }
func (t *Table) Totals() model.Totals { return t.totals }
func (t *Table) Cell(row, col int) string { return t.cells[row][col] }

func (t *Table) column(col int) (Column, error) {
	if col < 0 || col >= len(t.cols) {
		return Column{}, fmt.Errorf("%w: %d", ErrNoColumn, col)
	}
	return t.cols[col], nil
}

// Query returns the current filter value of col.
func (t *Table) Query(col int) string { return t.queries[col] }

// SetColumnFilter records value as col's predicate and updates col's
// membership in every row's hidden set. Other columns are left alone.
func (t *Table) SetColumnFilter(col int, value string) error {
	c, err := t.column(col)
	if err != nil {
		return err
	}
	if c.Match == filter.MatchCategorical {
		value, err = canonicalOption(c, value)
		if err != nil {
			return err
		}
	}
	if value == "" {
		delete(t.queries, col)
	} else {
		t.queries[col] = value
	}
	t.recompute(col)
	if c.Match == filter.MatchCategorical {
		t.pinned = value != ""
	}
	logx.Debugf("table: filter col=%d value=%q filtered=%d", col, value, t.FilteredCount())
	return nil
}

func (t *Table) ClearColumn(col int) error { return t.SetColumnFilter(col, "") }

// ClearFilters removes every column filter and the where expression.
func (t *Table) ClearFilters() {
	for col := range t.queries {
		_ = t.ClearColumn(col)
	}
	_ = t.SetWhere("")
}

func canonicalOption(c Column, value string) (string, error) {
	for _, o := range c.Options {
		if strings.EqualFold(o, strings.TrimSpace(value)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("column %q accepts %q, got %q", c.Title, c.Options, value)
}

func (t *Table) recompute(col int) {
	c := t.cols[col]
	q := t.queries[col]
	for i := range t.rows {
		if q != "" && !filter.Match(c.Match, t.cells[i][col], q) {
			t.hidden[i][col] = struct{}{}
		} else {
			delete(t.hidden[i], col)
		}
	}
}

// SetWhere installs a boolean expression over the row fields. It takes part
// in row visibility as WhereColumn. On a compile error nothing changes.
func (t *Table) SetWhere(src string) error {
	ev, err := filter.NewEvaluator(src)
	if err != nil {
		return err
	}
	t.where = ev
	t.recomputeWhere()
	return nil
}

func (t *Table) Where() string { return t.where.String() }

func (t *Table) recomputeWhere() {
	for i, r := range t.rows {
		if t.where != nil && !t.where.Pass(rowParams(r)) {
			t.hidden[i][WhereColumn] = struct{}{}
		} else {
			delete(t.hidden[i], WhereColumn)
		}
	}
}

// HiddenColumns returns the columns whose predicate row currently fails.
func (t *Table) HiddenColumns(row int) []int { return t.hidden[row].Sorted() }

// RowHidden reports whether any predicate fails for row.
func (t *Table) RowHidden(row int) bool { return len(t.hidden[row]) > 0 }

// FilteredCount is the number of rows hidden by at least one predicate.
func (t *Table) FilteredCount() int {
	n := 0
	for i := range t.hidden {
		if len(t.hidden[i]) > 0 {
			n++
		}
	}
	return n
}

func (t *Table) VisibleCount() int { return len(t.rows) - t.FilteredCount() }

// ResultsLabel summarizes the filter outcome; it is blank while no row is
// filtered out.
func (t *Table) ResultsLabel() string {
	if t.FilteredCount() == 0 {
		return ""
	}
	return fmt.Sprintf("Search results: %d results", t.VisibleCount())
}

// Pinned reports whether a category is selected in the categorical filter.
func (t *Table) Pinned() bool { return t.pinned }

// ColumnHidden reports whether col is hidden table-wide by its Mode.
func (t *Table) ColumnHidden(col int) bool {
	switch t.cols[col].Mode {
	case ModeUnpinned:
		return t.pinned
	case ModePinned:
		return !t.pinned
	}
	return false
}

// ClickColumn applies a header click. It is a no-op for a column that is not
// sortable and reports whether the sort state changed.
func (t *Table) ClickColumn(col int) bool {
	c, err := t.column(col)
	if err != nil || !c.Sortable {
		return false
	}
	t.sort = t.sort.Click(col)
	t.resort()
	logx.Debugf("table: sort=%s", t.sort)
	return true
}

// ApplySort replays s as header clicks on an empty state.
func (t *Table) ApplySort(s SortState) error {
	for _, k := range s {
		c, err := t.column(k.Column)
		if err != nil {
			return err
		}
		if !c.Sortable {
			return fmt.Errorf("column %q is not sortable", c.Title)
		}
	}
	t.sort = nil
	for _, k := range s {
		t.sort = t.sort.Click(k.Column)
		if k.Direction == Descending {
			t.sort = t.sort.Click(k.Column)
		}
	}
	t.resort()
	return nil
}

// Sort returns a copy of the sort keys.
func (t *Table) Sort() SortState { return append(SortState(nil), t.sort...) }

// SortPosition returns the 1-based priority and direction of col when it is
// part of the sort.
func (t *Table) SortPosition(col int) (int, Direction, bool) {
	i := t.sort.Index(col)
	if i < 0 {
		return 0, Ascending, false
	}
	return i + 1, t.sort[i].Direction, true
}

// resort orders the rows from their original order every time, so equal
// rows keep their original relative order no matter how often it runs.
func (t *Table) resort() {
	keys := t.sort
	if len(keys) == 0 {
		keys = SortState{{Column: ColArtist, Direction: Ascending}}
	}
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.compare(order[a], order[b], keys) < 0
	})
	t.order = order
}

func (t *Table) compare(a, b int, keys SortState) int {
	for _, k := range keys {
		c := CompareCells(t.cells[a][k.Column], t.cells[b][k.Column])
		if k.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Order returns row indices in display order, hidden rows included.
func (t *Table) Order() []int { return append([]int(nil), t.order...) }

// VisibleRows returns the rows that pass every predicate, in display order.
func (t *Table) VisibleRows() []int {
	out := make([]int, 0, len(t.order))
	for _, i := range t.order {
		if !t.RowHidden(i) {
			out = append(out, i)
		}
	}
	return out
}
