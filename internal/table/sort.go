package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Arrow is the header glyph for the direction.
func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

type SortKey struct {
	Column    int
	Direction Direction
}

// SortState is the list of sort keys, highest priority first. A column
// appears at most once.
type SortState []SortKey

// Index returns the priority of col, or -1.
func (s SortState) Index(col int) int {
	for i, k := range s {
		if k.Column == col {
			return i
		}
	}
	return -1
}

// Click returns the state after a header click on col: an unlisted column is
// appended ascending, an ascending key turns descending, and a descending key
// is removed. The receiver is not modified.
func (s SortState) Click(col int) SortState {
	out := make(SortState, 0, len(s)+1)
	i := s.Index(col)
	if i < 0 {
		out = append(out, s...)
		return append(out, SortKey{Column: col, Direction: Ascending})
	}
	if s[i].Direction == Ascending {
		out = append(out, s...)
		out[i].Direction = Descending
		return out
	}
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func (s SortState) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = fmt.Sprintf("%d:%s", k.Column, k.Direction)
	}
	return strings.Join(parts, ",")
}

var ErrBadSortSpec = errors.New("bad sort spec")

// ParseSortSpec reads "col[:asc|desc],..." as used by the -sort flag.
func ParseSortSpec(spec string) (SortState, error) {
	var out SortState
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colStr, dirStr, _ := strings.Cut(part, ":")
		col, err := strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadSortSpec, part, err)
		}
		dir := Ascending
		switch strings.ToLower(strings.TrimSpace(dirStr)) {
		case "", "asc":
		case "desc":
			dir = Descending
		default:
			return nil, fmt.Errorf("%w: %q: unknown direction", ErrBadSortSpec, part)
		}
		if out.Index(col) >= 0 {
			return nil, fmt.Errorf("%w: column %d listed twice", ErrBadSortSpec, col)
		}
		out = append(out, SortKey{Column: col, Direction: dir})
	}
	return out, nil
}

// CompareCells orders two displayed values: numerically when both parse as
// numbers once cleaned, case-insensitively when neither does. A number sorts
// before text so the order stays transitive over mixed values.
func CompareCells(a, b string) int {
	fa, okA := cleanNumber(a)
	fb, okB := cleanNumber(b)
	switch {
	case okA && okB:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func cleanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
