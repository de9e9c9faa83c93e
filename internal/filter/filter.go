package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"
)

// MatchKind selects how a column's query is compared with its displayed text.
type MatchKind int

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains MatchKind = iota
	// MatchPrefix truncates the displayed text to the query's length and
	// compares case-insensitively, so "1" matches "12" and "1.5%".
	MatchPrefix
	// MatchCategorical checks the cell contains the selected option verbatim.
	MatchCategorical
)

func (k MatchKind) String() string {
	switch k {
	case MatchContains:
		return "contains"
	case MatchPrefix:
		return "prefix"
	case MatchCategorical:
		return "categorical"
	}
	return fmt.Sprintf("MatchKind(%d)", int(k))
}

// Match reports whether cell passes query. An empty query always passes.
func Match(kind MatchKind, cell, query string) bool {
	if query == "" {
		return true
	}
	switch kind {
	case MatchPrefix:
		q := []rune(strings.ToLower(query))
		c := []rune(strings.ToLower(cell))
		if len(c) > len(q) {
			c = c[:len(q)]
		}
		return string(c) == string(q)
	case MatchCategorical:
		return strings.Contains(cell, query)
	default:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(query))
	}
}

// Evaluator runs a govaluate boolean expression against row parameters,
// e.g. `commissions > 10 && sfw`.
type Evaluator struct {
	src  string
	expr *govaluate.EvaluableExpression
}

var ErrNotBoolean = errors.New("expression did not evaluate to a boolean")

func NewEvaluator(src string) (*Evaluator, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("where %q: %w", src, err)
	}
	return &Evaluator{src: src, expr: expr}, nil
}

func (e *Evaluator) String() string {
	if e == nil {
		return ""
	}
	return e.src
}

// Eval evaluates the expression. A nil Evaluator passes everything.
func (e *Evaluator) Eval(params map[string]any) (bool, error) {
	if e == nil {
		return true, nil
	}
	result, err := e.expr.Evaluate(params)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, ErrNotBoolean
	}
	return b, nil
}

// Pass is Eval with errors treated as a failed predicate.
func (e *Evaluator) Pass(params map[string]any) bool {
	ok, err := e.Eval(params)
	return err == nil && ok
}
