package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"statboard/internal/model"
)

// renderRowDetail shows one row's fields and the totals they are measured
// against.
func renderRowDetail(r model.Row, tot model.Totals, st Styles) string {
	var b strings.Builder
	renderFields(&b, r, st)
	b.WriteString("\n")
	b.WriteString(st.PopupTitle.Render("totals"))
	b.WriteString("\n")
	renderFields(&b, tot, st)
	return b.String()
}

func renderFields(b *strings.Builder, v any, st Styles) {
	raw, err := json.Marshal(v)
	if err != nil {
		b.WriteString(fmt.Sprint(v))
		return
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		b.WriteString(string(raw))
		return
	}
	keys := make([]string, 0, len(fields))
	width := 0
	for k := range fields {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(st.DetailKey.Render(padRight(k, width)))
		b.WriteString("  ")
		switch t := fields[k].(type) {
		case string:
			b.WriteString(st.DetailString.Render(t))
		case float64:
			b.WriteString(st.DetailNumber.Render(formatNumericLabel(t)))
		case bool:
			b.WriteString(st.DetailBool.Render(fmt.Sprint(t)))
		default:
			b.WriteString(fmt.Sprint(t))
		}
		b.WriteString("\n")
	}
}
