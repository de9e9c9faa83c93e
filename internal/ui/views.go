package ui

import (
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/montanaflynn/stats"

	"statboard/internal/model"
	"statboard/internal/table"
	"statboard/internal/util/logx"
)

func overlay(base, overlay string) string {
	// Draw overlay on top of base by replacing lines where overlay has content.
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(overlay, "\n")
	maxLen := len(bLines)
	if len(oLines) > maxLen {
		maxLen = len(oLines)
	}
	for len(bLines) < maxLen {
		bLines = append(bLines, "")
	}
	for len(oLines) < maxLen {
		oLines = append(oLines, "")
	}
	out := make([]string, maxLen)
	for i := 0; i < maxLen; i++ {
		// whitespace-only overlay lines are transparent
		if strings.TrimSpace(oLines[i]) != "" {
			out[i] = oLines[i]
		} else {
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// copyToClipboard writes text with OSC52, for terminals without a system
// clipboard reachable from the process (ssh, containers).
func copyToClipboard(s string) {
	s = stripANSI(s)
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	payload := fmt.Sprintf("\x1b]52;c;%s\x07", enc)
	// /dev/tty keeps the sequence out of the program's stdout buffer
	if f, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
		defer f.Close()
		_, _ = f.WriteString(payload)
		return
	}
	fmt.Fprint(os.Stdout, payload)
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// columnValue returns the typed number behind a numeric column.
func columnValue(r model.Row, col int) (float64, bool) {
	switch col {
	case table.ColShareGlobal:
		return r.ShareOfGlobal, true
	case table.ColShareCategory:
		return r.ShareOfCategory, true
	case table.ColCommissions:
		return float64(r.Commissions), true
	case table.ColPictures:
		return float64(r.Thumbnails), true
	case table.ColPictureShare:
		return r.PictureShare, true
	}
	return 0, false
}

// buildStats summarizes one column over the given (visible) rows.
func buildStats(t *table.Table, col table.Column, rows []table.BodyRow) string {
	if len(rows) == 0 {
		return "No data"
	}
	if col.Numeric {
		vals := make([]float64, 0, len(rows))
		for _, br := range rows {
			if v, ok := columnValue(t.Row(br.Row), col.Index); ok {
				vals = append(vals, v)
			}
		}
		return numericStats(col.Title, vals)
	}
	counts := map[string]int{}
	for _, br := range rows {
		counts[br.Cells[col.Index]]++
	}
	return categoricalStats(col.Title, counts)
}

func numericStats(field string, vals []float64) string {
	if len(vals) == 0 {
		return "No data"
	}
	data := stats.Float64Data(vals)
	min, _ := data.Min()
	max, _ := data.Max()
	mean, _ := data.Mean()
	median, _ := data.Median()
	p90, _ := data.Percentile(90)
	sd, _ := data.StandardDeviation()
	sum, _ := data.Sum()

	var b strings.Builder
	fmt.Fprintf(&b, "Stats for %s (numeric), n=%d\n\n", field, len(vals))
	lines := []struct {
		k string
		v float64
	}{
		{"min", min}, {"max", max}, {"mean", mean}, {"median", median},
		{"p90", p90}, {"stddev", sd}, {"sum", sum},
	}
	for _, l := range lines {
		width := 0
		if max > 0 && l.k != "sum" && l.k != "stddev" {
			width = int(math.Round(20 * l.v / max))
		}
		fmt.Fprintf(&b, "%-7s %12s %s\n", l.k, formatNumericLabel(l.v), colorBar(width, l.v, max))
	}
	return b.String()
}

func formatNumericLabel(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func categoricalStats(field string, counts map[string]int) string {
	if len(counts) == 0 {
		return "No data"
	}
	type kv struct {
		k string
		v int
	}
	arr := make([]kv, 0, len(counts))
	for k, v := range counts {
		arr = append(arr, kv{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].v != arr[j].v {
			return arr[i].v > arr[j].v
		}
		return arr[i].k < arr[j].k
	})
	maxc := arr[0].v
	var b strings.Builder
	fmt.Fprintf(&b, "Stats for %s (categorical), distinct=%d\n\n", field, len(arr))
	for _, it := range arr {
		width := int(math.Round(20 * float64(it.v) / float64(maxc)))
		fmt.Fprintf(&b, "%-24s | %s (%d)\n", truncateRunes(it.k, 24), colorBar(width, float64(it.v), float64(maxc)), it.v)
	}
	return b.String()
}

// colorBar returns a bar that turns redder as val approaches max.
func colorBar(width int, val, max float64) string {
	if width <= 0 {
		return ""
	}
	ratio := 0.0
	if max > 0 {
		ratio = val / max
	}
	color := "34"
	switch {
	case ratio > 0.75:
		color = "160"
	case ratio > 0.5:
		color = "172"
	case ratio > 0.25:
		color = "178"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", width))
}

func runeLen(s string) int { return len([]rune(s)) }

func padRight(s string, w int) string {
	n := runeLen(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func padLeft(s string, w int) string {
	n := runeLen(s)
	if n >= w {
		return s
	}
	return strings.Repeat(" ", w-n) + s
}

func truncateRunes(s string, w int) string {
	if w <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= w {
		return s
	}
	return string(rs[:w])
}

// logsBody lists the retained log lines, errors and warnings highlighted.
func (m *Model) logsBody() string {
	lines := logx.Lines()
	if len(lines) == 0 {
		return "(no log lines yet)"
	}
	for i, l := range lines {
		f := strings.Fields(l)
		if len(f) > 1 && (f[1] == "ERROR" || f[1] == "WARN") {
			lines[i] = m.styles.Error.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
