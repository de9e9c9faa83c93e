package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"statboard/internal/table"
)

var ErrNoRows = errors.New("no visible rows")

// Write exports the visible rows of t, in display order, as csv, json
// (one row object per line) or xlsx.
func Write(format, path string, t *table.Table) error {
	switch format {
	case "csv":
		return ToCSV(path, t)
	case "json":
		return ToNDJSON(path, t)
	case "xlsx":
		return ToXLSX(path, t)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// grid returns the visible columns, their titles and the cells of the
// visible rows in display order.
func grid(t *table.Table) ([]table.Column, []string, []table.BodyRow, error) {
	v := t.View()
	all := t.Columns()
	var cols []table.Column
	var header []string
	for _, c := range v.VisibleColumns() {
		cols = append(cols, all[c])
		header = append(header, v.Headers[c].Title)
	}
	var rows []table.BodyRow
	for _, br := range v.Body {
		if !br.Hidden {
			rows = append(rows, br)
		}
	}
	if len(rows) == 0 {
		return nil, nil, nil, ErrNoRows
	}
	return cols, header, rows, nil
}

func ToCSV(path string, t *table.Table) error {
	cols, header, body, err := grid(t)
	if err != nil {
		return err
	}
	rows := make([][]string, len(body))
	for i, br := range body {
		rows[i] = make([]string, len(cols))
		for j, c := range cols {
			rows[i][j] = br.Cells[c.Index]
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func ToNDJSON(path string, t *table.Table) error {
	idx := t.VisibleRows()
	if len(idx) == 0 {
		return ErrNoRows
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, i := range idx {
		b, err := json.Marshal(t.Row(i))
		if err != nil {
			return err
		}
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

const sheet = "Statistics"

// ToXLSX writes one sheet; numeric columns are stored as numbers, with
// percentages as fractions under a percent number format. Rows are banded
// the same way the table stripes them.
func ToXLSX(path string, t *table.Table) error {
	cols, header, rows, err := grid(t)
	if err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	band := &excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EEF2F7"}}
	styles := map[[2]bool]int{}
	for _, pct := range []bool{false, true} {
		for _, stripe := range []bool{false, true} {
			st := &excelize.Style{}
			if pct {
				st.NumFmt = 10
			}
			if stripe {
				st.Fill = *band
			}
			id, err := f.NewStyle(st)
			if err != nil {
				return err
			}
			styles[[2]bool{pct, stripe}] = id
		}
	}
	for c, h := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return err
		}
	}
	for r, br := range rows {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			pct, err := setCell(f, cell, br.Cells[col.Index], col)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles[[2]bool{pct, br.Stripe}]); err != nil {
				return err
			}
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// setCell writes v typed by its column and reports whether it was stored as
// a percentage. Text columns are always written as text.
func setCell(f *excelize.File, cell, v string, col table.Column) (bool, error) {
	if !col.Numeric {
		return false, f.SetCellStr(sheet, cell, v)
	}
	if strings.HasSuffix(v, "%") {
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil {
			return true, f.SetCellFloat(sheet, cell, n/100, -1, 64)
		}
	}
	if n, err := strconv.Atoi(v); err == nil {
		return false, f.SetCellValue(sheet, cell, n)
	}
	return false, f.SetCellStr(sheet, cell, v)
}
