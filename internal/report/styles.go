package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const moneyFormat = `"$"#,##0.00`

var (
	thinBorder = []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	doubleBorder = []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 6},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 6},
	}
)

// styles holds the style IDs shared by both sheets of a workbook
type styles struct {
	title       int
	label       int
	value       int
	section     int
	header      int
	text        int
	date        int
	money       int
	distance    int
	totalsLabel int
	totalsMoney int
	totalsMiles int
	wrapped     int
}

func newStyles(f *excelize.File) (styles, error) {
	moneyFmt := moneyFormat
	milesFmt := "0.0"

	var s styles
	defs := []struct {
		id    *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.label, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 10},
		}},
		{&s.value, &excelize.Style{
			Font:   &excelize.Font{Size: 10},
			Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		}},
		{&s.section, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 9},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
			Border:    thinBorder,
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		}},
		{&s.text, &excelize.Style{
			Font:   &excelize.Font{Size: 9},
			Border: thinBorder,
		}},
		{&s.date, &excelize.Style{
			Font:      &excelize.Font{Size: 9},
			Border:    thinBorder,
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.money, &excelize.Style{
			Font:         &excelize.Font{Size: 9},
			Border:       thinBorder,
			CustomNumFmt: &moneyFmt,
		}},
		{&s.distance, &excelize.Style{
			Font:         &excelize.Font{Size: 9},
			Border:       thinBorder,
			CustomNumFmt: &milesFmt,
		}},
		{&s.totalsLabel, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 9},
			Border:    doubleBorder,
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&s.totalsMoney, &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 9},
			Border:       doubleBorder,
			CustomNumFmt: &moneyFmt,
		}},
		{&s.totalsMiles, &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 9},
			Border:       doubleBorder,
			CustomNumFmt: &milesFmt,
		}},
		{&s.wrapped, &excelize.Style{
			Font:      &excelize.Font{Size: 9},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return styles{}, fmt.Errorf("creating style: %w", err)
		}
		*d.id = id
	}
	return s, nil
}

// sheetWriter writes cells by 1-based coordinates and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (w *sheetWriter) fail(err error, format string, args ...any) {
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("%s: %s: %w", w.sheet, fmt.Sprintf(format, args...), err)
	}
}

func (w *sheetWriter) value(col, row int, v any, style int) {
	if w.err != nil {
		return
	}
	cell := cellName(col, row)
	w.fail(w.f.SetCellValue(w.sheet, cell, v), "setting %s", cell)
	w.styleRange(col, row, col, row, style)
}

func (w *sheetWriter) float(col, row int, v float64, style int) {
	if w.err != nil {
		return
	}
	cell := cellName(col, row)
	w.fail(w.f.SetCellFloat(w.sheet, cell, v, -1, 64), "setting %s", cell)
	w.styleRange(col, row, col, row, style)
}

func (w *sheetWriter) formula(col, row int, formula string, style int) {
	if w.err != nil {
		return
	}
	cell := cellName(col, row)
	w.fail(w.f.SetCellFormula(w.sheet, cell, formula), "setting formula %s", cell)
	w.styleRange(col, row, col, row, style)
}

func (w *sheetWriter) merge(col1, row1, col2, row2 int) {
	if w.err != nil {
		return
	}
	w.fail(w.f.MergeCell(w.sheet, cellName(col1, row1), cellName(col2, row2)), "merging %s", cellName(col1, row1))
}

func (w *sheetWriter) styleRange(col1, row1, col2, row2, style int) {
	if w.err != nil || style == 0 {
		return
	}
	w.fail(w.f.SetCellStyle(w.sheet, cellName(col1, row1), cellName(col2, row2), style), "styling %s", cellName(col1, row1))
}

func (w *sheetWriter) colWidths(widths map[string]float64) {
	for col, width := range widths {
		if w.err != nil {
			return
		}
		w.fail(w.f.SetColWidth(w.sheet, col, col, width), "setting width of %s", col)
	}
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
