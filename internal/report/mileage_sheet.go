package report

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zombor/expense-report/internal/mileage"
)

// MileageSheet is the name of the optional second sheet
const MileageSheet = "Mileage"

// Mileage sheet grid
const (
	mileageTitleRow     = 1
	mileageEmployeeRow  = 3
	mileageHeaderRow    = 5
	mileageFirstDataRow = 6
	// MileagePaddingRows blank rows follow the entries for manual additions
	MileagePaddingRows = 10

	mileageDistanceColumn = 5
	mileageAmountColumn   = 6
)

var mileageColumnWidths = map[string]float64{
	"A": 12, "B": 32, "C": 32, "D": 30, "E": 10, "F": 12,
}

type mileageRow struct {
	entry mileage.Entry
	date  string
}

// planMileage recomputes every entry at rate. Supplied reimbursable values
// that disagree are replaced and reported.
func planMileage(entries []mileage.Entry, rate float64, warnings []string) ([]mileageRow, []string) {
	rows := make([]mileageRow, 0, len(entries))
	for i, e := range entries {
		recomputed := mileage.Recompute(e, rate)
		if e.ReimbursableAmount != 0 && math.Abs(e.ReimbursableAmount-recomputed.ReimbursableAmount) >= 0.005 {
			slog.Warn("Recomputed stale mileage amount",
				"index", i,
				"supplied", e.ReimbursableAmount,
				"recomputed", recomputed.ReimbursableAmount,
			)
			warnings = append(warnings, fmt.Sprintf(
				"mileage entry %d: supplied amount %.2f replaced with %.2f",
				i+1, e.ReimbursableAmount, recomputed.ReimbursableAmount))
		}
		rows = append(rows, mileageRow{
			entry: recomputed,
			date:  FormatDateForDisplay(strings.TrimSpace(e.Date)),
		})
	}
	return rows, warnings
}

// mileageTotalsRow is the row holding the mileage totals for n entries
func mileageTotalsRow(n int) int {
	return mileageFirstDataRow + n + MileagePaddingRows
}

// writeMileageSheet lays rows out in input order and returns a reference to
// the amount total cell, qualified with the sheet name.
func writeMileageSheet(f *excelize.File, sheet string, st styles, employee string, rows []mileageRow, rate float64) (string, error) {
	w := &sheetWriter{f: f, sheet: sheet}
	w.colWidths(mileageColumnWidths)

	w.value(1, mileageTitleRow, "MILEAGE REIMBURSEMENT LOG", st.title)
	w.merge(1, mileageTitleRow, mileageAmountColumn, mileageTitleRow)

	w.value(1, mileageEmployeeRow, "EMPLOYEE NAME:", st.label)
	w.value(2, mileageEmployeeRow, strings.TrimSpace(employee), st.value)
	w.merge(2, mileageEmployeeRow, 3, mileageEmployeeRow)
	w.styleRange(2, mileageEmployeeRow, 3, mileageEmployeeRow, st.value)

	for i, h := range []string{"DATE", "FROM", "TO", "PURPOSE", "MILES", "AMOUNT"} {
		w.value(i+1, mileageHeaderRow, h, st.header)
	}

	totalsRow := mileageTotalsRow(len(rows))
	lastRow := totalsRow - 1
	for r := mileageFirstDataRow; r <= lastRow; r++ {
		w.styleRange(1, r, 1, r, st.date)
		w.styleRange(2, r, 4, r, st.text)
		w.styleRange(mileageDistanceColumn, r, mileageDistanceColumn, r, st.distance)
		w.styleRange(mileageAmountColumn, r, mileageAmountColumn, r, st.money)
	}

	for i, m := range rows {
		r := mileageFirstDataRow + i
		w.value(1, r, m.date, st.date)
		w.value(2, r, strings.TrimSpace(m.entry.StartAddress), st.text)
		w.value(3, r, strings.TrimSpace(m.entry.EndAddress), st.text)
		purpose := strings.TrimSpace(m.entry.BusinessPurpose)
		if m.entry.RoundTrip {
			purpose = strings.TrimSpace(purpose + " (round trip)")
		}
		w.value(4, r, purpose, st.text)
		w.float(mileageDistanceColumn, r, m.entry.ReimbursableDistance, st.distance)
		w.float(mileageAmountColumn, r, m.entry.ReimbursableAmount, st.money)
	}

	w.value(4, totalsRow, "TOTALS", st.totalsLabel)
	for _, col := range []int{mileageDistanceColumn, mileageAmountColumn} {
		name := columnName(col)
		style := st.totalsMoney
		if col == mileageDistanceColumn {
			style = st.totalsMiles
		}
		w.formula(col, totalsRow, fmt.Sprintf("SUM(%s%d:%s%d)", name, mileageFirstDataRow, name, lastRow), style)
	}

	w.value(1, totalsRow+2, fmt.Sprintf("Reimbursed at $%.2f per mile, less personal commute.", rate), st.label)

	if w.err != nil {
		return "", w.err
	}
	return fmt.Sprintf("'%s'!%s", sheet, cellName(mileageAmountColumn, totalsRow)), nil
}
