package report

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExpenseSheet is the name of the primary sheet
const ExpenseSheet = "Expense Report"

// Fixed grid of the expense form. Rows and columns are 1-based.
const (
	TitleRow       = 2
	EmployeeRow    = 4
	SectionRow     = 7
	HeaderRow      = 9
	FirstDataRow   = 10
	LastDataRow    = 37
	TotalsRow      = 39
	CodingRow      = 41
	SummaryRow     = 41
	CertifyRow     = 55
	SignatureRow   = 58
	ApprovalRow    = 60
	MaxReceiptRows = LastDataRow - FirstDataRow + 1

	DateColumn          = 1
	LocationColumn      = 2
	PurposeColumn       = 3
	firstCategoryColumn = 4
	TotalsColumn        = 16

	summaryLabelColumn = 13
)

const defaultPurpose = "Business Expense"

// accountCodes is the static coding reference printed below the totals
var accountCodes = []struct {
	description string
	code        string
}{
	{"Hotel / Motel", "6110"},
	{"Meals", "6120"},
	{"Entertainment", "6130"},
	{"Transport / Air-Rail", "6140"},
	{"Gas / Mileage", "6150"},
	{"Computer Supplies", "6210"},
	{"Cell Phone", "6220"},
	{"Copies", "6230"},
	{"Postage", "6240"},
	{"Office Supplies", "6250"},
	{"Dues / Memberships", "6310"},
	{"Miscellaneous", "6900"},
}

const certificationText = "I certify that the expenses listed above were incurred by me in the conduct of " +
	"official business, that they are true and correct, and that no part of them has been or will be " +
	"reimbursed from any other source."

var expenseColumnWidths = map[string]float64{
	"A": 11, "B": 22, "C": 28,
	"D": 11, "E": 11, "F": 13, "G": 12, "H": 12, "I": 10,
	"J": 10, "K": 10, "L": 10, "M": 10, "N": 11, "O": 10,
	"P": 13,
}

// row is one placed receipt
type row struct {
	receipt  Receipt
	date     string
	purpose  string
	category Category
	column   int
	amount   float64
}

// plan is the data half of a report, computed before anything is written
type plan struct {
	rows     []row
	mileage  []mileageRow
	totals   Totals
	warnings []string
}

// planReport sorts, caps, classifies and totals the request
func planReport(req Request, rate float64) plan {
	p := plan{
		totals: Totals{ByCategory: make(map[Category]float64, len(Categories))},
	}
	// Sums are kept in decimal so totals match the sheet to the cent
	byCategory := make(map[Category]decimal.Decimal, len(Categories))
	for _, c := range Categories {
		byCategory[c] = decimal.Zero
	}
	receipts, mileageSum := decimal.Zero, decimal.Zero
	gasRows := 0

	sorted := SortChronologically(req.Receipts)
	if len(sorted) > MaxReceiptRows {
		msg := fmt.Sprintf("%d receipts exceed the %d rows of the expense form; %d were left off",
			len(sorted), MaxReceiptRows, len(sorted)-MaxReceiptRows)
		slog.Warn("Receipt capacity exceeded", "receipts", len(sorted), "capacity", MaxReceiptRows)
		p.warnings = append(p.warnings, msg)
		sorted = sorted[:MaxReceiptRows]
	}

	for _, r := range sorted {
		category, column := Classify(r)
		amount := ParseAmount(r.Total)

		purpose := strings.TrimSpace(r.Description)
		if purpose == "" {
			purpose = defaultPurpose
		}

		p.rows = append(p.rows, row{
			receipt:  r,
			date:     FormatDateForDisplay(strings.TrimSpace(r.Date)),
			purpose:  purpose,
			category: category,
			column:   column,
			amount:   amount,
		})
		if category == CategoryGas {
			gasRows++
		}
		d := decimal.NewFromFloat(amount)
		byCategory[category] = byCategory[category].Add(d)
		receipts = receipts.Add(d)
	}

	p.mileage, p.warnings = planMileage(req.MileageEntries, rate, p.warnings)
	for _, m := range p.mileage {
		mileageSum = mileageSum.Add(decimal.NewFromFloat(m.entry.ReimbursableAmount))
	}

	gasCell := byCategory[CategoryGas]
	if len(p.mileage) > 0 {
		gasCell = mileageSum
		if gasRows > 0 {
			gasReceipts := byCategory[CategoryGas].StringFixed(2)
			slog.Warn("GAS receipts overridden by mileage total", "receipts", gasRows, "amount", gasReceipts)
			p.warnings = append(p.warnings, fmt.Sprintf(
				"%d GAS receipts totaling %s are left out of the GAS total, which shows the mileage reimbursement; they still count toward the grand total",
				gasRows, gasReceipts))
		}
	}

	for c, sum := range byCategory {
		p.totals.ByCategory[c] = sum.InexactFloat64()
	}
	p.totals.Receipts = receipts.InexactFloat64()
	p.totals.Mileage = mileageSum.InexactFloat64()
	p.totals.GasCell = gasCell.InexactFloat64()
	p.totals.Grand = receipts.Add(mileageSum).InexactFloat64()

	return p
}

// placed returns the receipts that made it onto the sheet, in sheet order
func (p plan) placed() []Receipt {
	out := make([]Receipt, len(p.rows))
	for i, r := range p.rows {
		out[i] = r.receipt
	}
	return out
}

// writeExpenseSheet lays p out on sheet. mileageTotal, when non-empty, is a
// reference to the mileage sheet's amount total and replaces the GAS total.
func writeExpenseSheet(f *excelize.File, sheet string, st styles, req Request, p plan, mileageTotal string) error {
	w := &sheetWriter{f: f, sheet: sheet}

	w.colWidths(expenseColumnWidths)

	w.value(DateColumn, TitleRow, "EMPLOYEE EXPENSE REPORT", st.title)
	w.merge(DateColumn, TitleRow, TotalsColumn, TitleRow)
	w.styleRange(DateColumn, TitleRow, TotalsColumn, TitleRow, st.title)

	w.value(DateColumn, EmployeeRow, "EMPLOYEE NAME:", st.label)
	w.value(LocationColumn, EmployeeRow, strings.TrimSpace(req.EmployeeName), st.value)
	w.merge(LocationColumn, EmployeeRow, 5, EmployeeRow)
	w.styleRange(LocationColumn, EmployeeRow, 5, EmployeeRow, st.value)
	if weekEnding := strings.TrimSpace(req.WeekEnding); weekEnding != "" {
		w.value(12, EmployeeRow, "WEEK ENDING:", st.label)
		w.value(summaryLabelColumn, EmployeeRow, FormatDateForDisplay(weekEnding), st.value)
		w.merge(summaryLabelColumn, EmployeeRow, 14, EmployeeRow)
		w.styleRange(summaryLabelColumn, EmployeeRow, 14, EmployeeRow, st.value)
	}

	w.value(DateColumn, SectionRow, "LISTING AND DESCRIPTION OF REIMBURSABLE EXPENSES", st.section)
	w.merge(DateColumn, SectionRow, TotalsColumn, SectionRow)

	w.value(DateColumn, HeaderRow, "DATE", st.header)
	w.value(LocationColumn, HeaderRow, "LOCATION", st.header)
	w.value(PurposeColumn, HeaderRow, "PURPOSE", st.header)
	for _, c := range Categories {
		w.value(c.Column(), HeaderRow, string(c), st.header)
	}
	w.value(TotalsColumn, HeaderRow, "TOTALS", st.header)
	if w.err == nil {
		w.fail(f.SetRowHeight(sheet, HeaderRow, 30), "setting header height")
	}

	for i := 0; i < MaxReceiptRows; i++ {
		r := FirstDataRow + i
		w.styleRange(DateColumn, r, DateColumn, r, st.date)
		w.styleRange(LocationColumn, r, PurposeColumn, r, st.text)
		w.styleRange(firstCategoryColumn, r, TotalsColumn, r, st.money)

		if i >= len(p.rows) {
			w.float(TotalsColumn, r, 0, st.money)
			continue
		}

		pr := p.rows[i]
		w.value(DateColumn, r, pr.date, st.date)
		w.value(LocationColumn, r, strings.TrimSpace(pr.receipt.Merchant), st.text)
		w.value(PurposeColumn, r, pr.purpose, st.text)
		w.float(pr.column, r, pr.amount, st.money)
		w.float(TotalsColumn, r, pr.amount, st.money)
	}

	writeTotalsRow(w, st, mileageTotal)
	writeAccountCoding(w, st)
	writeSummary(w, st)
	writeCertification(w, st)

	return w.err
}

func dataRange(col int) string {
	name := columnName(col)
	return fmt.Sprintf("%s%d:%s%d", name, FirstDataRow, name, LastDataRow)
}

func writeTotalsRow(w *sheetWriter, st styles, mileageTotal string) {
	w.value(DateColumn, TotalsRow, "TOTALS", st.totalsLabel)
	w.merge(DateColumn, TotalsRow, PurposeColumn, TotalsRow)
	w.styleRange(DateColumn, TotalsRow, PurposeColumn, TotalsRow, st.totalsLabel)

	for _, c := range Categories {
		formula := "SUM(" + dataRange(c.Column()) + ")"
		if c == CategoryGas && mileageTotal != "" {
			formula = mileageTotal
		}
		w.formula(c.Column(), TotalsRow, formula, st.totalsMoney)
	}

	grand := "SUM(" + dataRange(TotalsColumn) + ")"
	if mileageTotal != "" {
		grand += "+" + cellName(CategoryGas.Column(), TotalsRow)
	}
	w.formula(TotalsColumn, TotalsRow, grand, st.totalsMoney)
}

func writeAccountCoding(w *sheetWriter, st styles) {
	w.value(DateColumn, CodingRow, "ACCOUNT CODING", st.header)
	w.merge(DateColumn, CodingRow, LocationColumn, CodingRow)
	w.styleRange(DateColumn, CodingRow, LocationColumn, CodingRow, st.header)
	w.value(PurposeColumn, CodingRow, "ACCOUNT", st.header)

	for i, ac := range accountCodes {
		r := CodingRow + 1 + i
		w.value(DateColumn, r, ac.description, st.text)
		w.merge(DateColumn, r, LocationColumn, r)
		w.styleRange(DateColumn, r, LocationColumn, r, st.text)
		w.value(PurposeColumn, r, ac.code, st.text)
	}
}

// Summary cells, all in the totals column
const (
	TotalExpensesRow = SummaryRow + 1
	NetAdvancesRow   = SummaryRow + 2
	BalanceDueRow    = SummaryRow + 3
)

func writeSummary(w *sheetWriter, st styles) {
	w.value(summaryLabelColumn, SummaryRow, "SUMMARY", st.header)
	w.merge(summaryLabelColumn, SummaryRow, TotalsColumn, SummaryRow)
	w.styleRange(summaryLabelColumn, SummaryRow, TotalsColumn, SummaryRow, st.header)

	grand := cellName(TotalsColumn, TotalsRow)
	lines := []struct {
		row   int
		label string
	}{
		{TotalExpensesRow, "TOTAL EXPENSES"},
		{NetAdvancesRow, "NET ADVANCES"},
		{BalanceDueRow, "BALANCE DUE EMPLOYEE"},
	}
	for _, l := range lines {
		w.value(summaryLabelColumn, l.row, l.label, st.text)
		w.merge(summaryLabelColumn, l.row, TotalsColumn-1, l.row)
		w.styleRange(summaryLabelColumn, l.row, TotalsColumn-1, l.row, st.text)
	}

	w.formula(TotalsColumn, TotalExpensesRow, grand, st.money)
	// no advance tracking exists, so advances are always zero
	w.float(TotalsColumn, NetAdvancesRow, 0, st.money)
	w.formula(TotalsColumn, BalanceDueRow,
		cellName(TotalsColumn, TotalExpensesRow)+"-"+cellName(TotalsColumn, NetAdvancesRow), st.totalsMoney)
}

func writeCertification(w *sheetWriter, st styles) {
	w.value(DateColumn, CertifyRow, certificationText, st.wrapped)
	w.merge(DateColumn, CertifyRow, TotalsColumn, CertifyRow+1)
	w.styleRange(DateColumn, CertifyRow, TotalsColumn, CertifyRow+1, st.wrapped)

	w.value(DateColumn, SignatureRow, "EMPLOYEE SIGNATURE: ______________________________", st.label)
	w.value(7, SignatureRow, "DATE: ______________", st.label)
	w.value(DateColumn, ApprovalRow, "APPROVED BY: ______________________________", st.label)
	w.value(7, ApprovalRow, "DATE: ______________", st.label)

	w.value(summaryLabelColumn, SignatureRow, "AMOUNT CERTIFIED", st.label)
	w.formula(TotalsColumn, SignatureRow, cellName(TotalsColumn, TotalsRow), st.totalsMoney)
}
