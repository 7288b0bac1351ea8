package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// Generator builds expense report workbooks
type Generator struct {
	cfg Config
}

// NewGenerator creates a new Generator, filling unset config fields from
// DefaultConfig.
func NewGenerator(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.MileageRate <= 0 {
		cfg.MileageRate = def.MileageRate
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Generator{cfg: cfg}
}

// Generate validates req and renders it into a workbook. It fails with a
// timeout error if rendering exceeds the configured budget.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.EmployeeName) == "" {
		return nil, validationError("employee name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := g.build(req)
		done <- outcome{result, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		msg := fmt.Sprintf("report generation exceeded %s", g.cfg.Timeout)
		if errors.Is(ctx.Err(), context.Canceled) {
			msg = "report generation canceled"
		}
		return nil, &Error{Kind: KindTimeout, Message: msg, Err: ctx.Err()}
	}
}

func (g *Generator) build(req Request) (*Result, error) {
	p := planReport(req, g.cfg.MileageRate)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Closing workbook", "error", err)
		}
	}()

	if err := writeWorkbook(f, req, p, g.cfg.MileageRate); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, serializationError("serializing workbook", err)
	}

	return &Result{
		Data:     buf.Bytes(),
		Filename: Filename(req.EmployeeName, g.cfg.Now().In(g.cfg.Location)),
		Totals:   p.totals,
		Warnings: p.warnings,
		Placed:   p.placed(),
	}, nil
}

// writeWorkbook renders p into the default sheet of f, adding the mileage
// sheet when needed. Every failure is a serialization error.
func writeWorkbook(f *excelize.File, req Request, p plan, rate float64) error {
	if err := f.SetSheetName("Sheet1", ExpenseSheet); err != nil {
		return serializationError("naming expense sheet", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return serializationError("creating styles", err)
	}

	var mileageTotal string
	if len(p.mileage) > 0 {
		if _, err := f.NewSheet(MileageSheet); err != nil {
			return serializationError("adding mileage sheet", err)
		}
		mileageTotal, err = writeMileageSheet(f, MileageSheet, st, req.EmployeeName, p.mileage, rate)
		if err != nil {
			return serializationError("writing mileage sheet", err)
		}
	}

	if err := writeExpenseSheet(f, ExpenseSheet, st, req, p, mileageTotal); err != nil {
		return serializationError("writing expense sheet", err)
	}
	return nil
}

// Filename derives the suggested download name from the employee name and
// the calendar date of now.
func Filename(employee string, now time.Time) string {
	name := nonAlphanumeric.ReplaceAllString(strings.TrimSpace(employee), "_")
	return fmt.Sprintf("%s_Expense_Report_%s.xlsx", name, now.Format("2006-01-02"))
}
