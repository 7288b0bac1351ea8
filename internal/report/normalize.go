package report

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Date is a calendar date reduced to a comparable ordinal
type Date struct {
	Year  int
	Month int
	Day   int
	// Key is year*10000 + month*100 + day
	Key int
}

var (
	// The two separators must agree: 1/5/24 and 1-5-24, never 1/5-24
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	dashDatePattern  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{2}|\d{4})$`)
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// ParseAmount strips everything except digits, '.' and a leading '-' and
// parses the rest. Empty or unparsable input yields 0.
func ParseAmount(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	var b strings.Builder
	seenDigit := false
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		case r == '-' && !seenDigit && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		slog.Warn("Unparsable amount", "amount", text)
		return 0
	}
	return v
}

// ParseDate accepts M/D/YY, M/D/YYYY (separator '/' or '-') and ISO
// YYYY-MM-DD prefixes. Two digit years always land in the 2000s.
func ParseDate(text string) (Date, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, false
	}

	var year, month, day int
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	} else if m := matchMonthFirst(text); m != nil {
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	} else {
		slog.Warn("Unparsable date", "date", text)
		return Date{}, false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2100 {
		slog.Warn("Date out of range", "date", text)
		return Date{}, false
	}

	return Date{
		Year:  year,
		Month: month,
		Day:   day,
		Key:   year*10000 + month*100 + day,
	}, true
}

// String renders d as MM/DD/YYYY
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Month, d.Day, d.Year)
}

// FormatDateForDisplay reformats text as MM/DD/YYYY, returning it unchanged
// when it does not parse.
func FormatDateForDisplay(text string) string {
	d, ok := ParseDate(text)
	if !ok {
		return text
	}
	return d.String()
}

func matchMonthFirst(text string) []string {
	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		return m
	}
	return dashDatePattern.FindStringSubmatch(text)
}
