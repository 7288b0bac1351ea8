package report

import "slices"

// SortChronologically returns receipts ordered oldest first. Receipts with
// equal dates keep their input order and receipts whose date does not parse
// move to the end, also in input order. The input slice is not modified.
func SortChronologically(receipts []Receipt) []Receipt {
	type keyed struct {
		receipt Receipt
		key     int
		ok      bool
	}

	items := make([]keyed, len(receipts))
	for i, r := range receipts {
		d, ok := ParseDate(r.Date)
		items[i] = keyed{receipt: r, key: d.Key, ok: ok}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		}
		return a.key - b.key
	})

	sorted := make([]Receipt, len(items))
	for i, it := range items {
		sorted[i] = it.receipt
	}
	return sorted
}
