package parse

import "sort"

// Row is one line of the aggregated table.
type Row struct {
	Code     string
	Quantity int
}

// Table is the deduplicated, code-sorted view of one document's items.
// Column headers live in the constants package; an empty document yields a
// table with zero rows.
type Table struct {
	Rows []Row
}

// Aggregate groups the parser's occurrences by code, sums quantities within
// each group and sorts rows ascending by code. All codes share the "V" prefix
// and digit width, so the lexicographic order is also the numeric one.
func Aggregate(items []ItemRecord) Table {
	totals := make(map[string]int, len(items))
	for _, it := range items {
		totals[it.Code] += it.Quantity
	}

	rows := make([]Row, 0, len(totals))
	for code, qty := range totals {
		rows = append(rows, Row{Code: code, Quantity: qty})
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Code < rows[b].Code })
	return Table{Rows: rows}
}
