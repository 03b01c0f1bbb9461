package core

import (
	"fmt"
	"strings"
)

// RenderReport renders aggregated category rows as a text breakdown: the
// overall total followed by one line per category with its share of the
// total rounded to one fractional digit. When rows is empty the fixed
// emptyText is returned instead, so a report never shows a zero total.
//
// Rows are rendered in the order given; the storage layer is responsible
// for sorting them by amount.
func RenderReport(title, emptyText string, rows []CategoryAmount) string {
	if len(rows) == 0 {
		return emptyText
	}

	var overall int64
	for _, row := range rows {
		overall += row.Amount.Cents
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Всего: %s руб.\n\n", Money{Cents: overall})

	for _, row := range rows {
		percent := float64(row.Amount.Cents) / float64(overall) * 100
		fmt.Fprintf(&b, "%s: %s руб. (%.1f%%)\n", row.Category, row.Amount, percent)
	}

	return b.String()
}
