package ledger

import (
	"fmt"
	"strings"
	"time"

	"finsight/internal/core"
)

// Column header aliases, lowercase. The original exports use Spanish headers.
var columnAliases = map[string]string{
	"date":        "date",
	"fecha":       "date",
	"description": "description",
	"descripcion": "description",
	"amount":      "amount",
	"monto":       "amount",
	"category":    "category",
	"categoria":   "category",
	"kind":        "kind",
	"type":        "kind",
	"tipo":        "kind",
}

// Kind labels accepted on input, mapped onto the closed enumeration.
var kindAliases = map[string]core.Kind{
	"income":  core.Income,
	"ingreso": core.Income,
	"expense": core.Expense,
	"gasto":   core.Expense,
}

// Date layouts tried in order. Month-first matches the original exports.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	"1/2/2006",
	"2006/01/02",
}

// MapColumns resolves header names to field positions via the alias table.
// Date, amount and kind are required; description and category may be absent.
func MapColumns(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(stripBOM(h)))
		if field, ok := columnAliases[name]; ok {
			cols[field] = i
		}
	}
	for _, required := range []string{"date", "amount", "kind"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q in header %v", required, header)
		}
	}
	return cols, nil
}

// ParseRow turns one raw record into a transaction. The second return value
// is false for rows that must be dropped (bad date, bad amount, unknown kind).
func ParseRow(record []string, cols map[string]int) (core.Transaction, bool) {
	date, ok := ParseDate(field(record, cols, "date"))
	if !ok {
		return core.Transaction{}, false
	}
	amount, err := core.ParseAmount(field(record, cols, "amount"))
	if err != nil {
		return core.Transaction{}, false
	}
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(field(record, cols, "kind")))]
	if !ok {
		return core.Transaction{}, false
	}
	return core.Transaction{
		Date:        date,
		Description: strings.TrimSpace(field(record, cols, "description")),
		Amount:      amount,
		Category:    strings.TrimSpace(field(record, cols, "category")),
		Kind:        kind,
	}, true
}

// ParseDate tries the known layouts and normalizes to a midnight-UTC
// calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), true
		}
	}
	return time.Time{}, false
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
