package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// recentSampleSize bounds the recent-transactions sample in a summary.
const recentSampleSize = 5

type (
	// TransactionRecord is the presentation form of a transaction: calendar
	// date string, rounded amount.
	TransactionRecord struct {
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Kind        Kind    `json:"kind"`
	}

	// CategoryAmount is one expense category with its summed amount.
	CategoryAmount struct {
		Category string
		Amount   float64
	}

	// CategoryTotals is an ordered category->amount mapping. It serializes
	// as a JSON object whose keys keep the slice order, so clients see the
	// ranking without re-sorting.
	CategoryTotals []CategoryAmount

	// FinancialSummary is a value object fully derived from a ledger.
	// Computing it twice over the same ledger yields identical output.
	FinancialSummary struct {
		TotalIncome              float64             `json:"total_income"`
		TotalExpense             float64             `json:"total_expense"`
		NetFlowTotal             float64             `json:"net_flow_total"`
		AvgSavingsRatePct        float64             `json:"avg_savings_rate_pct"`
		TopExpenseByCategory     CategoryTotals      `json:"top_expense_by_category"`
		TransactionCount         int                 `json:"transaction_count"`
		FirstTransactionDate     string              `json:"first_transaction_date"`
		LastTransactionDate      string              `json:"last_transaction_date"`
		RecentTransactionsSample []TransactionRecord `json:"recent_transactions_sample"`
	}
)

// Record converts a transaction into its presentation form.
func (t Transaction) Record() TransactionRecord {
	return TransactionRecord{
		Date:        t.Date.Format(time.DateOnly),
		Description: t.Description,
		Amount:      Round2(t.Amount),
		Kind:        t.Kind,
	}
}

// Summarize computes the aggregate summary of a ledger.
//
// Income and expense totals only count transactions whose kind belongs to the
// closed enumeration; every transaction counts toward the transaction count,
// the date range and the recent sample. Category ranking is descending by
// summed amount, ties kept in first-seen order. The recent sample holds the
// recentSampleSize most recent transactions, date-descending, equal dates in
// ledger order.
//
// An empty ledger returns ErrNoData; callers must check before reading fields.
func Summarize(l Ledger) (FinancialSummary, error) {
	if len(l) == 0 {
		return FinancialSummary{}, ErrNoData
	}

	var totalIncome, totalExpense float64
	byCategory := map[string]float64{}
	var categoryOrder []string
	first, last := l[0].Date, l[0].Date

	for _, t := range l {
		switch t.Kind {
		case Income:
			totalIncome += t.Amount
		case Expense:
			totalExpense += t.Amount
			if _, seen := byCategory[t.Category]; !seen {
				categoryOrder = append(categoryOrder, t.Category)
			}
			byCategory[t.Category] += t.Amount
		}
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
	}

	netFlow := totalIncome - totalExpense
	var savingsRate float64
	if totalIncome > 0 {
		savingsRate = netFlow / totalIncome * 100
	}

	top := make(CategoryTotals, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		top = append(top, CategoryAmount{Category: name, Amount: Round2(byCategory[name])})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Amount > top[j].Amount })

	return FinancialSummary{
		TotalIncome:              Round2(totalIncome),
		TotalExpense:             Round2(totalExpense),
		NetFlowTotal:             Round2(netFlow),
		AvgSavingsRatePct:        Round2(savingsRate),
		TopExpenseByCategory:     top,
		TransactionCount:         len(l),
		FirstTransactionDate:     first.Format(time.DateOnly),
		LastTransactionDate:      last.Format(time.DateOnly),
		RecentTransactionsSample: recentSample(l),
	}, nil
}

// recentSample picks the most recent transactions without touching the input
// ledger. The sort is stable so equally-dated transactions keep ledger order.
func recentSample(l Ledger) []TransactionRecord {
	sorted := l.Clone()
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	n := recentSampleSize
	if len(sorted) < n {
		n = len(sorted)
	}
	sample := make([]TransactionRecord, 0, n)
	for _, t := range sorted[:n] {
		sample = append(sample, t.Record())
	}
	return sample
}

// MarshalJSON writes the totals as an order-preserving JSON object.
func (ct CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range ct {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back preserving its key order.
func (ct *CategoryTotals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("category totals: expected object, got %v", tok)
	}
	out := CategoryTotals{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category totals: non-string key %v", keyTok)
		}
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("category totals: amount for %q: %w", key, err)
		}
		out = append(out, CategoryAmount{Category: key, Amount: amount})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ct = out
	return nil
}
