package core

import (
	"encoding/json"
	"math"
	"testing"
)

func sampleLedger() Ledger {
	return Ledger{
		{Date: NewDate(2024, 1, 5), Description: "Paycheck", Amount: 1000, Kind: Income},
		{Date: NewDate(2024, 1, 10), Description: "Groceries", Amount: 200, Category: "Food", Kind: Expense},
		{Date: NewDate(2024, 1, 15), Description: "Restaurant", Amount: 50, Category: "Food", Kind: Expense},
	}
}

func TestSummarizeEmptyLedger(t *testing.T) {
	if _, err := Summarize(nil); err != ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := Summarize(Ledger{}); err != ErrNoData {
		t.Fatalf("expected ErrNoData for empty slice, got %v", err)
	}
}

func TestSummarizeScenario(t *testing.T) {
	s, err := Summarize(sampleLedger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalIncome != 1000 {
		t.Errorf("total income = %v, want 1000", s.TotalIncome)
	}
	if s.TotalExpense != 250 {
		t.Errorf("total expense = %v, want 250", s.TotalExpense)
	}
	if s.NetFlowTotal != 750 {
		t.Errorf("net flow = %v, want 750", s.NetFlowTotal)
	}
	if s.AvgSavingsRatePct != 75 {
		t.Errorf("savings rate = %v, want 75", s.AvgSavingsRatePct)
	}
	if len(s.TopExpenseByCategory) != 1 || s.TopExpenseByCategory[0].Category != "Food" || s.TopExpenseByCategory[0].Amount != 250 {
		t.Errorf("top expenses = %+v, want Food=250", s.TopExpenseByCategory)
	}
	if s.TransactionCount != 3 {
		t.Errorf("count = %d, want 3", s.TransactionCount)
	}
	if s.FirstTransactionDate != "2024-01-05" || s.LastTransactionDate != "2024-01-15" {
		t.Errorf("date range = %s..%s", s.FirstTransactionDate, s.LastTransactionDate)
	}
	if len(s.RecentTransactionsSample) != 3 || s.RecentTransactionsSample[0].Description != "Restaurant" {
		t.Errorf("recent sample = %+v", s.RecentTransactionsSample)
	}
}

func TestSummarizeIsPure(t *testing.T) {
	l := sampleLedger()
	a, err := Summarize(l)
	if err != nil {
		t.Fatalf("first summarize: %v", err)
	}
	b, err := Summarize(l)
	if err != nil {
		t.Fatalf("second summarize: %v", err)
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Fatalf("summaries differ:\n%s\n%s", ja, jb)
	}
}

func TestSummarizeZeroIncomeGuard(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2024, 2, 1), Description: "Rent", Amount: 900, Category: "Housing", Kind: Expense},
	}
	s, err := Summarize(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.AvgSavingsRatePct != 0 {
		t.Fatalf("savings rate with no income = %v, want 0", s.AvgSavingsRatePct)
	}
	if s.NetFlowTotal != -900 {
		t.Fatalf("net flow = %v, want -900", s.NetFlowTotal)
	}
}

func TestSummarizeCategoryOrdering(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2024, 3, 1), Description: "Bus", Amount: 30, Category: "Transport", Kind: Expense},
		{Date: NewDate(2024, 3, 2), Description: "Groceries", Amount: 120, Category: "Food", Kind: Expense},
		{Date: NewDate(2024, 3, 3), Description: "Cinema", Amount: 30, Category: "Leisure", Kind: Expense},
		{Date: NewDate(2024, 3, 4), Description: "Salary", Amount: 2000, Kind: Income},
	}
	s, err := Summarize(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(s.TopExpenseByCategory); i++ {
		if s.TopExpenseByCategory[i].Amount > s.TopExpenseByCategory[i-1].Amount {
			t.Fatalf("totals not non-increasing: %+v", s.TopExpenseByCategory)
		}
	}
	// Transport and Leisure tie at 30; Transport was seen first.
	if s.TopExpenseByCategory[1].Category != "Transport" || s.TopExpenseByCategory[2].Category != "Leisure" {
		t.Fatalf("tie order broken: %+v", s.TopExpenseByCategory)
	}
	// Conservation: category totals add up to the expense total.
	var sum float64
	for _, c := range s.TopExpenseByCategory {
		sum += c.Amount
	}
	if math.Abs(sum-s.TotalExpense) > 0.01 {
		t.Fatalf("category sum %v != total expense %v", sum, s.TotalExpense)
	}
}

func TestSummarizeRecentSample(t *testing.T) {
	var l Ledger
	for day := 1; day <= 8; day++ {
		l = append(l, Transaction{
			Date: NewDate(2024, 4, day), Description: "Coffee", Amount: 3, Category: "Food", Kind: Expense,
		})
	}
	// Two entries on the 8th; ledger order decides the tie.
	l = append(l, Transaction{Date: NewDate(2024, 4, 8), Description: "Dinner", Amount: 40, Category: "Food", Kind: Expense})
	s, err := Summarize(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.RecentTransactionsSample) != 5 {
		t.Fatalf("sample size = %d, want 5", len(s.RecentTransactionsSample))
	}
	if s.RecentTransactionsSample[0].Description != "Coffee" || s.RecentTransactionsSample[1].Description != "Dinner" {
		t.Fatalf("tie-break not stable on ledger order: %+v", s.RecentTransactionsSample[:2])
	}
	for i := 1; i < len(s.RecentTransactionsSample); i++ {
		if s.RecentTransactionsSample[i].Date > s.RecentTransactionsSample[i-1].Date {
			t.Fatalf("sample not date-descending: %+v", s.RecentTransactionsSample)
		}
	}
}

func TestSummarizeUnknownKindExcludedFromTotals(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2024, 5, 1), Description: "Salary", Amount: 1000, Kind: Income},
		{Date: NewDate(2024, 5, 2), Description: "Transfer", Amount: 500, Kind: Kind("transfer")},
	}
	s, err := Summarize(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalIncome != 1000 || s.TotalExpense != 0 {
		t.Fatalf("unknown kind leaked into totals: income=%v expense=%v", s.TotalIncome, s.TotalExpense)
	}
	if s.TransactionCount != 2 {
		t.Fatalf("unknown kind missing from count: %d", s.TransactionCount)
	}
}

func TestCategoryTotalsJSONRoundTrip(t *testing.T) {
	ct := CategoryTotals{
		{Category: "Food", Amount: 250},
		{Category: "Transport", Amount: 99.5},
	}
	data, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Food":250,"Transport":99.5}`
	if string(data) != want {
		t.Fatalf("marshal = %s, want %s", data, want)
	}
	var back CategoryTotals
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0].Category != "Food" || back[1].Amount != 99.5 {
		t.Fatalf("round trip lost order or values: %+v", back)
	}
}
