package core

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestSimulateIdentity(t *testing.T) {
	l := sampleLedger()
	sim := Simulate(l, SimulationParams{})
	if !reflect.DeepEqual(Ledger(sim), l) {
		t.Fatalf("identity simulation changed the ledger:\n%+v\n%+v", sim, l)
	}
	if len(l) > 0 && &sim[0] == &l[0] {
		t.Fatal("identity simulation shares backing array with input")
	}
}

func TestSimulateNeverMutatesInput(t *testing.T) {
	l := sampleLedger()
	before := l.Clone()
	Simulate(l, SimulationParams{
		CategoryToReduce:    strPtr("Food"),
		ReductionPercentage: numPtr(100),
		IncomeToIncrease:    strPtr("Paycheck"),
		IncreaseAmount:      numPtr(500),
	})
	if !reflect.DeepEqual(l, before) {
		t.Fatalf("input ledger mutated:\n%+v\n%+v", l, before)
	}
}

func TestSimulateReduction(t *testing.T) {
	cases := []struct {
		name string
		pct  float64
		want []float64 // Groceries, Restaurant
	}{
		{"half", 50, []float64{100, 25}},
		{"full", 100, []float64{0, 0}},
		{"none", 0, []float64{200, 50}},
		{"over range passes through", 150, []float64{-100, -25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sim := Simulate(sampleLedger(), SimulationParams{
				CategoryToReduce:    strPtr("Food"),
				ReductionPercentage: numPtr(tc.pct),
			})
			if sim[1].Amount != tc.want[0] || sim[2].Amount != tc.want[1] {
				t.Fatalf("pct=%v amounts = %v, %v; want %v", tc.pct, sim[1].Amount, sim[2].Amount, tc.want)
			}
			if sim[0].Amount != 1000 {
				t.Fatalf("income touched by expense reduction: %v", sim[0].Amount)
			}
		})
	}
}

func TestSimulateReductionMatchesCategoryAndKindOnly(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2024, 1, 1), Description: "Refund", Amount: 80, Category: "Food", Kind: Income},
		{Date: NewDate(2024, 1, 2), Description: "Groceries", Amount: 200, Category: "Food", Kind: Expense},
		{Date: NewDate(2024, 1, 3), Description: "Bus", Amount: 30, Category: "Transport", Kind: Expense},
	}
	sim := Simulate(l, SimulationParams{CategoryToReduce: strPtr("Food"), ReductionPercentage: numPtr(50)})
	if sim[0].Amount != 80 {
		t.Errorf("income with matching category reduced: %v", sim[0].Amount)
	}
	if sim[1].Amount != 100 {
		t.Errorf("matching expense = %v, want 100", sim[1].Amount)
	}
	if sim[2].Amount != 30 {
		t.Errorf("non-matching expense changed: %v", sim[2].Amount)
	}
}

func TestSimulateIncomeIncrease(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2024, 1, 1), Description: "Paycheck", Amount: 1000, Kind: Income},
		{Date: NewDate(2024, 1, 15), Description: "Paycheck", Amount: 1000, Kind: Income},
		{Date: NewDate(2024, 1, 20), Description: "Dividends", Amount: 50, Kind: Income},
		{Date: NewDate(2024, 1, 21), Description: "Paycheck", Amount: 10, Category: "Misc", Kind: Expense},
	}
	sim := Simulate(l, SimulationParams{IncomeToIncrease: strPtr("Paycheck"), IncreaseAmount: numPtr(250)})
	if sim[0].Amount != 1250 || sim[1].Amount != 1250 {
		t.Errorf("per-occurrence increase wrong: %v, %v", sim[0].Amount, sim[1].Amount)
	}
	if sim[2].Amount != 50 {
		t.Errorf("non-matching income changed: %v", sim[2].Amount)
	}
	if sim[3].Amount != 10 {
		t.Errorf("expense with matching description changed: %v", sim[3].Amount)
	}
	// Total increase equals match count times the increment.
	var before, after float64
	for i := range l {
		if l[i].Kind == Income && l[i].Description == "Paycheck" {
			before += l[i].Amount
			after += sim[i].Amount
		}
	}
	if after-before != 2*250 {
		t.Errorf("subgroup delta = %v, want 500", after-before)
	}
}

func TestSimulateCombinedRules(t *testing.T) {
	sim := Simulate(sampleLedger(), SimulationParams{
		CategoryToReduce:    strPtr("Food"),
		ReductionPercentage: numPtr(50),
		IncomeToIncrease:    strPtr("Paycheck"),
		IncreaseAmount:      numPtr(100),
	})
	s, err := Summarize(sim)
	if err != nil {
		t.Fatalf("summarize simulated ledger: %v", err)
	}
	if s.TotalIncome != 1100 || s.TotalExpense != 125 || s.NetFlowTotal != 975 {
		t.Fatalf("combined summary = income %v, expense %v, net %v", s.TotalIncome, s.TotalExpense, s.NetFlowTotal)
	}
}

func TestSimulateUnknownReferenceIsNoop(t *testing.T) {
	l := sampleLedger()
	sim := Simulate(l, SimulationParams{
		CategoryToReduce:    strPtr("Travel"),
		ReductionPercentage: numPtr(90),
		IncomeToIncrease:    strPtr("Bonus"),
		IncreaseAmount:      numPtr(1000),
	})
	if !reflect.DeepEqual(Ledger(sim), l) {
		t.Fatalf("unmatched references changed the ledger: %+v", sim)
	}
}

func TestSimulateHalfSpecifiedRulesIgnored(t *testing.T) {
	l := sampleLedger()
	for _, p := range []SimulationParams{
		{CategoryToReduce: strPtr("Food")},
		{ReductionPercentage: numPtr(50)},
		{IncomeToIncrease: strPtr("Paycheck")},
		{IncreaseAmount: numPtr(100)},
	} {
		if sim := Simulate(l, p); !reflect.DeepEqual(Ledger(sim), l) {
			t.Fatalf("half-specified params %+v applied a rule", p)
		}
	}
}
