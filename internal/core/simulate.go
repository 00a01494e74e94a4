package core

// SimulationParams describes a what-if scenario. All fields are optional;
// each rule applies only when both of its fields are present. Presence is
// pointer-based, so an explicit zero still counts as present.
type SimulationParams struct {
	CategoryToReduce    *string  `json:"category_to_reduce,omitempty"`
	ReductionPercentage *float64 `json:"reduction_percentage,omitempty"`
	IncomeToIncrease    *string  `json:"income_to_increase,omitempty"`
	IncreaseAmount      *float64 `json:"increase_amount,omitempty"`
}

// HasReduction reports whether the expense-reduction rule is fully specified.
func (p SimulationParams) HasReduction() bool {
	return p.CategoryToReduce != nil && p.ReductionPercentage != nil
}

// HasIncrease reports whether the income-increase rule is fully specified.
func (p SimulationParams) HasIncrease() bool {
	return p.IncomeToIncrease != nil && p.IncreaseAmount != nil
}

// IsIdentity reports whether the simulation changes nothing.
func (p SimulationParams) IsIdentity() bool {
	return !p.HasReduction() && !p.HasIncrease()
}

// Simulate derives a hypothetical ledger from the canonical one.
//
// Rule A: every expense whose category exactly matches CategoryToReduce has
// its amount multiplied by (1 - ReductionPercentage/100). Rule B: every income
// whose description exactly matches IncomeToIncrease gets IncreaseAmount
// added, once per occurrence. The rules are independent; with no rules the
// result is a structural copy.
//
// The input ledger is never mutated, so concurrent simulations over the same
// canonical ledger are safe. Percentages are applied as given; range checks
// belong to the boundary layer. A category or description that matches
// nothing is a no-op, not an error.
func Simulate(l Ledger, p SimulationParams) Ledger {
	sim := l.Clone()

	if p.HasReduction() {
		factor := 1 - *p.ReductionPercentage/100
		for i := range sim {
			if sim[i].Kind == Expense && sim[i].Category == *p.CategoryToReduce {
				sim[i].Amount *= factor
			}
		}
	}

	if p.HasIncrease() {
		for i := range sim {
			if sim[i].Kind == Income && sim[i].Description == *p.IncomeToIncrease {
				sim[i].Amount += *p.IncreaseAmount
			}
		}
	}

	return sim
}
