// Package advice is the port to the natural-language advisor. The core
// engines never talk to the network; they hand a computed summary to an
// Advisor and receive free text back.
package advice

import (
	"context"

	"finsight/internal/core"
)

// Advisor turns computed financial context into natural-language text.
// Implementations own their timeouts; callers treat failures as degradable
// and substitute the fallback messages below.
type Advisor interface {
	// Recommend answers a user question grounded in the canonical summary.
	Recommend(ctx context.Context, question string, summary core.FinancialSummary) (string, error)

	// CompareScenarios narrates the impact of a simulation by comparing the
	// canonical summary with the simulated one.
	CompareScenarios(ctx context.Context, current, simulated core.FinancialSummary) (string, error)
}

// Fallback texts returned to users when the advisor fails or times out. The
// structured numeric results still go out; only the narrative degrades.
const (
	FallbackRecommendation = "There was an error processing your request with the AI assistant."
	FallbackComparison     = "There was an error generating the analysis for this simulation."
)
