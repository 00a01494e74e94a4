package advice

import (
	"encoding/json"
	"fmt"

	"finsight/internal/core"
)

// recommendationPrompt frames the user question for the model. The summary is
// embedded as indented JSON so the model can quote exact figures.
func recommendationPrompt(question string, summary core.FinancialSummary) (string, error) {
	contextJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal financial context: %w", err)
	}
	return fmt.Sprintf(`You are a "Virtual CFO", an expert, friendly and professional
financial advisor. Your goal is to help a user make better financial decisions.

NEVER invent information. Base ALL your answers on the user's financial
context below. If the question cannot be answered from the context, answer
with general knowledge without straying far from the topic.

Financial context (summary):
%s

Answer the following user question. Be clear, warm and concise, and offer
actionable recommendations.

Question: %s`, contextJSON, question), nil
}

// comparisonPrompt asks the model to narrate the impact of a simulation.
func comparisonPrompt(current, simulated core.FinancialSummary) (string, error) {
	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal current context: %w", err)
	}
	simulatedJSON, err := json.MarshalIndent(simulated, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal simulated context: %w", err)
	}
	return fmt.Sprintf(`You are a "Virtual CFO", an expert financial advisor.
Your task is to analyze the impact of a financial simulation for the user.

Compare the "Current scenario" with the "Simulated scenario" below.

Explain clearly what changed (e.g. "I see you simulated reducing your
'Restaurants' spending by 20%%...") and the direct impact on key metrics such
as "net_flow_total" and "avg_savings_rate_pct".

Finish with a brief, actionable recommendation on whether this simulation
looks like a good plan for the user. Be direct and encouraging.

--- CURRENT SCENARIO ---
%s
------------------------

--- SIMULATED SCENARIO ---
%s
--------------------------`, currentJSON, simulatedJSON), nil
}
