// Package services wires the core engines to their collaborators: the ledger
// loader at startup, the advisor on the request path, and the optional
// activity-event publisher.
package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"finsight/internal/advice"
	"finsight/internal/core"
	"finsight/internal/events"
	"finsight/internal/ledger"
)

// FinanceService owns the canonical ledger and its precomputed summary for
// the lifetime of the process. Both are read-only after New returns, so all
// methods are safe for concurrent use without locking; simulations work on
// derived copies.
type FinanceService struct {
	ledger     core.Ledger
	summary    core.FinancialSummary
	summaryErr error
	loaded     bool

	advisor advice.Advisor
	events  *events.Client
}

// SimulationResult is the full outcome of a what-if request: the echoed
// parameters, both summaries, and the narrative comparing them.
type SimulationResult struct {
	Params    core.SimulationParams `json:"simulation_params"`
	Original  core.FinancialSummary `json:"original_summary"`
	Simulated core.FinancialSummary `json:"simulated_summary"`
	Analysis  string                `json:"ai_analysis"`
}

// AskResult pairs a question with the advisor's answer.
type AskResult struct {
	UserQuestion string `json:"user_question"`
	AIAnswer     string `json:"ai_answer"`
}

// New loads the canonical ledger once and precomputes its summary. A load
// failure does not fail construction: the service comes up in an unavailable
// state and every operation reports ErrDataUnavailable, so the process stays
// alive and observable.
func New(ctx context.Context, loader ledger.Loader, advisor advice.Advisor, ev *events.Client) *FinanceService {
	s := &FinanceService{advisor: advisor, events: ev}

	led, err := loader.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load ledger, service marked unavailable", "error", err)
		return s
	}
	s.ledger = led
	s.loaded = true
	s.summary, s.summaryErr = core.Summarize(led)
	if s.summaryErr != nil {
		slog.WarnContext(ctx, "Ledger loaded but empty", "error", s.summaryErr)
	} else {
		slog.InfoContext(ctx, "Financial context ready",
			"transactions", s.summary.TransactionCount,
			"first_date", s.summary.FirstTransactionDate,
			"last_date", s.summary.LastTransactionDate)
	}
	return s
}

// Available reports whether the canonical ledger was loaded at startup.
func (s *FinanceService) Available() bool {
	return s.loaded
}

// Summary returns the cached canonical summary. ErrDataUnavailable when
// startup loading failed; ErrNoData when the ledger loaded empty.
func (s *FinanceService) Summary() (core.FinancialSummary, error) {
	if !s.loaded {
		return core.FinancialSummary{}, core.ErrDataUnavailable
	}
	return s.summary, s.summaryErr
}

// Ask forwards a question plus the canonical summary to the advisor. Advisor
// failures degrade to a fallback message, never to a request failure.
func (s *FinanceService) Ask(ctx context.Context, question string) (AskResult, error) {
	if _, err := s.Summary(); err != nil {
		return AskResult{}, err
	}

	answer, err := s.advisor.Recommend(ctx, question, s.summary)
	if err != nil {
		slog.ErrorContext(ctx, "Advisor failed, using fallback", "error", err)
		answer = advice.FallbackRecommendation
	}

	s.publishActivity(ctx, events.EventQuestionAsked, question)

	return AskResult{UserQuestion: question, AIAnswer: answer}, nil
}

// Simulate derives a hypothetical ledger, summarizes it and asks the advisor
// for a comparison narrative. The numeric result is returned even when the
// narrative degrades to a fallback.
func (s *FinanceService) Simulate(ctx context.Context, params core.SimulationParams) (SimulationResult, error) {
	if _, err := s.Summary(); err != nil {
		return SimulationResult{}, err
	}

	simulated := core.Simulate(s.ledger, params)
	simSummary, err := core.Summarize(simulated)
	if err != nil {
		return SimulationResult{}, err
	}

	analysis, err := s.advisor.CompareScenarios(ctx, s.summary, simSummary)
	if err != nil {
		slog.ErrorContext(ctx, "Scenario comparison failed, using fallback", "error", err)
		analysis = advice.FallbackComparison
	}

	if detail, err := json.Marshal(params); err == nil {
		s.publishActivity(ctx, events.EventSimulationRun, string(detail))
	}

	return SimulationResult{
		Params:    params,
		Original:  s.summary,
		Simulated: simSummary,
		Analysis:  analysis,
	}, nil
}

// AllTransactions returns the full canonical ledger in presentation form.
// A loaded-but-empty ledger yields an empty list, not an error.
func (s *FinanceService) AllTransactions() ([]core.TransactionRecord, error) {
	if !s.loaded {
		return nil, core.ErrDataUnavailable
	}
	records := make([]core.TransactionRecord, 0, len(s.ledger))
	for _, t := range s.ledger {
		records = append(records, t.Record())
	}
	return records, nil
}

// publishActivity emits a best-effort activity event. No publisher, or a
// broker failure, never affects the request.
func (s *FinanceService) publishActivity(ctx context.Context, event, detail string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishActivity(ctx, events.NewActivityMessage(event, detail)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish activity event", "event", event, "error", err)
	}
}
