package core

import "context"

// Evaluator maps a full decision-variable configuration to an objective
// vector plus raw quality metrics (e.g. a compliance sigma level, defect
// rate, gaming-risk score). Implementations should be deterministic for test
// reproducibility; the engine tolerates nondeterminism in production.
//
// Evaluate may block arbitrarily (it may call an external scoring pipeline);
// the optimizer imposes no internal timeout, so callers that expect hangs
// should enforce cancellation through ctx.
type Evaluator interface {
	Evaluate(ctx context.Context, vars DecisionVariables) (ObjectiveVector, map[string]float64, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, vars DecisionVariables) (ObjectiveVector, map[string]float64, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, vars DecisionVariables) (ObjectiveVector, map[string]float64, error) {
	return f(ctx, vars)
}
