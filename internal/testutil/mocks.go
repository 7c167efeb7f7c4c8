// Package testutil provides shared test doubles for the optimizer packages.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/paretune/paretune/pkg/core"
)

// MockEvaluator is a mock implementation of core.Evaluator.
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, vars core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
	args := m.Called(ctx, vars)
	objectives, _ := args.Get(0).(core.ObjectiveVector)
	quality, _ := args.Get(1).(map[string]float64)
	return objectives, quality, args.Error(2)
}

// PassingQualityMetrics returns quality metrics that clear the default
// quality-gate and anti-gaming constraints.
func PassingQualityMetrics() map[string]float64 {
	return map[string]float64{
		"sigma_level": 4.5,
		"defect_rate": 0.001,
		"gaming_risk": 0.05,
	}
}
