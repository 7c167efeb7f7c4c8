package optimizers

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paretune/paretune/internal/testutil"
	"github.com/paretune/paretune/pkg/constraints"
	"github.com/paretune/paretune/pkg/core"
	"github.com/paretune/paretune/pkg/errors"
)

func TestNewValidatesInputs(t *testing.T) {
	t.Run("nil evaluator", func(t *testing.T) {
		_, err := New(DefaultConfig(), nil)
		require.Error(t, err)

		var structured *errors.Error
		require.True(t, goerrors.As(err, &structured))
		assert.Equal(t, errors.InvalidInput, structured.Code())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PopulationSize = 0
		_, err := New(cfg, linearEvaluator())
		assert.Error(t, err)
	})
}

func TestOptimizeEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11

	optimizer, err := New(cfg, linearEvaluator())
	require.NoError(t, err)

	result := optimizer.Optimize(context.Background())

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	require.NotEmpty(t, result.ParetoFront)

	for _, c := range result.ParetoFront {
		assert.Equal(t, 0, c.Rank)
		assert.True(t, c.Feasible)
		assert.Empty(t, c.EvalError)
	}

	// The grid alone evaluates 162 points; refinement adds more.
	assert.Greater(t, result.Evaluations, int64(162))
	assert.GreaterOrEqual(t, result.Generations, 1)
	assert.LessOrEqual(t, result.Generations, cfg.MaxGenerations)
	assert.Greater(t, result.Hypervolume, 0.0)
	assert.Greater(t, result.Duration, time.Duration(0))

	// Task-success tracks the relevance weight directly, and the coarse grid
	// already contains the maximum, so the best candidate must sit at the
	// top of the scale.
	require.NotNil(t, result.BestCandidate)
	assert.GreaterOrEqual(t, result.BestCandidate.Objectives.TaskSuccess, 0.95)

	require.Len(t, result.Modes, 5)
	for name, mode := range result.Modes {
		assert.Equal(t, name, mode.Name)
	}
}

func TestOptimizeIsReproducibleForFixedSeed(t *testing.T) {
	run := func() *OptimizationResult {
		cfg := DefaultConfig()
		cfg.Seed = 77
		cfg.MaxGenerations = 5
		optimizer, err := New(cfg, linearEvaluator())
		require.NoError(t, err)
		return optimizer.Optimize(context.Background())
	}

	first := run()
	second := run()

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, first.Evaluations, second.Evaluations)
	assert.Equal(t, first.Generations, second.Generations)
	assert.Equal(t, first.Hypervolume, second.Hypervolume)
	require.Equal(t, len(first.ParetoFront), len(second.ParetoFront))
	for i := range first.ParetoFront {
		assert.Equal(t, first.ParetoFront[i].Variables, second.ParetoFront[i].Variables)
	}
	assert.Equal(t, first.BestCandidate.Variables, second.BestCandidate.Variables)
}

func TestOptimizeEvaluatorFailuresDoNotAbort(t *testing.T) {
	evaluator := core.EvaluatorFunc(func(_ context.Context, _ core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
		return core.ObjectiveVector{}, nil, errors.New(errors.EvaluationFailed, "backend unavailable")
	})

	cfg := DefaultConfig()
	cfg.Seed = 5
	optimizer, err := New(cfg, evaluator)
	require.NoError(t, err)

	result := optimizer.Optimize(context.Background())

	// Every candidate failed evaluation, but the run itself completes: an
	// empty front with no best candidate is a valid outcome.
	require.True(t, result.Success)
	assert.Empty(t, result.ParetoFront)
	assert.Nil(t, result.BestCandidate)

	// Distillation falls back to the static catalog.
	require.Len(t, result.Modes, 5)
	assert.Equal(t, core.DefaultVariables(), result.Modes["balanced"].Variables)
}

func TestOptimizeAllInfeasible(t *testing.T) {
	evaluator := core.EvaluatorFunc(func(_ context.Context, _ core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
		return core.ObjectiveVector{
			TaskSuccess: 0.9, Quality: 0.8, Coverage: 0.7, Diversity: 0.6,
			Cost: 100, Latency: 50, CalibrationError: 0.1,
			RegressionRate: 0.9, // hard immutable violation
		}, testutil.PassingQualityMetrics(), nil
	})

	cfg := DefaultConfig()
	cfg.Seed = 31
	optimizer, err := New(cfg, evaluator)
	require.NoError(t, err)

	result := optimizer.Optimize(context.Background())
	require.True(t, result.Success)
	assert.Empty(t, result.ParetoFront)
	assert.Nil(t, result.BestCandidate)
}

func TestOptimizeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	optimizer, err := New(DefaultConfig(), linearEvaluator())
	require.NoError(t, err)

	result := optimizer.Optimize(ctx)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "stage 1")
}

func TestOptimizeRecoversFromPanic(t *testing.T) {
	evaluator := core.EvaluatorFunc(func(_ context.Context, _ core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
		panic("evaluator exploded")
	})

	optimizer, err := New(DefaultConfig(), evaluator)
	require.NoError(t, err)

	result := optimizer.Optimize(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "panicked")
	assert.Contains(t, result.Error, "evaluator exploded")
}

func TestOptimizeNilContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 2
	cfg.MaxGenerations = 2
	optimizer, err := New(cfg, linearEvaluator())
	require.NoError(t, err)

	result := optimizer.Optimize(nil) //nolint:staticcheck // nil context is part of the boundary contract
	assert.True(t, result.Success)
}

func TestOptimizeWithBaseline(t *testing.T) {
	// A baseline far above anything the evaluator can reach makes every
	// candidate a hard baseline violation.
	baseline := core.ObjectiveVector{TaskSuccess: 2.0}

	cfg := DefaultConfig()
	cfg.Seed = 13
	optimizer, err := New(cfg, linearEvaluator(), WithBaseline(baseline))
	require.NoError(t, err)

	result := optimizer.Optimize(context.Background())
	require.True(t, result.Success)
	assert.Empty(t, result.ParetoFront)
}

func TestOptimizeWithCustomConstraints(t *testing.T) {
	// Replace the catalog with a single impossible requirement.
	impossible := []constraints.Constraint{{
		Name:      "min_task_success",
		Group:     constraints.GroupQualityGate,
		Metric:    core.MetricTaskSuccess,
		Op:        constraints.OpGTE,
		Threshold: 1.5,
		Hard:      true,
	}}

	cfg := DefaultConfig()
	cfg.Seed = 19
	optimizer, err := New(cfg, linearEvaluator(), WithConstraints(impossible))
	require.NoError(t, err)

	result := optimizer.Optimize(context.Background())
	require.True(t, result.Success)
	assert.Empty(t, result.ParetoFront)
	assert.Nil(t, result.BestCandidate)
}

func TestMockEvaluatorWiring(t *testing.T) {
	evaluator := new(testutil.MockEvaluator)
	evaluator.On("Evaluate", mock.Anything, mock.Anything).Return(core.ObjectiveVector{
		TaskSuccess: 0.8, Quality: 0.8, Coverage: 0.7, Diversity: 0.6,
		Cost: 100, Latency: 50, CalibrationError: 0.1, RegressionRate: 0.02,
	}, testutil.PassingQualityMetrics(), nil)

	pipe := newTestPipeline(evaluator)
	batch := []core.DecisionVariables{core.DefaultVariables(), core.DefaultVariables()}
	candidates := pipe.evaluate(context.Background(), batch, 3)

	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.True(t, c.Feasible)
		assert.Equal(t, 3, c.Generation)
		assert.NotEmpty(t, c.ID)
	}
	evaluator.AssertNumberOfCalls(t, "Evaluate", 2)
}
