// Package optimizers implements the two-stage constrained multi-objective
// search over the text-processing pipeline's configuration space: a
// deterministic coarse grid sweep of the 5D base space, an NSGA-II-style
// generational refinement of the full 14D space with hypervolume-based
// convergence detection, and distillation of the final Pareto front into the
// fixed catalog of named runtime modes.
package optimizers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/paretune/paretune/pkg/constraints"
	"github.com/paretune/paretune/pkg/core"
	"github.com/paretune/paretune/pkg/errors"
	"github.com/paretune/paretune/pkg/logging"
)

// OptimizationResult is the terminal outcome of a full optimization run.
// Every candidate in ParetoFront has Rank 0 and is feasible. BestCandidate
// is nil when the front is empty; that is a valid non-error outcome callers
// must handle.
type OptimizationResult struct {
	Success       bool                 `json:"success"`
	ParetoFront   []*Candidate         `json:"pareto_front"`
	Modes         map[string]NamedMode `json:"modes"`
	BestCandidate *Candidate           `json:"best_candidate"`
	Generations   int                  `json:"generations"`
	Evaluations   int64                `json:"evaluations"`
	Converged     bool                 `json:"converged"`
	Hypervolume   float64              `json:"hypervolume"`
	Duration      time.Duration        `json:"duration"`
	Error         string               `json:"error,omitempty"`
}

// Optimizer sequences stage 1, stage 2 and mode distillation. An instance
// owns the evolving population for the duration of one Optimize call and is
// not safe for concurrent invocation: construct one per run or serialize
// access externally.
type Optimizer struct {
	cfg       Config
	pipe      *pipeline
	rng       *rand.Rand
	explorer  *Explorer
	refiner   *Refiner
	checkOpts []constraints.Option
}

// Option configures an Optimizer at construction.
type Option func(*Optimizer)

// WithBaseline supplies the reference objective vector for the baseline
// constraint group.
func WithBaseline(baseline core.ObjectiveVector) Option {
	return func(o *Optimizer) {
		o.checkOpts = append(o.checkOpts, constraints.WithBaseline(baseline))
	}
}

// WithConstraints replaces the default constraint catalog.
func WithConstraints(set []constraints.Constraint) Option {
	return func(o *Optimizer) {
		o.checkOpts = append(o.checkOpts, constraints.WithConstraints(set))
	}
}

// New constructs an Optimizer. Configuration errors fail fast here; they
// never surface mid-run.
func New(cfg Config, evaluator core.Evaluator, opts ...Option) (*Optimizer, error) {
	if evaluator == nil {
		return nil, errors.New(errors.InvalidInput, "evaluator is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	o := &Optimizer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.pipe = &pipeline{
		evaluator:   evaluator,
		checker:     constraints.NewChecker(o.checkOpts...),
		concurrency: cfg.ConcurrencyLevel,
	}
	o.explorer = newExplorer(o.pipe)
	o.refiner = newRefiner(cfg, o.pipe, o.rng)

	return o, nil
}

// Optimize runs the full pipeline: coarse exploration, generational
// refinement, mode distillation and best-candidate selection. It never
// panics or returns an error: any failure inside the pipeline is caught at
// this boundary and reported as Success=false with an error message.
func (o *Optimizer) Optimize(ctx context.Context) (result *OptimizationResult) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.New().String()[:8])
	logger := logging.GetLogger()
	start := time.Now()

	result = &OptimizationResult{}
	defer func() {
		result.Duration = time.Since(start)
		result.Evaluations = o.pipe.evaluations.Load()
		if r := recover(); r != nil {
			result.Success = false
			result.Error = fmt.Sprintf("optimization panicked: %v", r)
			logger.Error(ctx, "optimization panicked: %v", r)
		}
	}()

	logger.Info(ctx, "optimization started: population=%d max_generations=%d",
		o.cfg.PopulationSize, o.cfg.MaxGenerations)

	seeds, err := o.explorer.Explore(ctx)
	if err != nil {
		result.Error = errors.Wrap(err, errors.OptimizationFailed, "stage 1 failed").Error()
		return result
	}

	outcome, err := o.refiner.Refine(ctx, seeds)
	result.Generations = outcome.generations
	if err != nil {
		result.Error = errors.Wrap(err, errors.OptimizationFailed, "stage 2 failed").Error()
		return result
	}

	result.ParetoFront = outcome.front
	result.Converged = outcome.converged
	result.Hypervolume = outcome.hypervolume
	result.Modes = DistillModes(outcome.front)
	result.BestCandidate = bestByTaskSuccess(outcome.front)
	result.Success = true

	logger.Info(ctx, "optimization finished: front=%d generations=%d evaluations=%d converged=%v",
		len(result.ParetoFront), result.Generations, o.pipe.evaluations.Load(), result.Converged)
	return result
}

// bestByTaskSuccess picks the feasible front member with maximum
// task-success; nil for an empty front.
func bestByTaskSuccess(front []*Candidate) *Candidate {
	var best *Candidate
	for _, c := range front {
		if best == nil || c.Objectives.TaskSuccess > best.Objectives.TaskSuccess {
			best = c
		}
	}
	return best
}
