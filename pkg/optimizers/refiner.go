package optimizers

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/paretune/paretune/pkg/core"
	"github.com/paretune/paretune/pkg/errors"
	"github.com/paretune/paretune/pkg/logging"
)

// Refiner runs the NSGA-II-style generational loop over the full 14D space:
// non-dominated sorting with crowding distance, tournament selection,
// per-field uniform crossover and bounded gaussian mutation, with
// hypervolume-based convergence detection.
//
// Each generation's selection depends on the complete ranking of the
// previous one, so generations are strictly sequential; only candidate
// evaluation within a generation runs concurrently (see pipeline).
type Refiner struct {
	cfg  Config
	pipe *pipeline
	rng  *rand.Rand
}

func newRefiner(cfg Config, pipe *pipeline, rng *rand.Rand) *Refiner {
	return &Refiner{cfg: cfg, pipe: pipe, rng: rng}
}

// refineOutcome is the terminal state of the generational loop.
type refineOutcome struct {
	front       []*Candidate
	generations int
	converged   bool
	hypervolume float64
	history     []float64
}

// Refine evolves the population until max generations or convergence. A
// fully infeasible seed set is not an error: refinement proceeds from
// mutated defaults and an empty final front is a valid outcome.
func (r *Refiner) Refine(ctx context.Context, seeds []*Candidate) (refineOutcome, error) {
	logger := logging.GetLogger()

	population := r.initialize(ctx, seeds)

	outcome := refineOutcome{}
	consecutiveLow := 0

	for outcome.generations < r.cfg.MaxGenerations {
		if err := errors.CheckContext(ctx, "refinement"); err != nil {
			return outcome, err
		}
		outcome.generations++
		genCtx := logging.WithGeneration(ctx, outcome.generations)

		fronts := nonDominatedSort(population)
		for _, front := range fronts {
			assignCrowdingDistances(front)
		}

		hv := hypervolume2D(feasibleFront(fronts[0]))
		if len(outcome.history) > 0 {
			gain := hv - outcome.history[len(outcome.history)-1]
			if gain < r.cfg.ConvergenceThreshold {
				consecutiveLow++
			} else {
				consecutiveLow = 0
			}
		}
		outcome.history = append(outcome.history, hv)
		outcome.hypervolume = hv

		logger.Debug(genCtx, "stage 2: hypervolume %.6f front %d", hv, len(fronts[0]))

		if consecutiveLow >= r.cfg.ConvergenceWindow {
			outcome.converged = true
			logger.Info(genCtx, "stage 2: converged after %d generations (hypervolume %.6f)",
				outcome.generations, hv)
			break
		}
		if outcome.generations == r.cfg.MaxGenerations {
			break
		}

		offspring := r.breed(genCtx, population, outcome.generations)
		population = append(population, offspring...)

		merged := nonDominatedSort(population)
		for _, front := range merged {
			assignCrowdingDistances(front)
		}
		population = truncate(merged, r.cfg.PopulationSize)
	}

	finalFronts := nonDominatedSort(population)
	for _, front := range finalFronts {
		assignCrowdingDistances(front)
	}
	if len(finalFronts) > 0 {
		outcome.front = feasibleFront(finalFronts[0])
	}
	return outcome, nil
}

// initialize seeds the population from stage 1 and pads to PopulationSize
// with mutated seeds, or mutated defaults when stage 1 produced nothing
// feasible.
func (r *Refiner) initialize(ctx context.Context, seeds []*Candidate) []*Candidate {
	population := make([]*Candidate, 0, r.cfg.PopulationSize)
	population = append(population, seeds...)
	if len(population) > r.cfg.PopulationSize {
		population = population[:r.cfg.PopulationSize]
	}

	missing := r.cfg.PopulationSize - len(population)
	if missing <= 0 {
		return population
	}

	batch := make([]core.DecisionVariables, 0, missing)
	for i := 0; i < missing; i++ {
		var parent core.DecisionVariables
		if len(seeds) > 0 {
			parent = seeds[r.rng.Intn(len(seeds))].Variables
		} else {
			parent = core.DefaultVariables()
		}
		batch = append(batch, r.mutate(parent))
	}
	return append(population, r.pipe.evaluate(ctx, batch, 0)...)
}

// breed produces PopulationSize/2 offspring: two tournament-selected
// parents, per-field uniform crossover, then gaussian mutation, each
// offspring evaluated and constraint-checked.
func (r *Refiner) breed(ctx context.Context, population []*Candidate, generation int) []*Candidate {
	count := r.cfg.PopulationSize / 2
	batch := make([]core.DecisionVariables, 0, count)
	for i := 0; i < count; i++ {
		a := r.tournament(population)
		b := r.tournament(population)
		child := r.crossover(a.Variables, b.Variables)
		batch = append(batch, r.mutate(child))
	}
	return r.pipe.evaluate(ctx, batch, generation)
}

// tournament samples TournamentSize candidates (with replacement) and keeps
// the best: lowest rank, then highest crowding distance, then lowest index.
func (r *Refiner) tournament(population []*Candidate) *Candidate {
	bestIdx := r.rng.Intn(len(population))
	for i := 1; i < r.cfg.TournamentSize; i++ {
		idx := r.rng.Intn(len(population))
		if betterSelection(population[idx], population[bestIdx]) {
			bestIdx = idx
		}
	}
	return population[bestIdx]
}

// betterSelection orders candidates for selection and truncation: rank
// ascending, crowding distance descending.
func betterSelection(a, b *Candidate) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Crowding > b.Crowding
}

// crossover performs per-field uniform crossover on the encoded vectors with
// probability CrossoverRate; otherwise the first parent passes through.
func (r *Refiner) crossover(a, b core.DecisionVariables) core.DecisionVariables {
	if r.rng.Float64() >= r.cfg.CrossoverRate {
		return a
	}
	encA := a.Encode()
	encB := b.Encode()
	child := make([]float64, len(encA))
	for i := range child {
		if r.rng.Float64() < 0.5 {
			child[i] = encA[i]
		} else {
			child[i] = encB[i]
		}
	}
	return core.DecodeVariables(child)
}

// mutate perturbs each field with probability MutationRate. Continuous
// fields get a gaussian nudge scaled by MutationStrength times the field
// range; enums and the boolean resample uniformly; the integer depth steps
// by ±1. Decoding clamps everything back into bounds.
func (r *Refiner) mutate(vars core.DecisionVariables) core.DecisionVariables {
	encoded := vars.Encode()
	for i, spec := range core.FieldSpecs() {
		if r.rng.Float64() >= r.cfg.MutationRate {
			continue
		}
		switch spec.Kind {
		case core.FieldContinuous:
			encoded[i] += r.rng.NormFloat64() * r.cfg.MutationStrength * (spec.Max - spec.Min)
		case core.FieldEnum, core.FieldBool:
			encoded[i] = float64(r.rng.Intn(spec.Levels)) / float64(spec.Levels-1)
		case core.FieldInt:
			step := 1.0 / float64(spec.Levels-1)
			if r.rng.Intn(2) == 0 {
				step = -step
			}
			encoded[i] = math.Min(math.Max(encoded[i]+step, 0), 1)
		}
	}
	return core.DecodeVariables(encoded)
}

// truncate flattens ranked fronts back into a population of at most size
// candidates, taking whole fronts while they fit and breaking the last rank
// tie by descending crowding distance (stable, so residual ties keep
// insertion order).
func truncate(fronts [][]*Candidate, size int) []*Candidate {
	population := make([]*Candidate, 0, size)
	for _, front := range fronts {
		if len(population)+len(front) <= size {
			population = append(population, front...)
			if len(population) == size {
				break
			}
			continue
		}
		remaining := size - len(population)
		ordered := make([]*Candidate, len(front))
		copy(ordered, front)
		sort.SliceStable(ordered, func(a, b int) bool {
			return ordered[a].Crowding > ordered[b].Crowding
		})
		population = append(population, ordered[:remaining]...)
		break
	}
	return population
}
