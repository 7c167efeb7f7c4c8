package optimizers

import (
	"github.com/google/uuid"

	"github.com/paretune/paretune/pkg/constraints"
	"github.com/paretune/paretune/pkg/core"
)

// Candidate is one evaluated configuration in the search. The decision
// variables and objective payload are immutable once evaluated; Rank and
// Crowding are written only by the refinement stage's selection step.
type Candidate struct {
	ID         string                  `json:"id"`
	Variables  core.DecisionVariables  `json:"variables"`
	Objectives core.ObjectiveVector    `json:"objectives"`
	Quality    map[string]float64      `json:"quality"`
	Feasible   bool                    `json:"feasible"`
	Check      constraints.CheckResult `json:"check"`
	Generation int                     `json:"generation"`
	Rank       int                     `json:"rank"`
	Crowding   float64                 `json:"crowding"`
	EvalError  string                  `json:"eval_error,omitempty"`
}

// newCandidate allocates an unevaluated candidate shell for the given
// generation. Only the evaluation pipeline creates candidates.
func newCandidate(vars core.DecisionVariables, generation int) *Candidate {
	return &Candidate{
		ID:         uuid.New().String(),
		Variables:  vars,
		Generation: generation,
	}
}
