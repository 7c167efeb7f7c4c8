// Package constraints validates evaluated candidates against four
// independent constraint groups: immutable safety bounds, anti-gaming guards
// on coverage/diversity, hard quality gates on external metrics, and a
// regression check against a caller-supplied baseline objective vector.
package constraints

import (
	"fmt"
	"math"

	"github.com/paretune/paretune/pkg/core"
)

// Group identifies which of the four constraint groups a constraint belongs
// to. Groups are evaluated independently and their results unioned.
type Group int

const (
	// GroupImmutable constraints are always enforced.
	GroupImmutable Group = iota
	// GroupAntiGaming guards against reward-hacking on coverage/diversity.
	GroupAntiGaming
	// GroupQualityGate enforces hard pass/fail gates on external quality
	// metrics.
	GroupQualityGate
	// GroupBaseline checks for regressions against a reference objective
	// vector.
	GroupBaseline
)

func (g Group) String() string {
	switch g {
	case GroupImmutable:
		return "immutable"
	case GroupAntiGaming:
		return "anti_gaming"
	case GroupQualityGate:
		return "quality_gate"
	case GroupBaseline:
		return "baseline"
	default:
		return "unknown"
	}
}

// Op is the comparison operator applied between a metric value and a
// constraint threshold.
type Op int

const (
	OpGTE Op = iota
	OpLTE
	OpEQ
	OpLT
	OpGT
)

func (o Op) String() string {
	switch o {
	case OpGTE:
		return ">="
	case OpLTE:
		return "<="
	case OpEQ:
		return "=="
	case OpLT:
		return "<"
	case OpGT:
		return ">"
	default:
		return "?"
	}
}

const eqEpsilon = 1e-9

// evaluate applies the operator to (value, threshold).
func (o Op) evaluate(value, threshold float64) bool {
	switch o {
	case OpGTE:
		return value >= threshold
	case OpLTE:
		return value <= threshold
	case OpEQ:
		return math.Abs(value-threshold) <= eqEpsilon
	case OpLT:
		return value < threshold
	case OpGT:
		return value > threshold
	default:
		return false
	}
}

// Constraint is a single named check of `metric <op> threshold`. Hard
// violations make a candidate infeasible; soft violations are recorded as
// warnings only.
type Constraint struct {
	Name      string  `json:"name"`
	Group     Group   `json:"group"`
	Metric    string  `json:"metric"`
	Op        Op      `json:"op"`
	Threshold float64 `json:"threshold"`
	Hard      bool    `json:"hard"`
}

// Condition renders the expected condition, e.g. "regression_rate <= 0.15".
func (c Constraint) Condition() string {
	return fmt.Sprintf("%s %s %g", c.Metric, c.Op, c.Threshold)
}

// Violation records a single failed constraint with the expected condition
// and the actual value observed.
type Violation struct {
	Name      string  `json:"name"`
	Condition string  `json:"condition"`
	Actual    float64 `json:"actual"`
}

// CheckResult is the union of all four groups' outcomes for one candidate.
type CheckResult struct {
	Feasible       bool        `json:"feasible"`
	HardViolations []Violation `json:"hard_violations"`
	SoftViolations []Violation `json:"soft_violations"`
	Warnings       []string    `json:"warnings"`
}

// BaselineTolerance is the fraction of a baseline objective a candidate may
// drop to before the baseline group flags a regression.
const BaselineTolerance = 0.95

// Checker evaluates candidates against a registered constraint set. It is
// stateless with respect to candidates; the same inputs always produce the
// same result.
type Checker struct {
	constraints []Constraint
	baseline    *core.ObjectiveVector
	tolerance   float64
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseline supplies the reference objective vector consumed by the
// baseline constraint group. Without it the group is skipped.
func WithBaseline(baseline core.ObjectiveVector) Option {
	return func(c *Checker) {
		b := baseline
		c.baseline = &b
	}
}

// WithConstraints replaces the default constraint catalog.
func WithConstraints(constraints []Constraint) Option {
	return func(c *Checker) {
		c.constraints = constraints
	}
}

// WithTolerance overrides the baseline regression tolerance.
func WithTolerance(tolerance float64) Option {
	return func(c *Checker) {
		c.tolerance = tolerance
	}
}

// NewChecker builds a Checker with the default constraint catalog unless
// overridden.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		constraints: DefaultConstraints(),
		tolerance:   BaselineTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConstraints is the stock constraint catalog.
//
// Quality-gate constraints reference metrics the evaluator reports out of
// band (sigma_level, defect_rate, gaming_risk); a constraint whose metric is
// absent from every source is skipped with a warning rather than failed,
// since an unreported gate signal is indistinguishable from a gate that does
// not apply.
func DefaultConstraints() []Constraint {
	return []Constraint{
		// Immutable: never acceptable regardless of everything else.
		{Name: "max_regression_rate", Group: GroupImmutable, Metric: core.MetricRegressionRate, Op: OpLTE, Threshold: 0.15, Hard: true},
		{Name: "max_calibration_error", Group: GroupImmutable, Metric: core.MetricCalibrationError, Op: OpLTE, Threshold: 0.50, Hard: true},

		// Anti-gaming: coverage/diversity pinned at the ceiling is the
		// signature of a reward-hacked scorer, not of a good pipeline.
		{Name: "max_gaming_risk", Group: GroupAntiGaming, Metric: "gaming_risk", Op: OpLTE, Threshold: 0.30, Hard: true},
		{Name: "suspicious_coverage", Group: GroupAntiGaming, Metric: core.MetricCoverage, Op: OpLTE, Threshold: 0.98, Hard: false},
		{Name: "suspicious_diversity", Group: GroupAntiGaming, Metric: core.MetricDiversity, Op: OpLTE, Threshold: 0.98, Hard: false},

		// Quality gate: external compliance signals.
		{Name: "min_sigma_level", Group: GroupQualityGate, Metric: "sigma_level", Op: OpGTE, Threshold: 4.0, Hard: true},
		{Name: "max_defect_rate", Group: GroupQualityGate, Metric: "defect_rate", Op: OpLTE, Threshold: 0.01, Hard: true},
	}
}

// Check validates one evaluated candidate. Metric names resolve against the
// objective vector first, then the decision variables, then the raw quality
// metric map; later sources win on key collisions.
func (c *Checker) Check(objectives core.ObjectiveVector, vars core.DecisionVariables, quality map[string]float64) CheckResult {
	values := objectives.ToMetrics()
	for k, v := range vars.MetricValues() {
		values[k] = v
	}
	for k, v := range quality {
		values[k] = v
	}

	result := CheckResult{Feasible: true}

	for _, constraint := range c.constraints {
		value, ok := values[constraint.Metric]
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("constraint %q skipped: metric %q not reported", constraint.Name, constraint.Metric))
			continue
		}
		if constraint.Op.evaluate(value, constraint.Threshold) {
			continue
		}
		violation := Violation{
			Name:      constraint.Name,
			Condition: constraint.Condition(),
			Actual:    value,
		}
		if constraint.Hard {
			result.Feasible = false
			result.HardViolations = append(result.HardViolations, violation)
		} else {
			result.SoftViolations = append(result.SoftViolations, violation)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("soft constraint %q violated: want %s, got %g", violation.Name, violation.Condition, violation.Actual))
		}
	}

	c.checkBaseline(objectives, &result)

	return result
}

// baselineCheck describes one maximized objective compared against the
// baseline. Only the task-success regression is hard; the rest warn.
type baselineCheck struct {
	metric  string
	current func(core.ObjectiveVector) float64
	hard    bool
}

func (c *Checker) checkBaseline(objectives core.ObjectiveVector, result *CheckResult) {
	if c.baseline == nil {
		return
	}

	checks := []baselineCheck{
		{metric: core.MetricTaskSuccess, current: func(v core.ObjectiveVector) float64 { return v.TaskSuccess }, hard: true},
		{metric: core.MetricQuality, current: func(v core.ObjectiveVector) float64 { return v.Quality }, hard: false},
		{metric: core.MetricCoverage, current: func(v core.ObjectiveVector) float64 { return v.Coverage }, hard: false},
		{metric: core.MetricDiversity, current: func(v core.ObjectiveVector) float64 { return v.Diversity }, hard: false},
	}

	for _, check := range checks {
		reference := check.current(*c.baseline)
		floor := reference * c.tolerance
		current := check.current(objectives)
		if current >= floor {
			continue
		}
		violation := Violation{
			Name:      "baseline_" + check.metric,
			Condition: fmt.Sprintf("%s >= %g (%g * baseline %g)", check.metric, floor, c.tolerance, reference),
			Actual:    current,
		}
		if check.hard {
			result.Feasible = false
			result.HardViolations = append(result.HardViolations, violation)
		} else {
			result.SoftViolations = append(result.SoftViolations, violation)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("baseline regression on %s: want %s, got %g", check.metric, violation.Condition, violation.Actual))
		}
	}
}
