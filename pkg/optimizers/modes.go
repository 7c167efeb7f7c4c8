package optimizers

import "github.com/paretune/paretune/pkg/core"

// NamedMode is a curated, labeled decision-variable preset distilled from
// the Pareto front for runtime use. ExpectedAccuracy/ExpectedEfficiency are
// the anchor point the mode targets in (task-success, efficiency) space.
type NamedMode struct {
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	Variables          core.DecisionVariables `json:"variables"`
	ExpectedAccuracy   float64                `json:"expected_accuracy"`
	ExpectedEfficiency float64                `json:"expected_efficiency"`
	UseCases           []string               `json:"use_cases"`
}

// ModeCatalog returns the fixed five-preset catalog with static fallback
// variables. Distillation replaces the variables with the nearest Pareto
// front member; the static values are used verbatim when the front is empty.
func ModeCatalog() []NamedMode {
	return []NamedMode{
		{
			Name:               "speed",
			Description:        "Fast drafts with shallow reasoning and aggressive compression.",
			ExpectedAccuracy:   0.70,
			ExpectedEfficiency: 0.95,
			UseCases:           []string{"drafting", "chat", "high-volume"},
			Variables: core.DecisionVariables{
				Base: core.BaseVariables{
					RelevanceWeight: 0.65,
					CoherenceWeight: 0.40,
					Strictness:      core.StrictnessLenient,
					Compression:     core.CompressionAggressive,
					SelfCheck:       false,
				},
				Ext: core.ExtensionVariables{
					FactualityWeight: 0.4,
					StyleWeight:      0.3,
					BrevityWeight:    0.8,
					ContextWeight:    0.3,
					CitationWeight:   0.1,
					ConfidenceFloor:  0.3,
					Temperature:      0.3,
					ReasoningDepth:   2,
					ContextStrategy:  core.ContextTruncate,
				},
			},
		},
		{
			Name:               "balanced",
			Description:        "Default trade-off between accuracy and throughput.",
			ExpectedAccuracy:   0.85,
			ExpectedEfficiency: 0.70,
			UseCases:           []string{"general", "summarization"},
			Variables:          core.DefaultVariables(),
		},
		{
			Name:               "quality",
			Description:        "High-accuracy output with self-checking enabled.",
			ExpectedAccuracy:   0.92,
			ExpectedEfficiency: 0.45,
			UseCases:           []string{"publishing", "customer-facing"},
			Variables: core.DecisionVariables{
				Base: core.BaseVariables{
					RelevanceWeight: 0.90,
					CoherenceWeight: 0.80,
					Strictness:      core.StrictnessStrict,
					Compression:     core.CompressionLight,
					SelfCheck:       true,
				},
				Ext: core.ExtensionVariables{
					FactualityWeight: 0.8,
					StyleWeight:      0.6,
					BrevityWeight:    0.3,
					ContextWeight:    0.7,
					CitationWeight:   0.5,
					ConfidenceFloor:  0.7,
					Temperature:      0.4,
					ReasoningDepth:   6,
					ContextStrategy:  core.ContextSlidingWindow,
				},
			},
		},
		{
			Name:               "research",
			Description:        "Deep multi-step reasoning over long contexts.",
			ExpectedAccuracy:   0.90,
			ExpectedEfficiency: 0.30,
			UseCases:           []string{"synthesis", "long-form", "analysis"},
			Variables: core.DecisionVariables{
				Base: core.BaseVariables{
					RelevanceWeight: 0.85,
					CoherenceWeight: 0.70,
					Strictness:      core.StrictnessStandard,
					Compression:     core.CompressionLight,
					SelfCheck:       true,
				},
				Ext: core.ExtensionVariables{
					FactualityWeight: 0.9,
					StyleWeight:      0.4,
					BrevityWeight:    0.2,
					ContextWeight:    0.9,
					CitationWeight:   0.8,
					ConfidenceFloor:  0.5,
					Temperature:      0.9,
					ReasoningDepth:   9,
					ContextStrategy:  core.ContextSummarize,
				},
			},
		},
		{
			Name:               "audit",
			Description:        "Maximum strictness for compliance review; accuracy over everything.",
			ExpectedAccuracy:   0.97,
			ExpectedEfficiency: 0.20,
			UseCases:           []string{"compliance", "review", "safety"},
			Variables: core.DecisionVariables{
				Base: core.BaseVariables{
					RelevanceWeight: 1.00,
					CoherenceWeight: 0.90,
					Strictness:      core.StrictnessStrict,
					Compression:     core.CompressionLight,
					SelfCheck:       true,
				},
				Ext: core.ExtensionVariables{
					FactualityWeight: 1.0,
					StyleWeight:      0.2,
					BrevityWeight:    0.1,
					ContextWeight:    0.8,
					CitationWeight:   1.0,
					ConfidenceFloor:  0.9,
					Temperature:      0.0,
					ReasoningDepth:   10,
					ContextStrategy:  core.ContextSummarize,
				},
			},
		},
	}
}

// DistillModes maps each catalog template onto the front member closest to
// its anchor by squared Euclidean distance in (task-success, efficiency)
// space. Pure and read-only: repeated distillation over a fixed front yields
// identical assignments. An empty front returns the static templates.
func DistillModes(front []*Candidate) map[string]NamedMode {
	modes := make(map[string]NamedMode)
	for _, template := range ModeCatalog() {
		mode := template
		if nearest := nearestToAnchor(front, template.ExpectedAccuracy, template.ExpectedEfficiency); nearest != nil {
			mode.Variables = nearest.Variables
		}
		modes[mode.Name] = mode
	}
	return modes
}

// nearestToAnchor returns the front member minimizing squared distance to
// the anchor point, or nil for an empty front. Ties keep the earliest
// member, so the scan is deterministic for a fixed front ordering.
func nearestToAnchor(front []*Candidate, accuracy, efficiency float64) *Candidate {
	var best *Candidate
	bestDist := 0.0
	for _, c := range front {
		dx := c.Objectives.TaskSuccess - accuracy
		dy := efficiencyOf(c.Objectives) - efficiency
		dist := dx*dx + dy*dy
		if best == nil || dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}
