package errmodel

import (
	"sort"

	"github.com/bastiangx/wordfix/pkg/levenshtein"
)

// Weights mixes the three frequency signals of the error model.
type Weights struct {
	Alpha float64 // action type share
	Beta  float64 // exact action share
	Gamma float64 // (previous, action) pair share
}

// DefaultWeights ranks by the exact action frequency only.
func DefaultWeights() Weights {
	return Weights{Alpha: 0, Beta: 1, Gamma: 0}
}

// Scorer ranks edit actions by how often they occurred in training.
// It is read-only after construction and safe for concurrent use.
type Scorer struct {
	tables  Tables
	weights Weights

	totalTypes    float64
	totalDetailed float64
	totalContext  float64
}

// NewScorer builds a scorer over tables. The tables must not be modified afterwards.
func NewScorer(tables Tables, weights Weights) *Scorer {
	return &Scorer{
		tables:        tables,
		weights:       weights,
		totalTypes:    sum(tables.Types),
		totalDetailed: sum(tables.Detailed),
		totalContext:  sum(tables.Context),
	}
}

// Score returns the weighted likelihood of a following prev.
// A zero prev means there is no previous action.
func (s *Scorer) Score(a, prev levenshtein.Action) float64 {
	score := s.weights.Alpha*share(s.tables.Types[a.Type], s.totalTypes) +
		s.weights.Beta*share(s.tables.Detailed[a], s.totalDetailed)
	if !prev.IsZero() {
		score += s.weights.Gamma * share(s.tables.Context[Pair{Prev: prev, Next: a}], s.totalContext)
	}
	return score
}

// Rank returns at most limit candidates ordered by descending score.
// Candidates with equal scores keep their input order.
func (s *Scorer) Rank(candidates []levenshtein.Action, prev levenshtein.Action, limit int) []levenshtein.Action {
	type scored struct {
		action levenshtein.Action
		score  float64
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{action: c, score: s.Score(c, prev)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit < 0 {
		limit = 0
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]levenshtein.Action, len(ranked))
	for i, r := range ranked {
		out[i] = r.action
	}
	return out
}

// Stats reports the table sizes and totals.
func (s *Scorer) Stats() map[string]int {
	return map[string]int{
		"types":         len(s.tables.Types),
		"detailed":      len(s.tables.Detailed),
		"context":       len(s.tables.Context),
		"totalActions":  int(s.totalTypes),
		"totalContexts": int(s.totalContext),
	}
}

func share(count int64, total float64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / total
}
