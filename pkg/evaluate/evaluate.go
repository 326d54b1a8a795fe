// Package evaluate scores predictions against labeled data by the mean edit
// distance between each prediction and its expected word.
package evaluate

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/levenshtein"
)

// ErrNoRows is returned when there is nothing to score.
var ErrNoRows = errors.New("no predictions to score")

// Labels indexes training pairs by observed word. Later pairs win.
func Labels(pairs []dataset.Pair) map[string]string {
	labels := make(map[string]string, len(pairs))
	for _, p := range pairs {
		labels[p.Observed] = p.Expected
	}
	return labels
}

// MeanDistance returns the average distance between the label of each
// prediction's Id and its Predicted value. Every Id must have a label.
func MeanDistance(labels map[string]string, preds []dataset.Prediction) (float64, error) {
	if len(preds) == 0 {
		return 0, ErrNoRows
	}
	var sum int
	for _, p := range preds {
		expected, ok := labels[p.ID]
		if !ok {
			return 0, fmt.Errorf("no label for %q", p.ID)
		}
		sum += levenshtein.Calculate(expected, p.Predicted).Distance
	}
	return float64(sum) / float64(len(preds)), nil
}

// Report holds the scores printed by the evaluation command.
type Report struct {
	NoFix      float64
	Prediction float64
	Baseline   float64
	// HasBaseline is false when no baseline model was run.
	HasBaseline bool
}

func (r Report) String() string {
	s := fmt.Sprintf("No fix score: %v\nPrediction score: %v", r.NoFix, r.Prediction)
	if r.HasBaseline {
		s += fmt.Sprintf("\nBaseline score: %v", r.Baseline)
	}
	return s
}

// Evaluate scores the no-fix and prediction tables against labels.
func Evaluate(labels map[string]string, noFix, predictions []dataset.Prediction) (Report, error) {
	var r Report
	var err error
	if r.NoFix, err = MeanDistance(labels, noFix); err != nil {
		return r, fmt.Errorf("no-fix table: %w", err)
	}
	if r.Prediction, err = MeanDistance(labels, predictions); err != nil {
		return r, fmt.Errorf("prediction table: %w", err)
	}
	return r, nil
}

// NoFix returns predictions that leave every word as it is.
func NoFix(words []string) []dataset.Prediction {
	out := make([]dataset.Prediction, len(words))
	for i, w := range words {
		out[i] = dataset.Prediction{ID: w, Predicted: w}
	}
	return out
}
