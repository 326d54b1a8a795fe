package evaluate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

var labels = Labels([]dataset.Pair{
	{Observed: "кат", Expected: "кот"},
	{Observed: "малоко", Expected: "молоко"},
	{Observed: "кит", Expected: "кит"},
})

func TestMeanDistance(t *testing.T) {
	testCases := []struct {
		description string
		preds       []dataset.Prediction
		expected    float64
	}{
		{"perfect", []dataset.Prediction{{ID: "кат", Predicted: "кот"}, {ID: "кит", Predicted: "кит"}}, 0},
		{"one miss", []dataset.Prediction{{ID: "кат", Predicted: "кат"}, {ID: "кит", Predicted: "кит"}}, 0.5},
		{"wrong fix", []dataset.Prediction{{ID: "малоко", Predicted: "мало"}}, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := MeanDistance(labels, tc.preds)
			if err != nil {
				t.Fatalf("MeanDistance() error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("MeanDistance() = %v; want %v", got, tc.expected)
			}
		})
	}
}

func TestMeanDistanceErrors(t *testing.T) {
	if _, err := MeanDistance(labels, nil); !errors.Is(err, ErrNoRows) {
		t.Errorf("MeanDistance(nil) error = %v; want ErrNoRows", err)
	}
	_, err := MeanDistance(labels, []dataset.Prediction{{ID: "пёс", Predicted: "пёс"}})
	if err == nil || !strings.Contains(err.Error(), "пёс") {
		t.Errorf("MeanDistance() with an unlabeled id error = %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	words := []string{"кат", "малоко", "кит"}
	preds := []dataset.Prediction{
		{ID: "кат", Predicted: "кот"},
		{ID: "малоко", Predicted: "молоко"},
		{ID: "кит", Predicted: "кит"},
	}
	r, err := Evaluate(labels, NoFix(words), preds)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	want := Report{NoFix: 2.0 / 3.0, Prediction: 0}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(r.String(), "No fix score: ") || strings.Contains(r.String(), "Baseline") {
		t.Errorf("String() = %q", r.String())
	}
	r.Baseline, r.HasBaseline = 0.5, true
	if !strings.Contains(r.String(), "Baseline score: 0.5") {
		t.Errorf("String() = %q; want a baseline line", r.String())
	}
}

func TestBaseline(t *testing.T) {
	d := dictionary.New()
	d.Set("кот", 100)
	d.Set("кит", 30)
	d.Set("cat", 10)
	b := NewBaseline(d, utils.ScriptRussian, 2)

	if got := b.Correct("кат"); got != "кот" && got != "кит" {
		t.Errorf("Correct(кат) = %q; want a dictionary neighbour", got)
	}
	if got := b.Correct("cot"); got != "cot" {
		t.Errorf("Correct(cot) = %q; other scripts pass through", got)
	}
	if got := b.Correct("жжжжжж"); got != "жжжжжж" {
		t.Errorf("Correct(жжжжжж) = %q; want it unchanged", got)
	}

	preds := b.Predict([]string{"cot", "жжжжжж"})
	want := []dataset.Prediction{{ID: "cot", Predicted: "cot"}, {ID: "жжжжжж", Predicted: "жжжжжж"}}
	if diff := cmp.Diff(want, preds); diff != "" {
		t.Errorf("Predict() mismatch (-want +got):\n%s", diff)
	}
}
