package evaluate

import (
	"github.com/charmbracelet/log"
	"github.com/sajari/fuzzy"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

// Baseline is a symmetric-delete spelling model trained on the same
// dictionary, used as a point of comparison.
type Baseline struct {
	model  *fuzzy.Model
	script utils.Script
}

// NewBaseline trains a model on every dictionary word accepted by script.
// depth is the maximum edit distance the model searches.
func NewBaseline(dict *dictionary.Dictionary, script utils.Script, depth int) *Baseline {
	model := fuzzy.NewModel()
	model.SetDepth(depth)
	model.SetThreshold(1)
	model.SetUseAutocomplete(false)

	trained := 0
	dict.Each(func(word string, freq int64) error {
		if !script.Accepts(word) {
			return nil
		}
		model.SetCount(word, int(freq), true)
		trained++
		return nil
	})
	log.Debugf("Baseline model trained on %d words", trained)
	return &Baseline{model: model, script: script}
}

// Correct returns the model's top suggestion, or word when there is none.
func (b *Baseline) Correct(word string) string {
	if !b.script.Accepts(word) {
		return word
	}
	if s := b.model.SpellCheckSuggestions(word, 1); len(s) > 0 && s[0] != "" {
		return s[0]
	}
	return word
}

// Predict corrects every word.
func (b *Baseline) Predict(words []string) []dataset.Prediction {
	out := make([]dataset.Prediction, len(words))
	for i, w := range words {
		out[i] = dataset.Prediction{ID: w, Predicted: b.Correct(w)}
	}
	return out
}
