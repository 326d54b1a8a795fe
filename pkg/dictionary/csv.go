package dictionary

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dataset"
)

// ReadCSV reads a table with Id (word) and Freq (count) columns. Rows with a
// malformed count are logged and skipped. Later rows override earlier ones.
func ReadCSV(r io.Reader, keep Filter) (*Dictionary, error) {
	d := New()
	skipped := 0
	err := dataset.Each(r, []string{dataset.ColumnID, dataset.ColumnFreq}, func(v []string) error {
		word := utils.NormalizeWord(v[0])
		if word == "" || (keep != nil && !keep(word)) {
			skipped++
			return nil
		}
		freq, err := strconv.ParseInt(strings.TrimSpace(v[1]), 10, 64)
		if err != nil || freq < 0 {
			log.Warnf("Skipping %q: bad frequency %q", word, v[1])
			skipped++
			return nil
		}
		d.Set(word, freq)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	log.Debugf("Dictionary loaded: %d words, %d rows skipped", d.Len(), skipped)
	return d, nil
}

// LoadCSV reads the dictionary table at path.
func LoadCSV(path string, keep Filter) (*Dictionary, error) {
	var d *Dictionary
	err := dataset.OpenFunc(path, func(r io.Reader) error {
		var err error
		d, err = ReadCSV(r, keep)
		return err
	})
	return d, err
}
