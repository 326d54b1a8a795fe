// Package cli handles cmd line input and corrections for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/corrector"
)

var (
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
	printer      = message.NewPrinter(language.English)
)

// InputHandler reads one word per line and prints its correction with the
// ranked alternatives that passed the frequency filters.
type InputHandler struct {
	corrector     *corrector.Corrector
	in            *bufio.Reader
	out           io.Writer
	maxWordLength int
	requestCount  int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(c *corrector.Corrector, in io.Reader, out io.Writer, maxWordLength int) *InputHandler {
	return &InputHandler{
		corrector:     c,
		in:            bufio.NewReader(in),
		out:           out,
		maxWordLength: maxWordLength,
	}
}

// Start begins the interface loop.
// It prompts for input, reads a line and passes every word on it to
// handleInput. The loop ends cleanly at EOF.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "WordFix CLI")
	fmt.Fprintln(h.out, "type a word and press Enter to see the correction (Ctrl+D to exit):")

	for {
		fmt.Fprint(h.out, "> ")
		line, err := h.in.ReadString('\n')
		for _, word := range strings.Fields(line) {
			h.handleInput(word)
		}
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(h.out)
				log.Debugf("CLI closed after %d words", h.requestCount)
				return nil
			}
			return err
		}
	}
}

// handleInput corrects a single word and prints the result.
func (h *InputHandler) handleInput(word string) {
	h.requestCount++

	if !utils.IsValidInput(word, h.maxWordLength) {
		log.Errorf("Word too long or invalid: %s", word)
		return
	}

	start := time.Now()
	res := h.corrector.Correct(word)
	log.Debugf("Took [ %v ] for word '%s'", time.Since(start), word)

	if res.Changed {
		fmt.Fprintf(h.out, "%s -> %s\n", res.Original, changedStyle.Render(res.Corrected))
	} else {
		fmt.Fprintf(h.out, "%s (no change)\n", res.Original)
	}
	for i, s := range res.Suggestions {
		fmt.Fprintf(h.out, "%2d. %-30s (freq: %12s)\n", i+1, wordStyle.Render(s.Word), printer.Sprintf("%d", s.Frequency))
	}
}
