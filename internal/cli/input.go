// Package cli holds the terminal side of the anagrams binary: printing
// combinations and an interactive loop for feeding words by hand.
package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/anagrams/internal/utils"
	"github.com/bastiangx/anagrams/pkg/anagram"
	"github.com/charmbracelet/log"
)

// InputHandler reads words from a terminal and feeds them to a stream,
// printing every combination they complete.
type InputHandler struct {
	stream   anagram.Stream
	renderer *Renderer
	in       io.Reader
	lines    int
}

// NewInputHandler creates an input handler reading lines from in.
func NewInputHandler(stream anagram.Stream, renderer *Renderer, in io.Reader) *InputHandler {
	return &InputHandler{
		stream:   stream,
		renderer: renderer,
		in:       in,
	}
}

// Start runs the input loop until the input ends or ctx is cancelled. Each
// line may hold several words separated by spaces, commas or semicolons.
// A line of ":stats" prints the counters so far.
func (h *InputHandler) Start(ctx context.Context) error {
	sub := h.stream.Subscribe(h.renderer.Combination)
	defer sub.Unsubscribe()

	log.Print("Anagrams CLI")
	log.Print("type words and press Enter to feed them (Ctrl+D to finish):")

	done := make(chan struct{})
	defer close(done)
	lines, errc := h.readLines(done)

	for {
		log.Print("> ")
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			return <-errc
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// readLines scans the input on its own goroutine so that Start can stop on
// cancellation while the terminal is idle. lines is closed when the input
// ends; errc then holds the scan error, if any.
func (h *InputHandler) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func (h *InputHandler) handleInput(line string) {
	h.lines++
	if line == ":stats" {
		st := h.stream.Stats()
		log.Info("Stats",
			"words", st.WordsSeen,
			"rejected", st.WordsRejected,
			"segments", st.SingleWordSegments+st.JoinedSegments,
			"combinations", st.Combinations)
		return
	}

	words := utils.SplitWords(line)
	before := h.renderer.Count()
	start := time.Now()
	for _, w := range words {
		h.stream.ProcessWord(w)
	}
	log.Debugf("Took %v for %d words", time.Since(start), len(words))

	if found := h.renderer.Count() - before; found == 0 {
		log.Debug("No new combinations", "line", h.lines)
	}
}
