package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/anagrams/internal/utils"
	"github.com/bastiangx/anagrams/pkg/anagram"
	"github.com/charmbracelet/lipgloss"
)

// Renderer prints combinations one per line and a closing summary.
type Renderer struct {
	out     io.Writer
	color   bool
	word    lipgloss.Style
	sep     lipgloss.Style
	summary lipgloss.Style

	mu    sync.Mutex
	count int
}

// NewRenderer creates a renderer writing to w. Styling is only applied when
// color is set and w supports it.
func NewRenderer(w io.Writer, color bool) *Renderer {
	re := lipgloss.NewRenderer(w)
	return &Renderer{
		out:     w,
		color:   color,
		word:    re.NewStyle().Foreground(lipgloss.Color("75")),
		sep:     re.NewStyle().Foreground(lipgloss.Color("240")),
		summary: re.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// Combination writes c as its words joined by a space. It is safe to use
// directly as a subscriber.
func (r *Renderer) Combination(c anagram.Combination) {
	line := strings.Join(c, " ")
	if r.color {
		styled := make([]string, len(c))
		for i, w := range c {
			styled[i] = r.word.Render(w)
		}
		line = strings.Join(styled, r.sep.Render(" "))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	fmt.Fprintln(r.out, line)
}

// Count is the number of combinations written so far.
func (r *Renderer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Summary writes the totals of a run followed by the execution time.
func (r *Renderer) Summary(st anagram.Stats, elapsed time.Duration) {
	text := fmt.Sprintf("%s combinations from %s words (%s rejected, %s segments)",
		utils.FormatWithCommas(r.Count()),
		utils.FormatWithCommas(st.WordsSeen),
		utils.FormatWithCommas(st.WordsRejected),
		utils.FormatWithCommas(st.SingleWordSegments+st.JoinedSegments),
	)
	timing := fmt.Sprintf("Execution time: %.3f seconds", elapsed.Seconds())
	if r.color {
		text = r.summary.Render(text)
		timing = r.summary.Render(timing)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, text)
	fmt.Fprintln(r.out, timing)
}
