// Package progress reports model traversal progress on stderr.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/metron-dev/metron/pkg/model"
)

// Tracker wraps a progress bar sized to the number of model nodes a
// walk will visit. It implements model.Listener: each completed node
// advances the bar.
type Tracker struct {
	bar *progressbar.ProgressBar
}

var _ model.Listener = (*Tracker)(nil)

// NewTracker creates a progress bar with the given label and total
// node count.
func NewTracker(label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar}
}

// Enter implements model.Listener.
func (t *Tracker) Enter(model.Node) {}

// Leave implements model.Listener. Safe for concurrent use across
// analyzers sharing one tracker.
func (t *Tracker) Leave(model.Node) {
	t.bar.Add(1)
}

// Finish clears the bar completely.
func (t *Tracker) Finish() {
	t.bar.Finish()
	t.bar.Clear()
}
