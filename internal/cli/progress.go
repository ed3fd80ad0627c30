package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter draws the counter as a progress bar.
type CLIProgressReporter struct {
	quiet bool
	out   io.Writer
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a progress reporter writing to out.
func NewCLIProgressReporter(quiet bool, out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		out:   out,
	}
}

func (c *CLIProgressReporter) OnLoopStart(total int) {
	if c.quiet || total <= 0 {
		return
	}

	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Counting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnTick(index int) {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnLoopComplete() {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Finish()
	c.bar = nil
}
