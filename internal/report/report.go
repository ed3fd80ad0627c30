// Package report prints what the probe observed: identifiers before and after
// detaching, the detach outcome, a timed counter and a completion line.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/mvp-joe/daemonprobe/internal/daemon"
	"github.com/sirupsen/logrus"
)

// Progress is notified while the counter runs.
type Progress interface {
	OnLoopStart(total int)
	OnTick(index int)
	OnLoopComplete()
}

// NoOpProgress ignores all notifications.
type NoOpProgress struct{}

func (NoOpProgress) OnLoopStart(int) {}
func (NoOpProgress) OnTick(int)      {}
func (NoOpProgress) OnLoopComplete() {}

// Reporter writes plain text lines to out.
type Reporter struct {
	out      io.Writer
	progress Progress
	logger   logrus.FieldLogger

	sleep func(time.Duration)
	now   func() time.Time
}

// NewReporter creates a Reporter. progress and logger may be nil.
func NewReporter(out io.Writer, progress Progress, logger logrus.FieldLogger) *Reporter {
	if progress == nil {
		progress = NoOpProgress{}
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Reporter{
		out:      out,
		progress: progress,
		logger:   logger,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Announce prints the identifiers seen before detaching.
func (r *Reporter) Announce(pid, ppid int) error {
	return r.printf("Daemonizing PID %d child of %d...\n", pid, ppid)
}

// Report prints the identifiers seen after detaching and the outcome.
func (r *Reporter) Report(pid, ppid int, outcome daemon.Outcome) error {
	return r.printf("This is daemon PID %d child of %d:\n"+
		"  Status:       %s\n"+
		"  Current path: %s\n",
		pid, ppid, outcome.StatusLabel(), outcome.WorkingDirectory)
}

// Count prints 0 through iterations-1, one per line, pausing interval after
// each line.
//
// time.Sleep is not cut short by signals, so the early wake-up warning only
// fires when the sleeper has been replaced with one that can return early.
func (r *Reporter) Count(iterations int, interval time.Duration) error {
	r.progress.OnLoopStart(iterations)

	for i := 0; i < iterations; i++ {
		if err := r.printf("%d\n", i); err != nil {
			return err
		}
		r.progress.OnTick(i)

		start := r.now()
		r.sleep(interval)
		if slept := r.now().Sub(start); slept < interval {
			r.logger.WithFields(logrus.Fields{
				"iteration": i,
				"requested": interval,
				"slept":     slept,
			}).Warn("Sleep returned early")
		}
	}

	r.progress.OnLoopComplete()
	return nil
}

// Done prints the completion line.
func (r *Reporter) Done() error {
	return r.printf("Done.\n")
}

func (r *Reporter) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
