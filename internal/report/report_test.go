package report

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mvp-joe/daemonprobe/internal/daemon"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Reporter:
// - Announce and Report match the documented wording
// - Count prints 0..n-1 ascending, one per line
// - Count sleeps n times for the full interval
// - Count with real sleeps takes about n x interval
// - Early wake-ups of an injected sleeper are logged; time.Sleep never triggers it
// - Progress receives start, every tick and completion
// - Write failures are returned

type recordingProgress struct {
	total    int
	ticks    []int
	complete bool
}

func (p *recordingProgress) OnLoopStart(total int) { p.total = total }
func (p *recordingProgress) OnTick(index int)      { p.ticks = append(p.ticks, index) }
func (p *recordingProgress) OnLoopComplete()       { p.complete = true }

// fakeClock advances only when sleep is called.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
	short  time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d - c.short)
}

func newTestReporter(out *bytes.Buffer, progress Progress, clock *fakeClock) *Reporter {
	r := NewReporter(out, progress, nil)
	r.sleep = clock.Sleep
	r.now = clock.Now
	return r
}

func TestAnnounce(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewReporter(&out, nil, nil)

	require.NoError(t, r.Announce(4242, 17))

	assert.Equal(t, "Daemonizing PID 4242 child of 17...\n", out.String())
}

func TestReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome daemon.Outcome
		want    string
	}{
		{
			name:    "success",
			outcome: daemon.Outcome{Succeeded: true, WorkingDirectory: "/home/probe"},
			want: "This is daemon PID 10 child of 1:\n" +
				"  Status:       success\n" +
				"  Current path: /home/probe\n",
		},
		{
			name:    "failure",
			outcome: daemon.Outcome{Succeeded: false, WorkingDirectory: "/"},
			want: "This is daemon PID 10 child of 1:\n" +
				"  Status:       FAILURE\n" +
				"  Current path: /\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			r := NewReporter(&out, nil, nil)

			require.NoError(t, r.Report(10, 1, tt.outcome))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestCount_PrintsZeroThroughNine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	clock := &fakeClock{now: time.Unix(0, 0)}
	r := newTestReporter(&out, nil, clock)

	require.NoError(t, r.Count(10, 500*time.Millisecond))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	for i, line := range lines {
		assert.Equal(t, strconv.Itoa(i), line)
	}
}

func TestCount_SleepsFullInterval(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	start := time.Unix(0, 0)
	clock := &fakeClock{now: start}
	r := newTestReporter(&out, nil, clock)

	require.NoError(t, r.Count(10, 500*time.Millisecond))

	require.Len(t, clock.sleeps, 10)
	for _, d := range clock.sleeps {
		assert.Equal(t, 500*time.Millisecond, d)
	}
	assert.Equal(t, 5*time.Second, clock.now.Sub(start))
}

func TestCount_RealTimer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger, hook := test.NewNullLogger()
	r := NewReporter(&out, nil, logger)

	start := time.Now()
	require.NoError(t, r.Count(10, 20*time.Millisecond))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Empty(t, hook.AllEntries(), "time.Sleep never returns early")
}

func TestCount_ZeroIterations(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	progress := &recordingProgress{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	r := newTestReporter(&out, progress, clock)

	require.NoError(t, r.Count(0, time.Second))

	assert.Empty(t, out.String())
	assert.Empty(t, clock.sleeps)
	assert.True(t, progress.complete)
}

func TestCount_LogsEarlyWakeUp(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	var out bytes.Buffer
	clock := &fakeClock{now: time.Unix(0, 0), short: 100 * time.Millisecond}

	r := NewReporter(&out, nil, logger)
	r.sleep = clock.Sleep
	r.now = clock.Now

	require.NoError(t, r.Count(3, 500*time.Millisecond))

	require.Len(t, hook.AllEntries(), 3)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Sleep returned early", entry.Message)
	assert.Equal(t, 400*time.Millisecond, entry.Data["slept"])
}

func TestCount_NotifiesProgress(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	progress := &recordingProgress{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	r := newTestReporter(&out, progress, clock)

	require.NoError(t, r.Count(4, time.Millisecond))

	assert.Equal(t, 4, progress.total)
	assert.Equal(t, []int{0, 1, 2, 3}, progress.ticks)
	assert.True(t, progress.complete)
}

func TestDone(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := NewReporter(&out, nil, nil)

	require.NoError(t, r.Done())
	assert.Equal(t, "Done.\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestReporter_WriteFailure(t *testing.T) {
	t.Parallel()

	r := NewReporter(failingWriter{}, nil, nil)

	err := r.Announce(1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
	assert.Contains(t, err.Error(), "broken pipe")

	assert.Error(t, r.Count(1, 0))
	assert.Error(t, r.Done())
}
