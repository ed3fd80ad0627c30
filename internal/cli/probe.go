package cli

import (
	"fmt"

	"github.com/mvp-joe/daemonprobe/internal/config"
	"github.com/mvp-joe/daemonprobe/internal/daemon"
	"github.com/mvp-joe/daemonprobe/internal/procinfo"
	"github.com/mvp-joe/daemonprobe/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newPrimitive builds the platform detach primitive. beforeExit runs when the
// launching image exits inside Detach. Tests replace it to force the outcome.
var newPrimitive = func(runID string, logger logrus.FieldLogger, beforeExit func()) (daemon.Primitive, error) {
	cfg, err := daemon.DefaultReexecConfig(runID)
	if err != nil {
		return nil, err
	}
	r := daemon.NewReexec(cfg, logger)
	r.BeforeExit(beforeExit)
	return r, nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile, cmd.Flags()).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Both read before Detach clears the rebirth marker.
	runID := daemon.RunID()
	reborn := daemon.IsReborn()

	stderr := lazyWriter(cmd.ErrOrStderr)

	logger, closeLog, err := newLogger(cfg.Log, verbose, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	log := logger.WithFields(logrus.Fields{
		"run_id": runID,
		"pid":    procinfo.PID(),
	})

	primitive, err := newPrimitive(runID, log, closeLog)
	if err != nil {
		return fmt.Errorf("failed to set up detach: %w", err)
	}

	progress := NewCLIProgressReporter(!cfg.Progress, stderr)

	if !reborn {
		log.WithField("ppid", procinfo.PPID()).Debug("Detaching")
		announcer := report.NewReporter(cmd.OutOrStdout(), nil, log)
		if err := announcer.Announce(procinfo.PID(), procinfo.PPID()); err != nil {
			return err
		}
	}

	outcome := daemon.NewDetacher(primitive, log).Detach(cfg.Detach.NoChdir, cfg.Detach.NoClose)

	snap, err := procinfo.Take(cmd.Context())
	entry := log.WithFields(logrus.Fields{
		"succeeded":   outcome.Succeeded,
		"working_dir": outcome.WorkingDirectory,
		"ppid":        snap.PPID,
		"rss_bytes":   snap.RSS,
		"parent":      snap.ParentName,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug("Detach finished")

	// Streams may have been redirected; look the writer up again.
	reporter := report.NewReporter(cmd.OutOrStdout(), progress, log)

	if err := reporter.Report(procinfo.PID(), procinfo.PPID(), outcome); err != nil {
		return err
	}
	if err := reporter.Count(cfg.Loop.Iterations, cfg.Loop.Interval); err != nil {
		return err
	}
	return reporter.Done()
}
