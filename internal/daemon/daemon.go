// Package daemon detaches the running process from its controlling terminal
// and reports how that went.
//
// # Core Components
//
// 1. Detacher
//   - Runs the platform primitive once, then applies the chdir and stream
//     options in daemon(3) order
//   - Never returns an error: every failure collapses into Outcome.Succeeded
//
// 2. Primitive (Reexec)
//   - Go cannot fork a running runtime, so the process image is replaced by
//     re-executing the same binary with the same argv and environment in a
//     new session
//   - The launching image exits with status 0 once the child is started
//   - The child carries DAEMONPROBE_REBORN=<run id> and, on its own Detach
//     call, only verifies that it leads its session
//
// # Usage Pattern
//
//	runID := daemon.RunID()
//	cfg, err := daemon.DefaultReexecConfig(runID)
//	if err != nil {
//	    return err
//	}
//	d := daemon.NewDetacher(daemon.NewReexec(cfg, logger), logger)
//
//	if !daemon.IsReborn() {
//	    fmt.Printf("Daemonizing PID %d child of %d...\n", os.Getpid(), os.Getppid())
//	}
//	outcome := d.Detach(true, true) // the launching image exits in here
//
// Code before the Detach call runs twice, once per image. Anything that must
// happen only once before detaching has to check IsReborn.
package daemon
