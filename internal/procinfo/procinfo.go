// Package procinfo reads identifiers and resource usage of the running process.
//
// Nothing here is cached: detaching changes the process image and its parent,
// so every value is read from the operating system when asked for.
package procinfo

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// PID returns the current process id.
func PID() int {
	return os.Getpid()
}

// PPID returns the current parent process id.
func PPID() int {
	return os.Getppid()
}

// Snapshot is a point-in-time view of the running process.
type Snapshot struct {
	PID        int
	PPID       int
	RSS        uint64 // resident set size in bytes, 0 when unavailable
	ParentName string // empty when unavailable
}

// Take reads a Snapshot. PID and PPID are always set; the resource fields are
// best effort and the returned error describes the first one that failed.
func Take(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{PID: PID(), PPID: PPID()}

	proc, err := process.NewProcessWithContext(ctx, int32(snap.PID))
	if err != nil {
		return snap, fmt.Errorf("failed to open process %d: %w", snap.PID, err)
	}

	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to read memory info: %w", err)
	}
	snap.RSS = mem.RSS

	parent, err := process.NewProcessWithContext(ctx, int32(snap.PPID))
	if err != nil {
		return snap, fmt.Errorf("failed to open parent process %d: %w", snap.PPID, err)
	}
	name, err := parent.NameWithContext(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to read parent name: %w", err)
	}
	snap.ParentName = name

	return snap, nil
}
