package daemon

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvReborn marks the process image started by Reexec. Its value is the run id.
const EnvReborn = "DAEMONPROBE_REBORN"

// IsReborn reports whether this process was started by Reexec and has not
// yet run its own Detach.
func IsReborn() bool {
	return os.Getenv(EnvReborn) != ""
}

// RunID returns the id shared by the launching and the reborn image.
// The launching image gets a fresh one.
func RunID() string {
	if id := os.Getenv(EnvReborn); id != "" {
		return id
	}
	return uuid.NewString()
}

// withRebirthMarker returns env without any previous marker, plus the
// marker carrying runID.
func withRebirthMarker(env []string, runID string) []string {
	out := make([]string, 0, len(env)+1)
	prefix := EnvReborn + "="
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, prefix+runID)
}

// clearRebirthMarker makes a later Detach in the same image spawn again.
func clearRebirthMarker() {
	os.Unsetenv(EnvReborn)
}
