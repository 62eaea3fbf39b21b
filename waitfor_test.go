package bollywood

import (
	"testing"
	"time"
)

// waitUntil polls cond every 2ms until it returns true or timeout elapses,
// a bounded sleep-then-check loop rather than anything tied to the
// scheduler's own internals.
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met within %s", timeout)
	}
}
