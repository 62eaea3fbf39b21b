package bollywood

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no goroutine started by a test (worker pools, pinned
// per-cell goroutines, timers) is still running once the package's tests
// finish, the way go-supervise's own test suite does.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// time.AfterFunc's runtime timer goroutine is not ours to wait on.
		goleak.IgnoreTopFunction("time.goFunc"),
	)
}
