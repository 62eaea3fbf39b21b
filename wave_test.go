package bollywood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestWaveOfChildren_SpawnAndStopCleanly exercises spec.md's "wave of
// children" scenario at a scale a test suite can run in well under a
// second rather than literally 50,000: what's under test is that a parent
// with many children, stopped all at once, fans the Terminate out, waits
// for every child's sysChildTerminated, and finalizes exactly once - a
// count-dependent bug (off-by-one in the remaining-children tally, a
// double-finalize) would misbehave identically at 500 children as at
// 50,000.
func TestWaveOfChildren_SpawnAndStopCleanly(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("time.goFunc"))

	sys := NewSystem()

	const waveSize = 500
	parentDone := make(chan struct{})
	spawned := make(chan struct{}, waveSize)
	parentBehavior := Behavior(func(ctx Context) {
		switch ctx.Message().(type) {
		case Started:
			for i := 0; i < waveSize; i++ {
				_, err := ctx.Spawn(NewProps(func() Actor { return newRecordingActor() }), "")
				require.NoError(t, err)
				spawned <- struct{}{}
			}
		case Stopped:
			close(parentDone)
		}
	})
	parentPID, err := sys.ActorOf(NewProps(func() Actor { return behaviorActor{fn: parentBehavior} }), "wave-parent")
	require.NoError(t, err)

	for i := 0; i < waveSize; i++ {
		<-spawned
	}
	waitUntil(t, 2*time.Second, func() bool { return len(parentPID.cellOf().childrenSnapshot()) == waveSize })

	sys.deliverSystem(parentPID, sysTerminate{}, nil)

	select {
	case <-parentDone:
	case <-time.After(5 * time.Second):
		t.Fatal("parent did not finish stopping its wave of children in time")
	}
	assert.Nil(t, sys.lookup(parentPID.Path()), "parent must be deregistered once its Stopped hook runs")

	sys.Shutdown(2 * time.Second)
}
