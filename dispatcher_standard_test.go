package bollywood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardDispatcher_ParallelAcrossActors(t *testing.T) {
	sys := NewSystem()
	defer sys.Shutdown(time.Second)

	const actors = 8
	recs := make([]*recordingActor, actors)
	pids := make([]*PID, actors)
	for i := 0; i < actors; i++ {
		i := i
		recs[i] = newRecordingActor()
		pid, err := sys.ActorOf(NewProps(func() Actor { return recs[i] }), "")
		require.NoError(t, err)
		pids[i] = pid
	}
	for _, pid := range pids {
		pid.Tell("go")
	}
	for i, r := range recs {
		_ = i
		waitUntil(t, time.Second, func() bool { return r.count() >= 2 })
	}
	for _, r := range recs {
		msgs := r.snapshot()
		require.Len(t, msgs, 2)
		assert.Equal(t, "go", msgs[1])
	}
}

func TestStandardDispatcher_OneAtATimePerActor(t *testing.T) {
	sys := NewSystem()
	defer sys.Shutdown(time.Second)

	rec := newRecordingActor()
	pid, err := sys.ActorOf(NewProps(func() Actor { return rec }), "serial")
	require.NoError(t, err)
	waitUntil(t, time.Second, func() bool { return rec.count() >= 1 })

	const n = 200
	for i := 0; i < n; i++ {
		pid.Tell(i)
	}
	waitUntil(t, time.Second, func() bool { return rec.count() >= n+1 })

	msgs := rec.snapshot()[1:]
	for i, m := range msgs {
		assert.Equal(t, i, m, "messages from one sender must be processed in FIFO order")
	}
}

func TestPinnedDispatcher_BulkheadIsolation(t *testing.T) {
	sys := NewSystem(WithDispatcher("pinned", DispatcherConfig{
		Type:    PinnedDispatcher,
		Mailbox: DefaultMailboxConfig(),
	}))
	defer sys.Shutdown(time.Second)

	blockerStarted := make(chan struct{})
	unblock := make(chan struct{})
	blocker := Behavior(func(ctx Context) {
		if _, ok := ctx.Message().(string); ok {
			close(blockerStarted)
			<-unblock
		}
	})
	_, err := sys.ActorOf(NewProps(func() Actor { return behaviorActor{fn: blocker} }, WithDispatcherName("pinned")), "blocker")
	require.NoError(t, err)

	free := newRecordingActor()
	freePID, err := sys.ActorOf(NewProps(func() Actor { return free }, WithDispatcherName("pinned")), "free")
	require.NoError(t, err)
	waitUntil(t, time.Second, func() bool { return free.count() >= 1 })

	blockerPID := mustLookupUserChild(sys, "blocker")
	blockerPID.Tell("block")
	<-blockerStarted

	freePID.Tell("still responsive")
	waitUntil(t, time.Second, func() bool { return free.count() >= 2 })
	close(unblock)
}

func mustLookupUserChild(sys *ActorSystem, name string) *PID {
	return &PID{system: sys, path: sys.userPath + "/" + name}
}
