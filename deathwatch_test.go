package bollywood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeathWatch_TerminatedDeliveredAfterStop(t *testing.T) {
	sys := NewSystem()
	defer sys.Shutdown(time.Second)

	target := newRecordingActor()
	targetPID, err := sys.ActorOf(NewProps(func() Actor { return target }), "watched")
	require.NoError(t, err)
	waitUntil(t, time.Second, func() bool { return target.count() >= 1 })

	watcher := newRecordingActor()
	var watcherPID *PID
	watchBehavior := Behavior(func(ctx Context) {
		if _, ok := ctx.Message().(Started); ok {
			ctx.Watch(targetPID)
		}
	})
	watcherPID, err = sys.ActorOf(NewProps(func() Actor {
		return behaviorActor{fn: func(ctx Context) {
			watchBehavior(ctx)
			watcher.Receive(ctx)
		}}
	}), "watcher")
	require.NoError(t, err)
	_ = watcherPID
	waitUntil(t, time.Second, func() bool { return watcher.count() >= 1 })

	sys.deliverSystem(targetPID, sysTerminate{}, nil)

	waitUntil(t, time.Second, func() bool {
		for _, m := range watcher.snapshot() {
			if term, ok := m.(Terminated); ok && term.Who.Equals(targetPID) {
				return true
			}
		}
		return false
	})
}

func TestDeathWatch_WatchingAlreadyDeadTargetDeliversImmediately(t *testing.T) {
	sys := NewSystem()
	defer sys.Shutdown(time.Second)

	target := newRecordingActor()
	targetPID, err := sys.ActorOf(NewProps(func() Actor { return target }), "gone-already")
	require.NoError(t, err)
	waitUntil(t, time.Second, func() bool { return target.count() >= 1 })
	sys.deliverSystem(targetPID, sysTerminate{}, nil)
	waitUntil(t, time.Second, func() bool { return sys.lookup(targetPID.Path()) == nil })

	watcher := newRecordingActor()
	watchBehavior := Behavior(func(ctx Context) {
		if _, ok := ctx.Message().(Started); ok {
			ctx.Watch(targetPID)
		}
	})
	_, err = sys.ActorOf(NewProps(func() Actor {
		return behaviorActor{fn: func(ctx Context) {
			watchBehavior(ctx)
			watcher.Receive(ctx)
		}}
	}), "late-watcher")
	require.NoError(t, err)

	waitUntil(t, time.Second, func() bool {
		for _, m := range watcher.snapshot() {
			if term, ok := m.(Terminated); ok && term.Who.Equals(targetPID) {
				return true
			}
		}
		return false
	})
}
