package bollywood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replyingActor answers a replyRequest with its value, addressed to
// whichever sender the envelope carries.
type replyingActor struct{}

func (a *replyingActor) Receive(ctx Context) {
	if rr, ok := ctx.Message().(replyRequest); ok && ctx.Sender() != nil {
		ctx.Tell(ctx.Sender(), rr.value)
	}
}

type replyRequest struct{ value string }

// TestInterrupt_SurvivesInterleavedWithReplies mirrors the interleaved-
// Interrupt scenario: Interrupt envelopes sent in between ordinary request
// messages must not suspend or destroy the actor, each produces an
// ActorInterruptedError delivered back to its sender, and every ordinary
// request still gets its expected reply, in order.
func TestInterrupt_SurvivesInterleavedWithReplies(t *testing.T) {
	sys := NewSystem()
	defer sys.Shutdown(time.Second)

	target, err := sys.ActorOf(NewProps(func() Actor { return &replyingActor{} }), "replier")
	require.NoError(t, err)

	observer := newRecordingActor()
	observerPID, err := sys.ActorOf(NewProps(func() Actor { return observer }), "observer")
	require.NoError(t, err)
	waitUntil(t, time.Second, func() bool { return observer.count() >= 1 }) // Started

	target.TellFrom(replyRequest{"foo"}, observerPID)
	target.TellFrom(Interrupt{}, observerPID)
	target.TellFrom(replyRequest{"bar"}, observerPID)
	target.TellFrom(Interrupt{}, observerPID)
	target.TellFrom(replyRequest{"baz"}, observerPID)

	waitUntil(t, time.Second, func() bool { return observer.count() >= 6 }) // Started + 5 replies

	msgs := observer.snapshot()[1:]
	require.Len(t, msgs, 5)
	assert.Equal(t, "foo", msgs[0])
	interrupted1, ok := msgs[1].(*ActorInterruptedError)
	require.True(t, ok, "expected *ActorInterruptedError, got %T", msgs[1])
	assert.Equal(t, target.Path(), interrupted1.PID)
	assert.Equal(t, "bar", msgs[2])
	interrupted2, ok := msgs[3].(*ActorInterruptedError)
	require.True(t, ok, "expected *ActorInterruptedError, got %T", msgs[3])
	assert.Equal(t, target.Path(), interrupted2.PID)
	assert.Equal(t, "baz", msgs[4])

	// The actor itself was never suspended by the interrupts: a plain ping
	// right after still gets answered.
	target.TellFrom(replyRequest{"qux"}, observerPID)
	waitUntil(t, time.Second, func() bool { return observer.count() >= 7 })
	assert.Equal(t, "qux", observer.snapshot()[6])
}
