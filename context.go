package bollywood

import "time"

// Context is the capability set an Actor receives while handling exactly
// one message. Everything it exposes is only valid for the duration of the
// Receive call it was passed to.
type Context interface {
	// System returns the ActorSystem this actor runs under.
	System() *ActorSystem
	// Self returns the PID of the actor processing the message.
	Self() *PID
	// Parent returns the PID of this actor's supervisor, or nil for the
	// guardian actors.
	Parent() *PID
	// Sender returns the PID that sent the current message, or nil if it
	// was sent without one (e.g. from outside the actor system).
	Sender() *PID
	// Message returns the message currently being processed.
	Message() interface{}
	// Children returns the PIDs of this actor's live children, in the
	// order they were spawned.
	Children() []*PID

	// Spawn creates a child of the actor processing the message. name must
	// be unique among this actor's current children.
	Spawn(props *Props, name string) (*PID, error)
	// Stop sends ref's actor a terminate system message directly; its
	// supervisor learns of the stop through the usual child-terminated
	// notification.
	Stop(ref *PID)
	// Watch subscribes Self to ref's termination; idempotent.
	Watch(ref *PID)
	// Unwatch cancels a prior Watch; idempotent.
	Unwatch(ref *PID)

	// Tell is a fire-and-forget send from this actor to ref, recording
	// Self as the sender.
	Tell(ref *PID, message interface{})
	// Forward re-sends the message currently being processed to ref,
	// preserving the original sender rather than substituting Self.
	Forward(ref *PID)

	// Become pushes behavior onto the hotswap stack. When discardOld is
	// true the previous top frame is replaced rather than kept beneath it.
	Become(behavior Behavior, discardOld bool)
	// Unbecome pops the hotswap stack, reverting to the previous behavior.
	// Popping past the original instance behavior is a no-op.
	Unbecome()

	// SetReceiveTimeout arms a one-shot idle timer: if the user mailbox is
	// empty for d, a ReceiveTimeout message is delivered. Any user message
	// arriving before then cancels it. d <= 0 disables the timer.
	SetReceiveTimeout(d time.Duration)
}
