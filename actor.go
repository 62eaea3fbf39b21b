package bollywood

// Actor is the behavior a cell drives: a partial function from message to
// effect, invoked once per envelope, never concurrently with itself.
type Actor interface {
	// Receive processes one message. ctx exposes the message, its sender,
	// Self, and the capabilities (spawn, watch, become, stop) available
	// while handling it; ctx is not valid after Receive returns.
	Receive(ctx Context)
}

// Behavior is a standalone receive function, used with Context.Become to
// push an alternate behavior onto an actor's hotswap stack without
// defining a whole new Actor type.
type Behavior func(ctx Context)

// behaviorActor adapts a bare Behavior func to the Actor interface so the
// hotswap stack (cell.behaviors) can hold a uniform []Actor regardless of
// whether a frame came from the original instance or a pushed Behavior.
type behaviorActor struct {
	fn Behavior
}

func (b behaviorActor) Receive(ctx Context) { b.fn(ctx) }

// Producer constructs a new Actor instance. It is invoked once for an
// actor's initial incarnation and again on every supervised restart, so it
// must be a pure factory with no shared mutable closure state between
// incarnations beyond what is intentionally meant to survive a restart.
type Producer func() Actor
