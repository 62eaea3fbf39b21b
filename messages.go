package bollywood

// --- User-visible lifecycle & notification messages ---
//
// These are ordinary messages delivered through Actor.Receive like any
// other; they are distinguished only by being originated by the runtime
// itself rather than application code.

// Started is delivered after each incarnation of an actor is constructed
// (the first one and every restart) and before any other user message to
// that incarnation.
type Started struct{}

// Stopping is delivered when a cell begins its termination sequence, before
// its children are asked to stop and before Stopped.
type Stopping struct{}

// Stopped is the final message an actor instance ever receives; delivered
// after all of its children have confirmed termination.
type Stopped struct{}

// Restarting is delivered to the failing instance immediately before it is
// discarded and replaced by a freshly produced one (see PreRestart/
// PostRestart hooks on RestartAware).
type Restarting struct{ Cause interface{} }

// ReceiveTimeout is delivered when a cell's configured receive-timeout
// fires because no user message arrived in time. Any subsequently arriving
// user message cancels the pending timer before this is ever seen again.
type ReceiveTimeout struct{}

// Interrupt is an envelope that preempts the actor's own behavior rather
// than being handed to it: a cell that dequeues an Interrupt never calls
// Receive for it. It publishes a Warning carrying an ActorInterruptedError
// and, if the interrupt had a sender, replies to that sender with the same
// error - modeling a worker thread's InterruptedException without
// destroying the actor or its mailbox, so ordinary messages queued behind
// or ahead of it are unaffected.
type Interrupt struct{}

// Terminated is delivered, as a user message, to every watcher of an actor
// once that actor has fully stopped. Receiving it for a subject that was
// never watched (e.g. a watch raced a termination) is not an error - it is
// simply handed to Receive like anything else.
type Terminated struct {
	Who *PID
}

// DeadLetter wraps any message the runtime could not deliver: sent to a
// terminated, unknown, or (for a bounded mailbox) momentarily full target.
type DeadLetter struct {
	Message   interface{}
	Sender    *PID
	Recipient *PID
}

// RestartAware is implemented by actors that want pre/post-restart hooks.
// Both are optional; an actor that doesn't implement this interface is
// simply discarded and re-produced across a restart with no hook calls.
type RestartAware interface {
	PreRestart(cause interface{}, lastMessage interface{})
	PostRestart(cause interface{})
}

// PostStopAware is implemented by actors that need cleanup when they stop,
// independent of whether the stop was graceful or supervised.
type PostStopAware interface {
	PostStop()
}

// --- System messages ---
//
// System messages are the control-plane protocol described in spec.md S4.3
// and S9 ("System messages as a protocol"): a small closed set of tagged
// variants, processed strictly before user messages within a mailbox run,
// and never silently dropped. Each value is single-use: it is constructed
// fresh for exactly one send and must never be shared between cells.

type sysMessage interface {
	isSystemMessage()
}

type sysCreate struct{}

func (sysCreate) isSystemMessage() {}

// sysRecreate instructs a cell to discard its current actor instance and
// produce a fresh one, carrying the failure that triggered the restart.
type sysRecreate struct {
	cause interface{}
}

func (sysRecreate) isSystemMessage() {}

// Suspend and resume are not queued as system messages: a panic must stop
// further user-message processing within the very Run() call that observed
// it, so cell and ActorSystem call mailbox.Suspend/Resume directly - the
// status word's atomic suspend count already makes that safe without a
// round trip through the system stack.

type sysTerminate struct{}

func (sysTerminate) isSystemMessage() {}

// sysChildTerminated is sent by a child to its parent once the child's own
// termination sequence has fully completed.
type sysChildTerminated struct {
	child *PID
}

func (sysChildTerminated) isSystemMessage() {}

type sysWatch struct {
	watchee *PID
	watcher *PID
}

func (sysWatch) isSystemMessage() {}

type sysUnwatch struct {
	watchee *PID
	watcher *PID
}

func (sysUnwatch) isSystemMessage() {}

// sysFailed is sent by a failing child to its parent so the parent's
// supervision strategy can decide its fate.
type sysFailed struct {
	child   *PID
	cause   interface{}
	message interface{}
}

func (sysFailed) isSystemMessage() {}

// envelope pairs a message with the PID that sent it (nil for messages
// originating outside the actor system).
type envelope struct {
	message interface{}
	sender  *PID
}
