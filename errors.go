package bollywood

import "fmt"

// InvalidActorNameError is returned by ActorSystem.ActorOf and Context.Spawn
// when the requested child name is malformed or already taken by a live
// sibling. An empty name is not rejected: a name is generated for it.
type InvalidActorNameError struct {
	Name   string
	Reason string
}

func (e *InvalidActorNameError) Error() string {
	return fmt.Sprintf("bollywood: invalid actor name %q: %s", e.Name, e.Reason)
}

// InvalidActorStateError describes an operation attempted against a cell
// that is not in a state that permits it. No code path in this package
// constructs it; in particular, spawning a child under a terminated parent
// is not checked.
type InvalidActorStateError struct {
	PID    string
	Reason string
}

func (e *InvalidActorStateError) Error() string {
	return fmt.Sprintf("bollywood: invalid state for %s: %s", e.PID, e.Reason)
}

// MessageQueueAppendFailure describes a bounded mailbox that could not
// accept an envelope within its configured push timeout. Mailbox.Enqueue
// reports that case only as a false return, and PID.Tell returns nothing;
// no code path in this package constructs this type.
type MessageQueueAppendFailure struct {
	PID     string
	Message interface{}
}

func (e *MessageQueueAppendFailure) Error() string {
	return fmt.Sprintf("bollywood: mailbox for %s did not accept message %T within push timeout", e.PID, e.Message)
}

// ActorInitializationError wraps a panic or error raised while a Props'
// Producer constructed a new actor instance (first incarnation or restart).
type ActorInitializationError struct {
	PID   string
	Cause interface{}
}

func (e *ActorInitializationError) Error() string {
	return fmt.Sprintf("bollywood: actor %s failed to initialize: %v", e.PID, e.Cause)
}

// ActorInterruptedError is the reply delivered to an Interrupt envelope's
// sender: the actor being interrupted never runs its own Receive for that
// envelope, but is not suspended or destroyed by it either.
type ActorInterruptedError struct {
	PID string
}

func (e *ActorInterruptedError) Error() string {
	return fmt.Sprintf("bollywood: actor %s interrupted mid-receive", e.PID)
}

// InvalidActorClassForBalancingDispatcherError is the initialization failure
// a cell under a BalancingDispatcher reports when its freshly produced actor
// type does not match the class already established by the rest of its
// buddy group. It is published as the Cause of an Error event and sent to the
// parent as a failure; ActorOf itself does not return it.
type InvalidActorClassForBalancingDispatcherError struct {
	Group    string
	Expected string
	Got      string
}

func (e *InvalidActorClassForBalancingDispatcherError) Error() string {
	return fmt.Sprintf("bollywood: balancing dispatcher group %q expects actor class %s, got %s", e.Group, e.Expected, e.Got)
}
