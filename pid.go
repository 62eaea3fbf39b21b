package bollywood

// PID (process id) is a stable, comparable handle to an actor. Equality and
// hashing are defined by the canonical Path string alone, so a PID can be
// copied, stored in maps, and compared across goroutines freely.
//
// A PID outlives the actor cell it names: once that cell terminates, the
// PID keeps existing and every message sent through it is routed to the
// system's dead-letter sink (spec.md S3 "Actor address / ref").
type PID struct {
	system *ActorSystem
	path   string
}

// Path returns the canonical "scheme://system/user/.../name" address.
func (pid *PID) Path() string {
	if pid == nil {
		return ""
	}
	return pid.path
}

// String implements fmt.Stringer.
func (pid *PID) String() string {
	return pid.Path()
}

// Equals reports whether two PIDs name the same address. A nil receiver or
// argument compares equal only to another nil.
func (pid *PID) Equals(other *PID) bool {
	if pid == nil || other == nil {
		return pid == other
	}
	return pid.path == other.path
}

// Tell is a fire-and-forget send: the message is enqueued on the target's
// mailbox with no sender attached. Never blocks the caller beyond a bounded
// mailbox's push timeout, and never fails visibly to the caller for an
// unbounded mailbox or a dead target (both route to dead letters).
func (pid *PID) Tell(message interface{}) {
	pid.TellFrom(message, nil)
}

// TellFrom is Tell with an explicit sender, recorded in the envelope so the
// receiver's Context.Sender() resolves to it.
func (pid *PID) TellFrom(message interface{}, sender *PID) {
	if pid == nil || pid.system == nil {
		return
	}
	pid.system.deliverUser(pid, message, sender)
}

// cellOf resolves the live cell behind this PID, or nil if it has
// terminated or was never local. Lookup failure is not an error: callers
// fall back to the dead-letter sink.
func (pid *PID) cellOf() *cell {
	if pid == nil || pid.system == nil {
		return nil
	}
	return pid.system.lookup(pid.path)
}
