package bollywood

import "time"

// mailboxHandler is implemented by the cell that owns a mailbox; the
// mailbox calls back into it to actually run a message against the
// current actor behavior.
type mailboxHandler interface {
	invokeSystemMessage(msg sysMessage, sender *PID)
	invokeUserMessage(msg interface{}, sender *PID)
}

// scheduleFunc hands a runnable mailbox to whichever dispatcher owns it;
// supplied by the dispatcher at Attach time.
type scheduleFunc func(*mailbox)

// mailbox couples one actor's user queue, system stack, and status word,
// and exposes the single Run entry point a dispatcher worker calls
// (spec.md S4.1).
type mailbox struct {
	pid       *PID
	st        status
	userQ     userQueue
	sysQ      sysStack
	handler   mailboxHandler
	cfg       MailboxConfig
	schedule  scheduleFunc
	onDeadLetter func(message interface{}, sender *PID, recipient *PID)
	group *balancingGroup // non-nil when this mailbox's user queue is shared
}

func newMailbox(pid *PID, cfg MailboxConfig, handler mailboxHandler, onDeadLetter func(interface{}, *PID, *PID)) *mailbox {
	var q userQueue
	if cfg.Capacity < 0 {
		q = newUnboundedQueue()
	} else {
		q = newBoundedQueue(cfg.Capacity)
	}
	if cfg.Throughput < 1 {
		cfg.Throughput = 1
	}
	return &mailbox{
		pid:          pid,
		userQ:        q,
		cfg:          cfg,
		handler:      handler,
		onDeadLetter: onDeadLetter,
	}
}

// setScheduler installs the dispatch callback used to hand this mailbox to
// a worker whenever it transitions Open -> Scheduled. Called once by
// Dispatcher.Attach.
func (m *mailbox) setScheduler(fn scheduleFunc) { m.schedule = fn }

// Enqueue appends a user envelope. Returns false in two cases: the mailbox
// is closed, in which case Enqueue has already routed the message to dead
// letters; or a bounded mailbox timed out waiting for room, in which case
// the caller routes the message to dead letters itself.
func (m *mailbox) Enqueue(message interface{}, sender *PID) bool {
	if m.st.isClosed() {
		m.deadLetter(message, sender)
		return false
	}
	ok := m.userQ.push(envelope{message: message, sender: sender}, m.cfg.PushTimeout)
	if !ok {
		return false
	}
	// A close racing this push is handled by Run: if it drains to dead
	// letters after we pushed, our envelope is swept up there, never lost.
	m.tryScheduleAndRun()
	return true
}

// SystemEnqueue pushes a system message. Infallible in-memory; even a
// Suspended (but not yet Closed) mailbox still schedules and processes it.
// A close racing this push still sees the message, because close() drains
// the stack *after* flipping to mbClosed and the push always lands before
// or is itself drained; see becomeClosed.
func (m *mailbox) SystemEnqueue(message sysMessage, sender *PID) {
	m.sysQ.push(message, sender)
	if m.st.isClosed() {
		// Closed already; make sure this late arrival doesn't get stranded.
		m.drainClosedSystemMessages()
		return
	}
	m.tryScheduleAndRun()
}

// Suspend increments the suspend count.
func (m *mailbox) Suspend() { m.st.suspend() }

// Resume decrements the suspend count and re-schedules if it reaches zero
// and work remains.
func (m *mailbox) Resume() {
	if m.st.resume() == 0 {
		m.tryScheduleAndRun()
	}
}

func (m *mailbox) isSuspended() bool { return m.st.isSuspended() }

func (m *mailbox) tryScheduleAndRun() {
	if m.group != nil {
		// System messages are addressed to this member alone, so it must
		// be the one scheduled; user work can go to any idle member.
		if !m.sysQ.isEmpty() && m.st.trySchedule() {
			m.group.submit(m)
			return
		}
		m.group.tryScheduleAny()
		return
	}
	if m.st.trySchedule() {
		if m.schedule != nil {
			m.schedule(m)
		}
	}
}

// becomeClosed is the terminal transition: drains both queues to dead
// letters and rejects all further enqueues.
func (m *mailbox) becomeClosed() {
	m.st.close()
	for _, e := range m.userQ.drain() {
		m.deadLetter(e.message, e.sender)
	}
	m.drainClosedSystemMessages()
}

func (m *mailbox) drainClosedSystemMessages() {
	for _, n := range m.sysQ.drainFIFO() {
		m.deadLetter(n.message, n.sender)
	}
}

func (m *mailbox) deadLetter(message interface{}, sender *PID) {
	if m.onDeadLetter != nil {
		m.onDeadLetter(message, sender, m.pid)
	}
}

// Run is the dispatcher-facing entry point: drain and process all system
// messages, then up to cfg.Throughput user messages (or until the
// throughput deadline elapses), then return the mailbox to Open and
// re-schedule if work remains. Never invoked concurrently with itself for
// the same mailbox (spec.md S4.1, S8 property 1).
func (m *mailbox) Run() {
	if m.st.isClosed() {
		m.drainClosedSystemMessages()
		for _, e := range m.userQ.drain() {
			m.deadLetter(e.message, e.sender)
		}
		return
	}

	for _, n := range m.sysQ.drainFIFO() {
		m.handler.invokeSystemMessage(n.message, n.sender)
	}

	if m.st.isClosed() {
		// A system message (Terminate) closed the mailbox mid-run.
		for _, e := range m.userQ.drain() {
			m.deadLetter(e.message, e.sender)
		}
		return
	}

	if !m.st.isSuspended() {
		var deadline time.Time
		hasDeadline := m.cfg.ThroughputDeadline > 0
		if hasDeadline {
			deadline = time.Now().Add(m.cfg.ThroughputDeadline)
		}
		for i := 0; i < m.cfg.Throughput; i++ {
			if hasDeadline && time.Now().After(deadline) {
				break
			}
			e, ok := m.userQ.pop()
			if !ok {
				break
			}
			m.handler.invokeUserMessage(e.message, e.sender)
			if m.st.isClosed() {
				for _, rest := range m.userQ.drain() {
					m.deadLetter(rest.message, rest.sender)
				}
				return
			}
			if m.st.isSuspended() {
				// A panic inside that invocation suspended us: a parent
				// directive, not this Run, decides when processing resumes.
				break
			}
		}
	}

	if !m.st.setOpen() {
		// Closed while we were running; sweep any last stragglers.
		for _, e := range m.userQ.drain() {
			m.deadLetter(e.message, e.sender)
		}
		m.drainClosedSystemMessages()
		return
	}

	if !m.sysQ.isEmpty() || (!m.st.isSuspended() && m.userQ.size() > 0) {
		m.tryScheduleAndRun()
	}
}
