package bollywood

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const addressScheme = "bollywood"

// ActorSystem is the root of one actor hierarchy: it owns the guardian cell
// every top-level actor is spawned under, the path registry used to resolve
// a PID to its live cell, the named dispatchers, the event stream, and the
// dead-letter sink (spec.md S2 "System overview").
type ActorSystem struct {
	name              string
	dispatcherConfigs map[string]DispatcherConfig
	eventStream       *eventStream
	dispatchers       *dispatcherRegistry
	deadLetters       *deadLetterSink

	mu    sync.RWMutex
	cells map[string]*cell

	guardian *cell
	userPath string

	shutdownOnce sync.Once
}

// NewSystem constructs an ActorSystem and starts its guardian. Safe for
// concurrent use from the moment it returns.
func NewSystem(opts ...SystemOption) *ActorSystem {
	s := &ActorSystem{
		name:              uuid.NewString(),
		dispatcherConfigs: map[string]DispatcherConfig{"default": DefaultDispatcherConfig()},
		eventStream:       newEventStream(),
		cells:             make(map[string]*cell),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := s.dispatcherConfigs["default"]; !ok {
		s.dispatcherConfigs["default"] = DefaultDispatcherConfig()
	}
	s.dispatchers = newDispatcherRegistry(s, s.dispatcherConfigs)
	s.deadLetters = newDeadLetterSink()

	rootPath := fmt.Sprintf("%s://%s", addressScheme, s.name)
	s.userPath = childPath(rootPath, "user")
	guardianPID := &PID{system: s, path: s.userPath}
	props := NewProps(func() Actor { return &guardianActor{} })
	s.guardian = newCell(s, guardianPID, nil, props, s.dispatchers.get(props.dispatcher))
	s.registerAndStart(s.guardian)

	return s
}

// guardianActor is the actor hosting the root cell: it has no behavior of
// its own beyond the lifecycle messages every actor receives, since actual
// top-level supervision decisions are made by the strategy attached to its
// Props, which is always DefaultOneForOneStrategy; there is no option to
// replace the guardian's strategy.
type guardianActor struct{}

func (g *guardianActor) Receive(ctx Context) {}

func (s *ActorSystem) registerAndStart(c *cell) {
	c.mbx = newMailbox(c.pid, s.mailboxConfigFor(c), c, s.recordDeadLetter)
	s.mu.Lock()
	s.cells[c.pid.Path()] = c
	s.mu.Unlock()
	c.dispatcher.attach(c)
	c.mbx.SystemEnqueue(sysCreate{}, nil)
}

func (s *ActorSystem) mailboxConfigFor(c *cell) MailboxConfig {
	if c.props.hasMailbox {
		return c.props.mailbox
	}
	cfg, ok := s.dispatcherConfigs[c.props.dispatcher]
	if !ok {
		return DefaultMailboxConfig()
	}
	return cfg.Mailbox
}

// ActorOf spawns a top-level actor as a child of the system's guardian. An
// empty name gets a generated one.
func (s *ActorSystem) ActorOf(props *Props, name string) (*PID, error) {
	return s.spawnChild(s.guardian, props, name)
}

func (s *ActorSystem) spawnChild(parent *cell, props *Props, name string) (*PID, error) {
	if name == "" {
		name = "$" + uuid.NewString()
	} else if err := validateActorName(name); err != nil {
		return nil, err
	}
	path := childPath(parent.pid.Path(), name)

	s.mu.Lock()
	if _, exists := s.cells[path]; exists {
		s.mu.Unlock()
		return nil, &InvalidActorNameError{Name: name, Reason: "an actor already exists at this path"}
	}
	// Reserve the path before releasing the lock: exactly one concurrent
	// spawn of the same sibling name wins, the rest see "exists".
	pid := &PID{system: s, path: path}
	c := newCell(s, pid, parent.pid, props, s.dispatchers.get(props.dispatcher))
	s.cells[path] = c
	s.mu.Unlock()

	c.mbx = newMailbox(pid, s.mailboxConfigFor(c), c, s.recordDeadLetter)
	c.dispatcher.attach(c)
	parent.addChild(pid)
	c.mbx.SystemEnqueue(sysCreate{}, nil)
	return pid, nil
}

// lookup resolves path to its live cell, or nil if it never existed locally
// or has already fully stopped.
func (s *ActorSystem) lookup(path string) *cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cells[path]
}

func (s *ActorSystem) deregister(path string) {
	s.mu.Lock()
	delete(s.cells, path)
	s.mu.Unlock()
}

// deliverUser routes a user Tell to pid's mailbox, or to dead letters if the
// target is unknown, a bounded mailbox is full, or the target is closed.
func (s *ActorSystem) deliverUser(pid *PID, message interface{}, sender *PID) {
	c := s.lookup(pid.Path())
	if c == nil {
		s.recordDeadLetter(message, sender, pid)
		return
	}
	// A closed mailbox has already routed the message to dead letters itself.
	if !c.mbx.Enqueue(message, sender) && !c.mbx.st.isClosed() {
		s.recordDeadLetter(message, sender, pid)
	}
}

// deliverSystem routes a system-protocol message to pid's mailbox. Unlike
// deliverUser this never fails visibly: an unknown target simply has
// nothing to deliver to (spec.md S9, system messages target a specific
// already-known cell, never an arbitrary external address).
func (s *ActorSystem) deliverSystem(pid *PID, message sysMessage, sender *PID) {
	c := s.lookup(pid.Path())
	if c == nil {
		return
	}
	c.mbx.SystemEnqueue(message, sender)
}

// resume implements the Resume supervision directive directly against the
// mailbox's atomic status word, bypassing the system-message stack (see
// messages.go).
func (s *ActorSystem) resume(pid *PID) {
	c := s.lookup(pid.Path())
	if c == nil {
		return
	}
	c.mbx.Resume()
}

func (s *ActorSystem) recordDeadLetter(message interface{}, sender *PID, recipient *PID) {
	letter := DeadLetter{Message: message, Sender: sender, Recipient: recipient}
	s.deadLetters.record(letter)
	s.eventStream.publish(Debug{Source: recipient.Path(), Class: "deadLetter", Text: fmt.Sprintf("%T undeliverable", message)})
}

func (s *ActorSystem) routeDeadLetter(message interface{}, sender *PID, recipient *PID) {
	s.recordDeadLetter(message, sender, recipient)
}

// DeadLetters returns a snapshot of the dead-letter sink: the all-time count
// and the most recent dropped envelopes.
func (s *ActorSystem) DeadLetters() (count uint64, recent []DeadLetter) {
	return s.deadLetters.Count(), s.deadLetters.Recent()
}

// Subscribe registers sub on the system's event stream.
func (s *ActorSystem) Subscribe(sub Subscriber) { s.eventStream.Subscribe(sub) }

// Shutdown stops every dispatcher, waiting up to timeout for in-flight runs
// to drain; anything left queued afterwards is swept to dead letters by each
// dispatcher's own shutdown.
func (s *ActorSystem) Shutdown(timeout time.Duration) {
	s.shutdownOnce.Do(func() {
		s.guardian.system.deliverSystem(s.guardian.pid, sysTerminate{}, nil)
		s.dispatchers.shutdownAll(timeout)
	})
}
