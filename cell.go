package bollywood

import (
	"reflect"
	"runtime/debug"
	"sync"
	"time"
)

type lifecycleIntent int

const (
	intentNone lifecycleIntent = iota
	intentStopping
	intentRestarting
)

// cell is the per-actor state machine and mailbox owner (spec.md S3
// "Actor cell"). It exclusively owns its behavior stack, children, watch
// sets, and the mailbox driving it; everything else reaches it only
// through its PID.
type cell struct {
	system     *ActorSystem
	pid        *PID
	parent     *PID
	props      *Props
	dispatcher Dispatcher
	mbx        *mailbox

	mu           sync.Mutex
	behaviors    []Actor // hotswap stack; behaviors[0] is the root instance
	children     map[string]*PID
	childOrder   []string
	restartStats map[string]*RestartStatistics
	watching     map[string]*PID
	watchedBy    map[string]*PID

	lastFailureMessage interface{}
	failureCause       interface{}

	receiveTimeout time.Duration
	timeoutTimer   *time.Timer

	intent      lifecycleIntent
	initialized bool
}

func newCell(system *ActorSystem, pid, parent *PID, props *Props, dispatcher Dispatcher) *cell {
	return &cell{
		system:       system,
		pid:          pid,
		parent:       parent,
		props:        props,
		dispatcher:   dispatcher,
		children:     make(map[string]*PID),
		restartStats: make(map[string]*RestartStatistics),
		watching:     make(map[string]*PID),
		watchedBy:    make(map[string]*PID),
	}
}

func (c *cell) currentBehavior() Actor {
	if len(c.behaviors) == 0 {
		return nil
	}
	return c.behaviors[len(c.behaviors)-1]
}

// --- mailboxHandler ---

func (c *cell) invokeSystemMessage(msg sysMessage, sender *PID) {
	switch m := msg.(type) {
	case sysCreate:
		c.handleCreate()
	case sysRecreate:
		c.handleRecreate(m.cause)
	case sysTerminate:
		c.handleTerminate()
	case sysChildTerminated:
		c.handleChildTerminated(m.child)
	case sysWatch:
		c.handleWatch(m.watchee, m.watcher)
	case sysUnwatch:
		c.handleUnwatch(m.watchee, m.watcher)
	case sysFailed:
		c.handleFailed(m.child, m.cause, m.message)
	}
}

func (c *cell) invokeUserMessage(msg interface{}, sender *PID) {
	if c.currentBehavior() == nil {
		// Terminated sentinel: route everything to dead letters.
		c.system.routeDeadLetter(msg, sender, c.pid)
		return
	}

	c.cancelReceiveTimeout()

	if _, ok := msg.(Interrupt); ok {
		c.handleInterrupt(sender)
		if !c.mbx.isSuspended() {
			c.armReceiveTimeoutIfIdle()
		}
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.system.eventStream.publish(Error{
					Cause:  r,
					Source: c.pid.Path(),
					Class:  "cell",
					Text:   "panic in Receive",
				})
				_ = debug.Stack()
				c.lastFailureMessage = msg
				c.mbx.Suspend()
				c.system.deliverSystem(c.parent, sysFailed{child: c.pid, cause: r, message: msg}, c.pid)
			}
		}()
		ctx := &actorContext{cell: c, message: msg, sender: sender}
		c.currentBehavior().Receive(ctx)
	}()

	if !c.mbx.isSuspended() {
		c.armReceiveTimeoutIfIdle()
	}
}

// handleInterrupt services an Interrupt envelope without ever reaching the
// actor's own Receive: the mailbox is neither suspended nor destroyed, so
// the very next dequeued message is processed normally.
func (c *cell) handleInterrupt(sender *PID) {
	err := &ActorInterruptedError{PID: c.pid.Path()}
	c.system.eventStream.publish(Warning{Source: c.pid.Path(), Class: "cell", Text: err.Error()})
	if sender != nil {
		sender.TellFrom(err, c.pid)
	}
}

// --- lifecycle: create ---

func (c *cell) handleCreate() {
	inst, err := c.produce()
	if err != nil {
		c.system.eventStream.publish(Error{Cause: err, Source: c.pid.Path(), Class: "cell", Text: "initialization failed"})
		if c.parent != nil {
			c.system.deliverSystem(c.parent, sysFailed{child: c.pid, cause: err, message: nil}, c.pid)
		}
		return
	}
	c.behaviors = []Actor{inst}
	c.initialized = true
	c.invokeUserMessage(Started{}, nil)
}

func (c *cell) produce() (inst Actor, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ActorInitializationError{PID: c.pid.Path(), Cause: r}
		}
	}()
	inst = c.props.produce()
	if inst == nil {
		err = &ActorInitializationError{PID: c.pid.Path(), Cause: "producer returned nil actor"}
		return
	}
	if bd, ok := c.dispatcher.(*balancingDispatcher); ok {
		groupName := c.props.group
		if groupName == "" {
			groupName = "$ungrouped/" + c.pid.Path()
		}
		if cerr := bd.checkClass(groupName, reflect.TypeOf(inst)); cerr != nil {
			return nil, cerr
		}
	}
	return inst, nil
}

// --- lifecycle: terminate ---

func (c *cell) handleTerminate() {
	if c.intent != intentNone {
		return // already stopping/restarting
	}
	c.intent = intentStopping
	if c.initialized {
		c.invokeUserMessageNoSuspendOnPanic(Stopping{})
	}
	c.beginChildShutdown()
}

func (c *cell) beginChildShutdown() {
	c.cancelReceiveTimeout()
	c.mu.Lock()
	children := append([]*PID(nil), c.childOrderSnapshotLocked()...)
	c.mu.Unlock()

	if len(children) == 0 {
		c.tryFinalize()
		return
	}
	for _, child := range children {
		c.system.deliverSystem(child, sysTerminate{}, c.pid)
	}
}

func (c *cell) childOrderSnapshotLocked() []*PID {
	out := make([]*PID, 0, len(c.childOrder))
	for _, path := range c.childOrder {
		if p, ok := c.children[path]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (c *cell) handleChildTerminated(child *PID) {
	c.mu.Lock()
	delete(c.children, child.Path())
	for i, p := range c.childOrder {
		if p == child.Path() {
			c.childOrder = append(c.childOrder[:i], c.childOrder[i+1:]...)
			break
		}
	}
	remaining := len(c.children)
	c.mu.Unlock()

	if remaining == 0 {
		c.tryFinalize()
	}
}

func (c *cell) tryFinalize() {
	switch c.intent {
	case intentStopping:
		c.finalizeStop()
	case intentRestarting:
		c.finalizeRestart()
	}
}

func (c *cell) finalizeStop() {
	c.system.deregister(c.pid.Path())
	if c.initialized {
		c.invokeUserMessageNoSuspendOnPanic(Stopped{})
		if psa, ok := c.currentBehavior().(PostStopAware); ok {
			c.safeCall(psa.PostStop)
		}
	}
	c.mu.Lock()
	watchers := make([]*PID, 0, len(c.watchedBy))
	for _, w := range c.watchedBy {
		watchers = append(watchers, w)
	}
	c.mu.Unlock()
	for _, w := range watchers {
		w.TellFrom(Terminated{Who: c.pid}, c.pid)
	}
	if c.parent != nil {
		c.system.deliverSystem(c.parent, sysChildTerminated{child: c.pid}, c.pid)
	}
	c.behaviors = nil
	c.intent = intentNone
	c.mbx.becomeClosed()
	c.dispatcher.detach(c)
}

// invokeUserMessageNoSuspendOnPanic runs Stopped/Stopping without routing a
// panic into supervision: a post-stop failure is logged, never rethrown
// (spec.md S4.3 step 2, S7 error kind 6).
func (c *cell) invokeUserMessageNoSuspendOnPanic(msg interface{}) {
	defer func() {
		if r := recover(); r != nil {
			c.system.eventStream.publish(Error{Cause: r, Source: c.pid.Path(), Class: "cell", Text: "panic during stop/post-stop"})
		}
	}()
	ctx := &actorContext{cell: c, message: msg, sender: nil}
	c.currentBehavior().Receive(ctx)
}

func (c *cell) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.system.eventStream.publish(Error{Cause: r, Source: c.pid.Path(), Class: "cell", Text: "panic during PostStop"})
		}
	}()
	fn()
}

// --- lifecycle: restart ---

func (c *cell) handleRecreate(cause interface{}) {
	if c.intent == intentStopping {
		return // stopping wins over a late restart decision
	}
	c.intent = intentRestarting
	c.failureCause = cause
	c.invokeUserMessageNoSuspendOnPanic(Restarting{Cause: cause})
	c.beginChildShutdownForRestart()
}

func (c *cell) beginChildShutdownForRestart() {
	c.mu.Lock()
	children := append([]*PID(nil), c.childOrderSnapshotLocked()...)
	c.mu.Unlock()
	if len(children) == 0 {
		c.tryFinalize()
		return
	}
	for _, child := range children {
		c.system.deliverSystem(child, sysTerminate{}, c.pid)
	}
}

func (c *cell) finalizeRestart() {
	if old, ok := c.currentBehavior().(RestartAware); ok {
		c.safeCall(func() { old.PreRestart(c.failureCause, c.lastFailureMessage) })
	}
	c.behaviors = nil
	c.lastFailureMessage = nil

	inst, err := c.produce()
	if err != nil {
		c.system.eventStream.publish(Error{Cause: err, Source: c.pid.Path(), Class: "cell", Text: "restart initialization failed"})
		c.intent = intentNone
		c.handleTerminate()
		return
	}
	c.behaviors = []Actor{inst}
	if next, ok := inst.(RestartAware); ok {
		c.safeCall(func() { next.PostRestart(c.failureCause) })
	}
	c.failureCause = nil
	c.intent = intentNone
	c.mbx.Resume()
	c.invokeUserMessage(Started{}, nil)
}

// --- death-watch ---

func (c *cell) handleWatch(watchee, watcher *PID) {
	c.mu.Lock()
	c.watchedBy[watcher.Path()] = watcher
	c.mu.Unlock()
}

func (c *cell) handleUnwatch(watchee, watcher *PID) {
	c.mu.Lock()
	delete(c.watchedBy, watcher.Path())
	c.mu.Unlock()
}

// --- supervision ---

func (c *cell) handleFailed(child *PID, cause interface{}, failingMessage interface{}) {
	c.mu.Lock()
	stats, ok := c.restartStats[child.Path()]
	if !ok {
		stats = NewRestartStatistics()
		c.restartStats[child.Path()] = stats
	}
	siblings := c.childOrderSnapshotLocked()
	c.mu.Unlock()

	directive := c.props.strategy.HandleFailure(child, stats, cause, failingMessage)

	applyToAll := c.props.strategy.AppliesToSiblings() && (directive == Restart || directive == Stop)
	targets := []*PID{child}
	if applyToAll {
		targets = siblings
	}

	for _, t := range targets {
		c.applyDirective(t, directive, cause)
	}
}

func (c *cell) applyDirective(target *PID, directive Directive, cause interface{}) {
	switch directive {
	case Resume:
		c.system.resume(target)
	case Restart:
		c.system.deliverSystem(target, sysRecreate{cause: cause}, c.pid)
	case Stop:
		c.system.deliverSystem(target, sysTerminate{}, c.pid)
	case Escalate:
		c.escalate(cause)
	}
}

func (c *cell) escalate(cause interface{}) {
	c.mbx.Suspend()
	if c.parent == nil {
		// Root guardian has no supervisor: log and restart itself as the
		// only sensible terminal behavior for an unsupervised escalation.
		c.system.eventStream.publish(Error{Cause: cause, Source: c.pid.Path(), Class: "cell", Text: "escalated failure reached the root guardian"})
		c.system.deliverSystem(c.pid, sysRecreate{cause: cause}, c.pid)
		return
	}
	c.system.deliverSystem(c.parent, sysFailed{child: c.pid, cause: cause, message: c.lastFailureMessage}, c.pid)
}

// --- children bookkeeping (called from within this cell's own Run) ---

func (c *cell) addChild(pid *PID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children[pid.Path()] = pid
	c.childOrder = append(c.childOrder, pid.Path())
}

func (c *cell) childrenSnapshot() []*PID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.childOrderSnapshotLocked()
}

// --- receive timeout ---

func (c *cell) setReceiveTimeout(d time.Duration) {
	c.receiveTimeout = d
	c.cancelReceiveTimeout()
	if d > 0 {
		c.armReceiveTimeoutIfIdle()
	}
}

func (c *cell) cancelReceiveTimeout() {
	if c.timeoutTimer != nil {
		c.timeoutTimer.Stop()
		c.timeoutTimer = nil
	}
}

func (c *cell) armReceiveTimeoutIfIdle() {
	c.cancelReceiveTimeout()
	if c.receiveTimeout <= 0 {
		return
	}
	if c.mbx.userQ.size() > 0 {
		return
	}
	pid := c.pid
	c.timeoutTimer = time.AfterFunc(c.receiveTimeout, func() {
		pid.Tell(ReceiveTimeout{})
	})
}
