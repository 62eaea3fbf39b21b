package bollywood

import (
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// balancingDispatcher shares one mailbox (one userQueue) across every
// same-class member of a "buddy group", pulled from a shared worker pool
// (spec.md S4.2 "Balancing"). System/supervision traffic stays addressed
// to individual cells; only user-message scheduling is pooled.
//
// Like standardDispatcher, the worker pool is torn down after
// IdleShutdownWait once every member across every group has detached, and
// rebuilt on the next attach.
type balancingDispatcher struct {
	cfg   DispatcherConfig
	reg   *dispatcherRegistry
	queue atomic.Pointer[execQueue]
	once  sync.Once

	mu        sync.Mutex
	classOf   map[string]reflect.Type
	attached  int64
	stopped   bool
	idleTimer *time.Timer
	wg        *sync.WaitGroup
}

func newBalancingDispatcher(cfg DispatcherConfig, reg *dispatcherRegistry) *balancingDispatcher {
	d := &balancingDispatcher{cfg: cfg, reg: reg, classOf: make(map[string]reflect.Type)}
	d.startWorkersLocked(d.poolSize())
	return d
}

func (d *balancingDispatcher) poolSize() int {
	n := d.cfg.CorePoolSize
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return n
}

// startWorkersLocked replaces the queue and wait group with a fresh
// generation and starts n workers bound to them. Callers hold d.mu, except
// the constructor where no other goroutine can yet observe d.
func (d *balancingDispatcher) startWorkersLocked(n int) {
	q := newExecQueue()
	wg := &sync.WaitGroup{}
	d.queue.Store(q)
	d.wg = wg
	for i := 0; i < n; i++ {
		wg.Add(1)
		go d.worker(q, wg)
	}
}

func (d *balancingDispatcher) worker(q *execQueue, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		m, ok := q.pop()
		if !ok {
			return
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.st.setOpen()
					m.tryScheduleAndRun()
				}
			}()
			m.Run()
		}()
	}
}

func (d *balancingDispatcher) attach(c *cell) {
	groupName := c.props.group
	if groupName == "" {
		groupName = "$ungrouped/" + c.pid.Path()
	}

	d.mu.Lock()
	d.attached++
	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.stopped {
		d.startWorkersLocked(d.poolSize())
		d.stopped = false
	}
	g, ok := d.reg.groups[groupName]
	if !ok {
		cfg := c.props.mailbox
		if !c.props.hasMailbox {
			cfg = d.cfg.Mailbox
		}
		g = newBalancingGroup(groupName, cfg, func(m *mailbox) {
			if !d.queue.Load().push(m) {
				m.st.setOpen()
			}
		})
		d.reg.groups[groupName] = g
	}
	d.mu.Unlock()
	g.join(c.mbx)
}

// checkClass enforces the "same actor class" invariant for a buddy group
// the first time a member's concrete type becomes known (at incarnation,
// which is the earliest point its concrete type exists without an eager
// throwaway Producer call - see DESIGN.md). Returns an error for the
// second-and-later distinct type seen in a group.
func (d *balancingDispatcher) checkClass(groupName string, actorType reflect.Type) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	existing, ok := d.classOf[groupName]
	if !ok {
		d.classOf[groupName] = actorType
		return nil
	}
	if existing != actorType {
		return &InvalidActorClassForBalancingDispatcherError{
			Group:    groupName,
			Expected: existing.String(),
			Got:      actorType.String(),
		}
	}
	return nil
}

func (d *balancingDispatcher) detach(c *cell) {
	groupName := c.props.group
	if groupName == "" {
		groupName = "$ungrouped/" + c.pid.Path()
	}
	d.mu.Lock()
	d.attached--
	if d.attached == 0 && d.cfg.IdleShutdownWait > 0 && !d.stopped {
		d.idleTimer = time.AfterFunc(d.cfg.IdleShutdownWait, d.tearDownIfIdle)
	}
	g, ok := d.reg.groups[groupName]
	d.mu.Unlock()
	if ok {
		g.leave(c.mbx)
	}
}

// tearDownIfIdle fires after IdleShutdownWait with no attach in between, in
// any group served by this dispatcher; it re-checks attached under the
// lock since a late attach may have already cancelled this timer and lost
// the race to fire anyway.
func (d *balancingDispatcher) tearDownIfIdle() {
	d.mu.Lock()
	if d.attached != 0 || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.idleTimer = nil
	q := d.queue.Load()
	wg := d.wg
	d.mu.Unlock()

	pending := q.closeAndDrain()
	for _, m := range pending {
		m.becomeClosed()
	}
	wg.Wait()
}

func (d *balancingDispatcher) shutdown(timeout time.Duration) {
	d.once.Do(func() {
		d.mu.Lock()
		if d.idleTimer != nil {
			d.idleTimer.Stop()
			d.idleTimer = nil
		}
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.stopped = true
		q := d.queue.Load()
		wg := d.wg
		d.mu.Unlock()

		pending := q.closeAndDrain()
		for _, m := range pending {
			m.becomeClosed()
		}
		done := make(chan struct{})
		go func() { wg.Wait(); close(done) }()
		select {
		case <-done:
		case <-time.After(timeout):
		}
	})
}
