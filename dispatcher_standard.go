package bollywood

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// standardDispatcher is the default: a shared pool of worker goroutines,
// any of which can run any attached mailbox (spec.md S4.2 "Standard").
//
// The pool is torn down after IdleShutdownWait with no attached cells and
// rebuilt on the next attach, per spec.md's "Dispatcher liveness" note:
// attached_count drives the executor's lifetime, not just its sizing.
type standardDispatcher struct {
	cfg   DispatcherConfig
	queue atomic.Pointer[execQueue]

	mu        sync.Mutex
	attached  int64
	stopped   bool
	idleTimer *time.Timer
	wg        *sync.WaitGroup
	once      sync.Once
}

func newStandardDispatcher(cfg DispatcherConfig) *standardDispatcher {
	d := &standardDispatcher{cfg: cfg}
	d.startWorkersLocked(d.poolSize())
	return d
}

func (d *standardDispatcher) poolSize() int {
	n := d.cfg.CorePoolSize
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return n
}

// startWorkersLocked replaces the queue and wait group with a fresh
// generation and starts n workers bound to them. Callers hold d.mu, except
// the constructor where no other goroutine can yet observe d.
func (d *standardDispatcher) startWorkersLocked(n int) {
	q := newExecQueue()
	wg := &sync.WaitGroup{}
	d.queue.Store(q)
	d.wg = wg
	for i := 0; i < n; i++ {
		wg.Add(1)
		go d.worker(q, wg)
	}
}

func (d *standardDispatcher) worker(q *execQueue, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		m, ok := q.pop()
		if !ok {
			return
		}
		d.runSafely(m)
	}
}

// runSafely isolates mailbox.Run from a worker-ending panic: a panic
// escaping Run would indicate a bug in the runtime itself (user-behavior
// panics are already caught inside cell.invokeUserMessage), but a worker
// dying must not silently shrink the pool, so we re-schedule the mailbox
// and keep the worker loop alive (spec.md S4.2 "failure semantics").
func (d *standardDispatcher) runSafely(m *mailbox) {
	defer func() {
		if r := recover(); r != nil {
			m.st.setOpen()
			m.tryScheduleAndRun()
		}
	}()
	m.Run()
}

func (d *standardDispatcher) attach(c *cell) {
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
	d.mu.Unlock()
	c.mbx.setScheduler(func(m *mailbox) {
		if !d.queue.Load().push(m) {
			m.st.setOpen()
		}
	})
}

func (d *standardDispatcher) detach(c *cell) {
	d.mu.Lock()
	d.attached--
	if d.attached == 0 && d.cfg.IdleShutdownWait > 0 && !d.stopped {
		d.idleTimer = time.AfterFunc(d.cfg.IdleShutdownWait, d.tearDownIfIdle)
	}
	d.mu.Unlock()
}

// tearDownIfIdle fires after IdleShutdownWait with no attach in between; it
// re-checks attached under the lock since a late attach may have already
// cancelled this timer and lost the race to fire anyway.
func (d *standardDispatcher) tearDownIfIdle() {
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

func (d *standardDispatcher) shutdown(timeout time.Duration) {
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
