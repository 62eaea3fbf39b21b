package bollywood

import (
	"sync"
	"time"
)

// pinnedDispatcher gives every attached cell a dedicated goroutine
// (spec.md S4.2 "Pinned"): a bulkhead for blocking I/O actors, where one
// slow mailbox can never starve another actor's worker.
type pinnedDispatcher struct {
	cfg DispatcherConfig
	mu  sync.Mutex
	// doorbell per attached mailbox: buffered-1 channel signaling "there
	// may be work", so the worker never busy-spins and a burst of
	// scheduling attempts while the worker is mid-Run collapses into a
	// single pending doorbell ring.
	bells map[*mailbox]chan struct{}
	done  map[*mailbox]chan struct{}
}

func newPinnedDispatcher(cfg DispatcherConfig) *pinnedDispatcher {
	return &pinnedDispatcher{
		cfg:   cfg,
		bells: make(map[*mailbox]chan struct{}),
		done:  make(map[*mailbox]chan struct{}),
	}
}

func (d *pinnedDispatcher) attach(c *cell) {
	bell := make(chan struct{}, 1)
	done := make(chan struct{})

	d.mu.Lock()
	d.bells[c.mbx] = bell
	d.done[c.mbx] = done
	d.mu.Unlock()

	c.mbx.setScheduler(func(m *mailbox) {
		select {
		case bell <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(done)
		for range bell {
			c.mbx.Run()
			if c.mbx.st.isClosed() {
				return
			}
		}
	}()
}

func (d *pinnedDispatcher) detach(c *cell) {
	d.mu.Lock()
	bell, ok := d.bells[c.mbx]
	delete(d.bells, c.mbx)
	delete(d.done, c.mbx)
	d.mu.Unlock()
	if ok {
		close(bell)
	}
}

func (d *pinnedDispatcher) shutdown(timeout time.Duration) {
	d.mu.Lock()
	dones := make([]chan struct{}, 0, len(d.done))
	bells := make([]chan struct{}, 0, len(d.bells))
	for _, done := range d.done {
		dones = append(dones, done)
	}
	for _, bell := range d.bells {
		bells = append(bells, bell)
	}
	d.mu.Unlock()

	for _, bell := range bells {
		select {
		case bell <- struct{}{}:
		default:
		}
	}

	deadline := time.After(timeout)
	for _, done := range dones {
		select {
		case <-done:
		case <-deadline:
			return
		}
	}
}
