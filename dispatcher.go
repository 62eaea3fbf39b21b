package bollywood

import (
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Dispatcher schedules mailbox runs onto worker goroutines. Three
// variants are provided (spec.md S4.2): Standard, Pinned, Balancing.
type Dispatcher interface {
	// attach registers a cell's mailbox with this dispatcher and installs
	// the scheduling callback the mailbox uses whenever it transitions
	// Open -> Scheduled.
	attach(c *cell)
	// detach unregisters a cell. The last detach of a dispatcher with
	// IdleShutdownWait configured starts its idle-shutdown timer.
	detach(c *cell)
	// shutdown stops accepting new work and waits up to timeout for its
	// worker goroutines to finish. The standard and balancing dispatchers
	// close every mailbox still waiting in their work queue, which routes
	// its pending envelopes to dead letters; runs still in progress when
	// the timeout expires are not interrupted.
	shutdown(timeout time.Duration)
}

// dispatcherRegistry owns the named Dispatcher instances an ActorSystem
// constructs from its configured DispatcherConfigs, built lazily on first
// use so an unreferenced configuration never spins up goroutines.
type dispatcherRegistry struct {
	system *ActorSystem

	mu      sync.Mutex
	configs map[string]DispatcherConfig
	built   map[string]Dispatcher
	groups  map[string]*balancingGroup
}

func newDispatcherRegistry(system *ActorSystem, configs map[string]DispatcherConfig) *dispatcherRegistry {
	return &dispatcherRegistry{
		system:  system,
		configs: configs,
		built:   make(map[string]Dispatcher),
		groups:  make(map[string]*balancingGroup),
	}
}

func (r *dispatcherRegistry) get(name string) Dispatcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.built[name]; ok {
		return d
	}
	cfg, ok := r.configs[name]
	if !ok {
		cfg = DefaultDispatcherConfig()
	}
	var d Dispatcher
	switch cfg.Type {
	case PinnedDispatcher:
		d = newPinnedDispatcher(cfg)
	case BalancingDispatcher:
		d = newBalancingDispatcher(cfg, r)
	default:
		d = newStandardDispatcher(cfg)
	}
	r.built[name] = d
	return d
}

// shutdownAll tears down every built dispatcher concurrently: each has its
// own worker pool and shutdown timeout, so one dispatcher's drain should
// never add to another's wait.
func (r *dispatcherRegistry) shutdownAll(timeout time.Duration) {
	r.mu.Lock()
	dispatchers := make([]Dispatcher, 0, len(r.built))
	for _, d := range r.built {
		dispatchers = append(dispatchers, d)
	}
	r.mu.Unlock()

	var g errgroup.Group
	for _, d := range dispatchers {
		d := d
		g.Go(func() error {
			d.shutdown(timeout)
			return nil
		})
	}
	_ = g.Wait()
}
