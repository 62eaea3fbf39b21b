package bollywood

import "time"

// DispatcherType selects which of the three scheduling strategies a named
// dispatcher implements (spec.md S4.2).
type DispatcherType int

const (
	// StandardDispatcher schedules one mailbox per cell onto a shared pool
	// of worker goroutines; any worker can run any mailbox.
	StandardDispatcher DispatcherType = iota
	// PinnedDispatcher gives every attached cell its own dedicated
	// goroutine, for bulkhead isolation or blocking work.
	PinnedDispatcher
	// BalancingDispatcher shares a single mailbox across a "buddy group"
	// of same-class siblings pulled from a shared worker pool.
	BalancingDispatcher
)

// MailboxConfig controls a single mailbox's queue shape and fairness.
type MailboxConfig struct {
	// Throughput caps the number of user envelopes processed in one Run
	// before the mailbox is re-queued, for fairness across actors sharing
	// a dispatcher. Must be >= 1; default 5.
	Throughput int `json:"throughput"`
	// ThroughputDeadline additionally caps wall-clock time spent in one
	// Run; zero disables the deadline.
	ThroughputDeadline time.Duration `json:"throughputDeadlineTime"`
	// Capacity is the bounded user-queue size; -1 means unbounded.
	Capacity int `json:"mailboxCapacity"`
	// PushTimeout is how long a bounded mailbox's Enqueue will wait for
	// room before giving up and returning false.
	PushTimeout time.Duration `json:"mailboxPushTimeoutTime"`
}

// DefaultMailboxConfig returns the engine's defaults: unbounded queue,
// throughput 5, no deadline, matching spec.md S6's option table.
func DefaultMailboxConfig() MailboxConfig {
	return MailboxConfig{
		Throughput:         5,
		ThroughputDeadline: 0,
		Capacity:           -1,
		PushTimeout:        0,
	}
}

// DispatcherConfig configures one named dispatcher instance.
type DispatcherConfig struct {
	Type             DispatcherType `json:"type"`
	CorePoolSize     int            `json:"corePoolSize"`
	MaxPoolSize      int            `json:"maxPoolSize"`
	KeepAlive        time.Duration  `json:"keepAliveTime"`
	ShutdownTimeout  time.Duration  `json:"shutdownTimeout"`
	IdleShutdownWait time.Duration  `json:"idleShutdownWait"`
	Mailbox          MailboxConfig  `json:"mailbox"`
}

// DefaultDispatcherConfig returns a Standard dispatcher sized to GOMAXPROCS.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Type:             StandardDispatcher,
		CorePoolSize:     0, // 0 => runtime.GOMAXPROCS(0) at construction
		MaxPoolSize:      0,
		KeepAlive:        60 * time.Second,
		ShutdownTimeout:  5 * time.Second,
		IdleShutdownWait: 0,
		Mailbox:          DefaultMailboxConfig(),
	}
}

// SystemOption configures an ActorSystem at construction time, mirroring
// go-supervise's functional-options Option pattern.
type SystemOption func(*ActorSystem)

// WithName sets the system's name, used as the second path segment of
// every local actor address ("bollywood://<name>/user/...").
func WithName(name string) SystemOption {
	return func(s *ActorSystem) { s.name = name }
}

// WithDispatcher registers a named dispatcher configuration available to
// Props.WithDispatcher. "default" is always registered even if this option
// is never supplied.
func WithDispatcher(name string, cfg DispatcherConfig) SystemOption {
	return func(s *ActorSystem) { s.dispatcherConfigs[name] = cfg }
}

// WithEventSubscriber registers a Subscriber on the system's event stream
// before it starts accepting spawns, so startup events are never missed.
func WithEventSubscriber(sub Subscriber) SystemOption {
	return func(s *ActorSystem) { s.eventStream.Subscribe(sub) }
}
