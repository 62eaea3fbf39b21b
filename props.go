package bollywood

// Props is the immutable recipe used to spawn an actor: what to produce,
// which dispatcher runs it, how its mailbox behaves, and how its children
// (if any) are supervised.
type Props struct {
	producer   Producer
	dispatcher string
	mailbox    MailboxConfig
	hasMailbox bool
	strategy   SupervisorStrategy
	group      string // non-empty => this cell joins a balancing buddy group
}

// PropsOption configures a Props value; see the With* constructors below.
type PropsOption func(*Props)

// NewProps creates a Props from a Producer. producer must not be nil.
func NewProps(producer Producer, opts ...PropsOption) *Props {
	if producer == nil {
		panic("bollywood: NewProps producer must not be nil")
	}
	p := &Props{
		producer:   producer,
		dispatcher: "default",
		strategy:   DefaultOneForOneStrategy(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithDispatcherName selects a dispatcher registered on the ActorSystem by
// name (see WithDispatcher SystemOption). Defaults to "default".
func WithDispatcherName(name string) PropsOption {
	return func(p *Props) { p.dispatcher = name }
}

// WithMailbox overrides the mailbox configuration the dispatcher's default
// would otherwise apply.
func WithMailbox(cfg MailboxConfig) PropsOption {
	return func(p *Props) {
		p.mailbox = cfg
		p.hasMailbox = true
	}
}

// WithSupervisorStrategy sets the strategy this actor applies to its own
// children's failures. Defaults to OneForOne(Restart) with no retry limit.
func WithSupervisorStrategy(s SupervisorStrategy) PropsOption {
	return func(p *Props) { p.strategy = s }
}

// WithBalancingGroup marks this Props as belonging to a balancing-dispatcher
// buddy group identified by name; all Props sharing a group name under a
// BalancingDispatcher must produce actors of the same concrete type.
func WithBalancingGroup(name string) PropsOption {
	return func(p *Props) { p.group = name }
}

func (p *Props) produce() Actor {
	return p.producer()
}
