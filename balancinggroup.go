package bollywood

import "sync"

// balancingGroup is the shared mailbox backing a BalancingDispatcher buddy
// group (spec.md S4.2): all members' mailboxes point at the same userQueue,
// and scheduling hands the next envelope to whichever member is currently
// Open, rather than to a specific addressed cell. Each member keeps its own
// system stack and status word, since lifecycle/supervision/watch traffic
// is still addressed to one specific PID.
type balancingGroup struct {
	mu      sync.Mutex
	name    string
	members []*mailbox
	queue   userQueue
	submit  func(*mailbox)
}

func newBalancingGroup(name string, cfg MailboxConfig, submit func(*mailbox)) *balancingGroup {
	var q userQueue
	if cfg.Capacity < 0 {
		q = newUnboundedQueue()
	} else {
		q = newBoundedQueue(cfg.Capacity)
	}
	return &balancingGroup{name: name, queue: q, submit: submit}
}

func (g *balancingGroup) join(m *mailbox) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m.userQ = g.queue
	m.group = g
	g.members = append(g.members, m)
}

func (g *balancingGroup) leave(m *mailbox) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, mb := range g.members {
		if mb == m {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
}

// tryScheduleAny hands the group's shared mailbox to the first idle
// (state==Open) member found, starting scheduling for that member alone;
// Run will drain as much shared-queue work as its throughput budget
// allows, and whichever member next becomes idle will pick up the rest.
func (g *balancingGroup) tryScheduleAny() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, m := range g.members {
		if m.st.trySchedule() {
			g.submit(m)
			return
		}
	}
}
