package bollywood

import (
	"reflect"
	"time"
)

// Directive is the decision a supervisor applies to a failing child (and,
// for AllForOne, to its siblings).
type Directive int

const (
	// Resume leaves the child's state intact and simply un-suspends it.
	Resume Directive = iota
	// Restart discards the child's current instance and produces a fresh
	// one via its stored Producer, preserving its PID and mailbox.
	Restart
	// Stop terminates the child permanently.
	Stop
	// Escalate re-raises the failure as the supervisor's own, so its own
	// parent decides instead.
	Escalate
)

// Decider classifies a failure cause into a Directive. The first matching
// case in a Decider chain wins; spec.md S4.4 step 1.
type Decider func(cause interface{}) Directive

// DefaultDecider restarts on any cause. Most supervisors only need to
// refine specific cause types and fall back to this.
func DefaultDecider(cause interface{}) Directive { return Restart }

// SupervisorStrategy is a pure function of (failure, child stats,
// siblings) to a set of directives, applied by a parent cell whenever one
// of its children reports a Failed system message.
type SupervisorStrategy interface {
	// HandleFailure decides what to do about child's failure and returns
	// the directive to apply to child (and, for AllForOne strategies, the
	// same directive is also applied by the caller to every sibling).
	HandleFailure(child *PID, stats *RestartStatistics, cause interface{}, failingMessage interface{}) Directive
	// AppliesToSiblings reports whether the returned directive (when it is
	// Restart or Stop) must also be applied to the failing child's
	// siblings under the same parent.
	AppliesToSiblings() bool
}

// RestartStatistics tracks a child's restart history within a rolling time
// window, so "max N restarts within duration D" can be enforced exactly as
// spec.md S4.4 describes: a failure outside the window resets the count
// rather than accumulating forever. Modeled as a small ring of failure
// timestamps rather than a single counter (see protoactor-go's
// RestartStatistics), which is what makes "outside the window" precise
// when within_time_range is set.
type RestartStatistics struct {
	failureTimes []time.Time
}

// NewRestartStatistics returns an empty restart history.
func NewRestartStatistics() *RestartStatistics {
	return &RestartStatistics{}
}

// Fail records a failure at now and returns the number of failures within
// window (or the all-time count if window <= 0).
func (r *RestartStatistics) Fail(now time.Time, window time.Duration) int {
	r.failureTimes = append(r.failureTimes, now)
	if window <= 0 {
		return len(r.failureTimes)
	}
	cutoff := now.Add(-window)
	kept := r.failureTimes[:0]
	for _, t := range r.failureTimes {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	r.failureTimes = kept
	return len(r.failureTimes)
}

// Reset clears restart history, used after a successful Resume/Restart
// cycle that a caller wants to forgive (not used internally by default;
// exposed for custom strategies).
func (r *RestartStatistics) Reset() {
	r.failureTimes = r.failureTimes[:0]
}

// oneForOneStrategy applies its decision only to the failing child.
type oneForOneStrategy struct {
	decide      Decider
	maxRetries  int // -1 => unlimited
	withinRange time.Duration
}

// OneForOne builds a SupervisorStrategy that applies decide's directive to
// the failing child alone. maxRetries < 0 means unlimited; withinRange <= 0
// means the retry budget never resets (spec.md S4.4 "None (all-time)").
func OneForOne(decide Decider, maxRetries int, withinRange time.Duration) SupervisorStrategy {
	return &oneForOneStrategy{decide: decide, maxRetries: maxRetries, withinRange: withinRange}
}

// DefaultOneForOneStrategy is OneForOne(DefaultDecider, unlimited retries).
func DefaultOneForOneStrategy() SupervisorStrategy {
	return OneForOne(DefaultDecider, -1, 0)
}

func (s *oneForOneStrategy) AppliesToSiblings() bool { return false }

func (s *oneForOneStrategy) HandleFailure(child *PID, stats *RestartStatistics, cause interface{}, msg interface{}) Directive {
	directive := s.decide(cause)
	if directive == Restart && s.maxRetries >= 0 {
		count := stats.Fail(time.Now(), s.withinRange)
		if count > s.maxRetries {
			return Stop
		}
	}
	return directive
}

// allForOneStrategy applies Restart/Stop to the failing child and every
// sibling under the same parent; Resume and Escalate only ever affect the
// failing child itself (escalating a sibling's problem makes no sense).
type allForOneStrategy struct {
	decide      Decider
	maxRetries  int
	withinRange time.Duration
}

// AllForOne builds a SupervisorStrategy whose Restart/Stop directive is
// applied to the whole sibling group, per spec.md S4.4.
func AllForOne(decide Decider, maxRetries int, withinRange time.Duration) SupervisorStrategy {
	return &allForOneStrategy{decide: decide, maxRetries: maxRetries, withinRange: withinRange}
}

func (s *allForOneStrategy) AppliesToSiblings() bool { return true }

func (s *allForOneStrategy) HandleFailure(child *PID, stats *RestartStatistics, cause interface{}, msg interface{}) Directive {
	directive := s.decide(cause)
	if directive == Restart && s.maxRetries >= 0 {
		count := stats.Fail(time.Now(), s.withinRange)
		if count > s.maxRetries {
			return Stop
		}
	}
	return directive
}

// MatchCause builds a Decider from an ordered list of (exemplar, directive)
// pairs, matched by the cause's dynamic type; the first match wins and
// causes matching nothing fall through to def.
func MatchCause(def Directive, pairs ...CausePair) Decider {
	return func(cause interface{}) Directive {
		ct := reflect.TypeOf(cause)
		for _, p := range pairs {
			if ct == reflect.TypeOf(p.Exemplar) {
				return p.Directive
			}
		}
		return def
	}
}

// CausePair associates an exemplar value (used only for its dynamic type)
// with the Directive to apply when a failure cause has that same type.
type CausePair struct {
	Exemplar  interface{}
	Directive Directive
}
