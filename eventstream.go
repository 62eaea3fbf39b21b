package bollywood

import (
	"fmt"
	"os"
	"sync"
)

// Debug, Warning, and Error are the three event kinds the core publishes
// (spec.md S6 "Event publication"); the host wires up whatever sink it
// wants by subscribing a Subscriber.
type Debug struct {
	Source string
	Class  string
	Text   string
}

type Warning struct {
	Source string
	Class  string
	Text   string
}

type Error struct {
	Cause  interface{}
	Source string
	Class  string
	Text   string
}

// Subscriber receives every event published on an ActorSystem's event
// stream. It must not block or panic; a panicking subscriber is recovered
// and logged to stderr so one bad sink can't take down the runtime.
type Subscriber func(event interface{})

// eventStream is the opaque, process-local publication point described in
// spec.md S6; the core never interprets what a subscriber does with an
// event, it only guarantees ordering is not required and delivery is
// fire-and-forget.
type eventStream struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func newEventStream() *eventStream {
	es := &eventStream{}
	es.Subscribe(defaultStderrSink)
	return es
}

// Subscribe registers sub to receive every future published event.
func (es *eventStream) Subscribe(sub Subscriber) {
	if sub == nil {
		return
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	es.subs = append(es.subs, sub)
}

func (es *eventStream) publish(event interface{}) {
	es.mu.RLock()
	subs := es.subs
	es.mu.RUnlock()
	for _, sub := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "[ERROR] event subscriber panicked: %v\n", r)
				}
			}()
			sub(event)
		}()
	}
}

func defaultStderrSink(event interface{}) {
	switch e := event.(type) {
	case Debug:
		fmt.Fprintf(os.Stderr, "[DEBUG] %s (%s): %s\n", e.Source, e.Class, e.Text)
	case Warning:
		fmt.Fprintf(os.Stderr, "[WARN]  %s (%s): %s\n", e.Source, e.Class, e.Text)
	case Error:
		fmt.Fprintf(os.Stderr, "[ERROR] %s (%s): %s: %v\n", e.Source, e.Class, e.Text, e.Cause)
	}
}
