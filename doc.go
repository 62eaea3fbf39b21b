// Package bollywood is an in-process actor runtime: a population of
// single-threaded event handlers ("actors") that communicate only by
// asynchronous message passing, supervise one another in a tree, and run
// atop a bounded pool of worker goroutines via pluggable dispatchers.
//
// The engine guarantees, per actor: at most one goroutine runs its behavior
// at a time, system messages (supervision, watch, lifecycle) are processed
// before any user message in the same mailbox run, and messages from a
// given sender are delivered in the order they were sent. Delivery is
// best-effort, at-most-once, in-order per sender->receiver pair, within a
// single process. There is no persistence and no distribution.
package bollywood
