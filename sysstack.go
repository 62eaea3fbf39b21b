package bollywood

import "sync/atomic"

// sysNode is one frame of the system-message stack: a lock-free LIFO built
// with compare-and-swap on the head pointer (spec.md S3 "System stack").
type sysNode struct {
	next    *sysNode
	message sysMessage
	sender  *PID
}

// sysStack is the per-cell system-message stack. Senders push on the head;
// the mailbox runner drains the whole list in one shot and reverses it to
// recover FIFO order before processing, matching spec.md S4.1.
type sysStack struct {
	head atomic.Pointer[sysNode]
}

// push is infallible: system_enqueue never fails in-memory (spec.md S4.1).
func (s *sysStack) push(message sysMessage, sender *PID) {
	n := &sysNode{message: message, sender: sender}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// drainFIFO atomically detaches the entire stack and returns its contents
// in the order they were pushed (oldest first).
func (s *sysStack) drainFIFO() []*sysNode {
	head := s.head.Swap(nil)
	if head == nil {
		return nil
	}
	// head..tail is newest-first (LIFO); reverse it in place.
	var prev *sysNode
	cur := head
	for cur != nil {
		next := cur.next
		cur.next = prev
		prev = cur
		cur = next
	}
	out := make([]*sysNode, 0, 4)
	for n := prev; n != nil; n = n.next {
		out = append(out, n)
	}
	return out
}

// isEmpty is a best-effort peek, used by the mailbox to decide whether it
// needs scheduling; the authoritative check is always drainFIFO's returned
// length.
func (s *sysStack) isEmpty() bool { return s.head.Load() == nil }
