package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingHandler is a minimal mailboxHandler for exercising mailbox.Run in
// isolation, without a whole cell/ActorSystem behind it.
type recordingHandler struct {
	userMsgs []interface{}
	sysMsgs  []sysMessage
	onUser   func(msg interface{})
}

func (h *recordingHandler) invokeSystemMessage(msg sysMessage, sender *PID) {
	h.sysMsgs = append(h.sysMsgs, msg)
}

func (h *recordingHandler) invokeUserMessage(msg interface{}, sender *PID) {
	h.userMsgs = append(h.userMsgs, msg)
	if h.onUser != nil {
		h.onUser(msg)
	}
}

func TestMailbox_SystemMessagesRunBeforeUserMessages(t *testing.T) {
	h := &recordingHandler{}
	cfg := DefaultMailboxConfig()
	var deadLetters []interface{}
	mbx := newMailbox(nil, cfg, h, func(msg interface{}, sender, recipient *PID) {
		deadLetters = append(deadLetters, msg)
	})
	mbx.Enqueue("user-1", nil)
	mbx.SystemEnqueue(sysCreate{}, nil)
	mbx.Run()

	assert.Equal(t, []sysMessage{sysCreate{}}, h.sysMsgs)
	assert.Equal(t, []interface{}{"user-1"}, h.userMsgs)
	assert.Empty(t, deadLetters)
}

func TestMailbox_ThroughputCapsOneRun(t *testing.T) {
	h := &recordingHandler{}
	cfg := DefaultMailboxConfig()
	cfg.Throughput = 2
	mbx := newMailbox(nil, cfg, h, nil)
	for i := 0; i < 5; i++ {
		mbx.Enqueue(i, nil)
	}
	mbx.Run()
	assert.Len(t, h.userMsgs, 2, "one Run must stop after cfg.Throughput user messages")
	// No dispatcher is attached in this test, so drive Run the way a
	// dispatcher worker would: once per schedule, until the queue drains.
	for mbx.userQ.size() > 0 {
		mbx.Run()
	}
	assert.Len(t, h.userMsgs, 5)
}

func TestMailbox_SuspendMidRunStopsFurtherUserMessages(t *testing.T) {
	h := &recordingHandler{}
	cfg := DefaultMailboxConfig()
	cfg.Throughput = 10
	mbx := newMailbox(nil, cfg, h, nil)
	h.onUser = func(msg interface{}) {
		if msg == "suspend-me" {
			// Simulates the panic-recovery path in cell.invokeUserMessage,
			// which suspends the mailbox from within the same Run call.
			mbx.Suspend()
		}
	}
	mbx.Enqueue("before", nil)
	mbx.Enqueue("suspend-me", nil)
	mbx.Enqueue("after", nil)
	mbx.Run()

	assert.Equal(t, []interface{}{"before", "suspend-me"}, h.userMsgs,
		"processing must stop as soon as the mailbox is suspended mid-loop")
	assert.True(t, mbx.isSuspended())
	assert.Equal(t, 1, mbx.userQ.size(), "the message after the suspend must remain queued")
}

func TestMailbox_ClosedMailboxRoutesToDeadLetters(t *testing.T) {
	h := &recordingHandler{}
	var deadLetters []interface{}
	mbx := newMailbox(nil, DefaultMailboxConfig(), h, func(msg interface{}, sender, recipient *PID) {
		deadLetters = append(deadLetters, msg)
	})
	mbx.becomeClosed()
	ok := mbx.Enqueue("too-late", nil)
	assert.False(t, ok)
	assert.Equal(t, []interface{}{"too-late"}, deadLetters)
}

func TestMailbox_ResumeReschedulesPendingWork(t *testing.T) {
	h := &recordingHandler{}
	cfg := DefaultMailboxConfig()
	mbx := newMailbox(nil, cfg, h, nil)
	mbx.Suspend()
	mbx.Enqueue("queued-while-suspended", nil)
	mbx.Run()
	assert.Empty(t, h.userMsgs, "a suspended mailbox must not process user messages")

	mbx.Resume()
	mbx.Run()
	assert.Equal(t, []interface{}{"queued-while-suspended"}, h.userMsgs)
}
