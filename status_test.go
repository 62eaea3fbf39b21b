package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_ScheduleCycle(t *testing.T) {
	var s status
	assert.True(t, s.trySchedule(), "Open -> Scheduled should win")
	assert.False(t, s.trySchedule(), "a second concurrent schedule attempt must lose")
	assert.True(t, s.setOpen())
	assert.True(t, s.trySchedule(), "should be schedulable again once reopened")
}

func TestStatus_CloseIsTerminal(t *testing.T) {
	var s status
	s.close()
	assert.True(t, s.isClosed())
	assert.False(t, s.trySchedule(), "a closed mailbox must never be scheduled again")
	assert.False(t, s.setOpen(), "setOpen must not resurrect a closed mailbox")
}

func TestStatus_SuspendResumeCount(t *testing.T) {
	var s status
	assert.False(t, s.isSuspended())
	s.suspend()
	s.suspend()
	assert.True(t, s.isSuspended(), "two suspends should still report suspended")
	s.resume()
	assert.True(t, s.isSuspended(), "one resume out of two suspends should not clear the flag")
	s.resume()
	assert.False(t, s.isSuspended(), "the matching resume should clear it")
}

func TestStatus_ResumeFlooredAtZero(t *testing.T) {
	var s status
	assert.Equal(t, uint32(0), s.resume(), "resume on a never-suspended mailbox is a no-op")
}
