package bollywood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnboundedQueue_FIFO(t *testing.T) {
	q := newUnboundedQueue()
	for i := 0; i < 5; i++ {
		q.push(envelope{message: i}, 0)
	}
	assert.Equal(t, 5, q.size())
	for i := 0; i < 5; i++ {
		e, ok := q.pop()
		assert.True(t, ok)
		assert.Equal(t, i, e.message)
	}
	_, ok := q.pop()
	assert.False(t, ok, "pop on an empty queue must report nothing")
}

func TestUnboundedQueue_ConcurrentProducers(t *testing.T) {
	q := newUnboundedQueue()
	const producers, perProducer = 8, 200
	done := make(chan struct{})
	for p := 0; p < producers; p++ {
		go func(p int) {
			for i := 0; i < perProducer; i++ {
				q.push(envelope{message: p*perProducer + i}, 0)
			}
			done <- struct{}{}
		}(p)
	}
	for p := 0; p < producers; p++ {
		<-done
	}
	seen := 0
	for {
		_, ok := q.pop()
		if !ok {
			break
		}
		seen++
	}
	assert.Equal(t, producers*perProducer, seen, "every pushed envelope must be observed exactly once")
}

func TestBoundedQueue_PushTimeout(t *testing.T) {
	q := newBoundedQueue(1)
	assert.True(t, q.push(envelope{message: 1}, 0), "first push into an empty capacity-1 queue must succeed")
	start := time.Now()
	ok := q.push(envelope{message: 2}, 20*time.Millisecond)
	assert.False(t, ok, "push into a full bounded queue must time out")
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestBoundedQueue_DrainReturnsAllAndEmpties(t *testing.T) {
	q := newBoundedQueue(4)
	for i := 0; i < 3; i++ {
		assert.True(t, q.push(envelope{message: i}, 0))
	}
	drained := q.drain()
	assert.Len(t, drained, 3)
	assert.Equal(t, 0, q.size())
}
