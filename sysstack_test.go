package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSysStack_DrainIsFIFO(t *testing.T) {
	var s sysStack
	assert.True(t, s.isEmpty())
	s.push(sysCreate{}, nil)
	s.push(sysTerminate{}, nil)
	s.push(sysChildTerminated{}, nil)

	nodes := s.drainFIFO()
	assert.Len(t, nodes, 3)
	assert.IsType(t, sysCreate{}, nodes[0].message, "push order must survive the LIFO->FIFO reversal")
	assert.IsType(t, sysTerminate{}, nodes[1].message)
	assert.IsType(t, sysChildTerminated{}, nodes[2].message)
	assert.True(t, s.isEmpty(), "drain must leave the stack empty")
}

func TestSysStack_DrainEmptyIsNil(t *testing.T) {
	var s sysStack
	assert.Empty(t, s.drainFIFO())
}
