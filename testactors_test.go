package bollywood

import "sync"

// recordingActor appends every message it receives (in arrival order) to an
// internal slice, guarded by a mutex since Drain/Snapshot are called from
// the test goroutine while Receive runs on a dispatcher worker.
type recordingActor struct {
	mu       sync.Mutex
	received []interface{}
	onMsg    func(ctx Context, msg interface{})
}

func newRecordingActor() *recordingActor { return &recordingActor{} }

func (a *recordingActor) Receive(ctx Context) {
	a.mu.Lock()
	a.received = append(a.received, ctx.Message())
	a.mu.Unlock()
	if a.onMsg != nil {
		a.onMsg(ctx, ctx.Message())
	}
}

func (a *recordingActor) snapshot() []interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]interface{}, len(a.received))
	copy(out, a.received)
	return out
}

func (a *recordingActor) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.received)
}

// panicOnActor panics whenever it receives a value equal to want.
type panicOnActor struct {
	want interface{}
}

func (a *panicOnActor) Receive(ctx Context) {
	if ctx.Message() == a.want {
		panic("boom")
	}
}
