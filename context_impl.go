package bollywood

import "time"

// actorContext is the concrete Context handed to Actor.Receive; a fresh one
// is built for every invocation and is only valid for its duration.
type actorContext struct {
	cell    *cell
	message interface{}
	sender  *PID
}

func (ctx *actorContext) System() *ActorSystem { return ctx.cell.system }
func (ctx *actorContext) Self() *PID           { return ctx.cell.pid }
func (ctx *actorContext) Parent() *PID         { return ctx.cell.parent }
func (ctx *actorContext) Sender() *PID         { return ctx.sender }
func (ctx *actorContext) Message() interface{} { return ctx.message }

func (ctx *actorContext) Children() []*PID { return ctx.cell.childrenSnapshot() }

func (ctx *actorContext) Spawn(props *Props, name string) (*PID, error) {
	return ctx.cell.system.spawnChild(ctx.cell, props, name)
}

func (ctx *actorContext) Stop(ref *PID) {
	ctx.cell.system.deliverSystem(ref, sysTerminate{}, ctx.cell.pid)
}

func (ctx *actorContext) Watch(ref *PID) {
	if ref == nil || ref.Equals(ctx.cell.pid) {
		return
	}
	ctx.cell.mu.Lock()
	_, already := ctx.cell.watching[ref.Path()]
	if !already {
		ctx.cell.watching[ref.Path()] = ref
	}
	ctx.cell.mu.Unlock()
	if already {
		return
	}
	if c := ref.cellOf(); c != nil {
		ctx.cell.system.deliverSystem(ref, sysWatch{watchee: ref, watcher: ctx.cell.pid}, ctx.cell.pid)
	} else {
		// Already gone: watcher gets its Terminated immediately.
		ctx.cell.pid.TellFrom(Terminated{Who: ref}, ref)
	}
}

func (ctx *actorContext) Unwatch(ref *PID) {
	if ref == nil {
		return
	}
	ctx.cell.mu.Lock()
	_, watching := ctx.cell.watching[ref.Path()]
	delete(ctx.cell.watching, ref.Path())
	ctx.cell.mu.Unlock()
	if watching {
		ctx.cell.system.deliverSystem(ref, sysUnwatch{watchee: ref, watcher: ctx.cell.pid}, ctx.cell.pid)
	}
}

func (ctx *actorContext) Tell(ref *PID, message interface{}) {
	ref.TellFrom(message, ctx.cell.pid)
}

func (ctx *actorContext) Forward(ref *PID) {
	ref.TellFrom(ctx.message, ctx.sender)
}

func (ctx *actorContext) Become(behavior Behavior, discardOld bool) {
	frame := behaviorActor{fn: behavior}
	if discardOld && len(ctx.cell.behaviors) > 0 {
		ctx.cell.behaviors[len(ctx.cell.behaviors)-1] = frame
		return
	}
	ctx.cell.behaviors = append(ctx.cell.behaviors, frame)
}

func (ctx *actorContext) Unbecome() {
	if len(ctx.cell.behaviors) > 1 {
		ctx.cell.behaviors = ctx.cell.behaviors[:len(ctx.cell.behaviors)-1]
	}
}

func (ctx *actorContext) SetReceiveTimeout(d time.Duration) {
	ctx.cell.setReceiveTimeout(d)
}
