// File: main.go
package main

import (
	"fmt"
	"time"

	"github.com/lguibr/bollywood"
)

// workFailed is the cause a worker panics with to demonstrate supervised
// restart; every third unit of work is treated as a transient failure.
type workFailed struct{ unit int }

func (w workFailed) Error() string { return fmt.Sprintf("unit %d failed", w.unit) }

type workUnit struct{ n int }

type workerActor struct {
	processed int
}

func (a *workerActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		fmt.Printf("%s started\n", ctx.Self())
	case workUnit:
		a.processed++
		if msg.n%3 == 0 {
			panic(workFailed{unit: msg.n})
		}
		fmt.Printf("%s processed unit %d (total %d)\n", ctx.Self(), msg.n, a.processed)
	case bollywood.Restarting:
		fmt.Printf("%s restarting after: %v\n", ctx.Self(), msg.Cause)
	case bollywood.Stopped:
		fmt.Printf("%s stopped\n", ctx.Self())
	}
}

// supervisorActor owns a pool of workerActors under a OneForOne strategy
// that restarts on workFailed and escalates anything else.
type supervisorActor struct {
	workers []*bollywood.PID
}

func (a *supervisorActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		for i := 0; i < 3; i++ {
			props := bollywood.NewProps(
				func() bollywood.Actor { return &workerActor{} },
				bollywood.WithSupervisorStrategy(bollywood.DefaultOneForOneStrategy()),
			)
			pid, err := ctx.Spawn(props, fmt.Sprintf("worker-%d", i))
			if err != nil {
				fmt.Println("spawn failed:", err)
				continue
			}
			a.workers = append(a.workers, pid)
		}
	case workUnit:
		target := a.workers[msg.n%len(a.workers)]
		ctx.Tell(target, msg)
	case bollywood.Terminated:
		fmt.Printf("worker terminated: %s\n", msg.Who)
	}
}

func main() {
	system := bollywood.NewSystem(bollywood.WithName("demo"))

	supervisorProps := bollywood.NewProps(
		func() bollywood.Actor { return &supervisorActor{} },
		bollywood.WithSupervisorStrategy(bollywood.OneForOne(
			bollywood.MatchCause(bollywood.Escalate, bollywood.CausePair{
				Exemplar:  workFailed{},
				Directive: bollywood.Restart,
			}),
			5, time.Minute,
		)),
	)
	root, err := system.ActorOf(supervisorProps, "supervisor")
	if err != nil {
		panic(err)
	}

	for i := 1; i <= 20; i++ {
		root.Tell(workUnit{n: i})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	count, recent := system.DeadLetters()
	fmt.Printf("dead letters: %d (showing up to %d)\n", count, len(recent))

	system.Shutdown(5 * time.Second)
}
