package console

import (
	"github.com/k0kubun/pp/v3"

	"github.com/pedropsouza/scheduler/internal/proc"
	"github.com/pedropsouza/scheduler/internal/queue"
)

// pcbView is the flattened, plain-data shape of one PCB row in the C10
// dump — the running process's fields already merged with its live CPU
// state via Scheduler.EffectivePCB.
type pcbView struct {
	PID       int
	PPID      int
	PC        int
	Value     int
	Priority  int
	State     string
	StartTime uint64
	TimeUsed  uint64
}

// snapshot is the full state dump: a plain-data mirror of the scheduler
// with no maps, so pp's field order (and therefore the rendered text) is
// deterministic given equal state (spec §4.8, §5).
type snapshot struct {
	Timestamp uint64
	Running   string
	Blocked   []queue.Entry
	Ready     []queue.Entry
	Processes []pcbView
}

// Dump renders the C10 state snapshot: timestamp, running PID, blocked
// and ready listings in priority order, and the full PCB table.
func (d *Dispatcher) Dump() {
	snap := snapshot{
		Timestamp: d.sched.Timestamp(),
		Running:   d.sched.RunningLabel(),
		Blocked:   d.sched.Blocked.Snapshot(),
		Ready:     d.sched.Ready.Snapshot(),
	}

	for _, pcb := range d.sched.Table.All() {
		snap.Processes = append(snap.Processes, toView(d.sched.EffectivePCB(pcb)))
	}

	pp.Fprintln(d.dump, snap)
}

func toView(p proc.PCB) pcbView {
	return pcbView{
		PID:       p.ProcessID,
		PPID:      p.ParentProcessID,
		PC:        p.ProgramCounter,
		Value:     p.Value,
		Priority:  p.Priority,
		State:     p.State.String(),
		StartTime: p.StartTime,
		TimeUsed:  p.TimeUsed,
	}
}
