// Package proc holds the process control block table and the live CPU
// register block bound to whichever PCB is currently running.
package proc

import "github.com/pedropsouza/scheduler/internal/isa"

// State is a PCB's position in the Ready/Running/Blocked lifecycle.
type State int

const (
	Ready State = iota
	Running
	Blocked
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Blocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// MinPriority and MaxPriority bound the priority range of every PCB;
// priority 0 is most-favored.
const (
	MinPriority = 0
	MaxPriority = 9
)

// TimeSlices maps a priority (index) to the quantum budget a process at
// that priority is dispatched with.
var TimeSlices = [MaxPriority + 1]int{25, 22, 19, 16, 13, 11, 9, 6, 3, 1}

// PCB is the per-process control block. ProcessID is dense starting at 0
// and is never reused; Program is owned exclusively by this PCB.
type PCB struct {
	ProcessID       int
	ParentProcessID int
	Program         []isa.Instruction
	ProgramCounter  int
	Value           int
	Priority        int
	State           State
	StartTime       uint64
	TimeUsed        uint64
}

// CPU is the live execution context bound to the running PCB. Its fields
// are authoritative over the running PCB's copies while a process runs;
// see Invariant 6 — the PCB snapshot is stale until the next context
// switch writes it back.
type CPU struct {
	Program       []isa.Instruction
	ProgramCounter int
	Value          int
	TimeSlice      int
	TimeSliceUsed  int
}

// Table is a densely indexed, append-only container of PCBs. Index i
// holds the PCB with ProcessID i; no slot is ever freed during a run
// (Invariant 7 — process IDs are never reused).
type Table struct {
	entries []*PCB
}

// Alloc appends a new PCB to the table and returns it together with its
// index; the new PCB's ProcessID is already set to that index.
func (t *Table) Alloc() (*PCB, int) {
	id := len(t.entries)
	p := &PCB{ProcessID: id}
	t.entries = append(t.entries, p)
	return p, id
}

// Get returns the PCB at index id.
func (t *Table) Get(id int) *PCB {
	return t.entries[id]
}

// Len reports how many PCBs have ever been allocated.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns every PCB in process-ID order. The slice is the table's own
// backing array; callers must not mutate its length.
func (t *Table) All() []*PCB {
	return t.entries
}

// ClampPriority saturates p into [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}
