// Package sched implements the dispatcher, the scheduling policy, and the
// quantum-driven instruction interpreter — the core of the simulator.
//
// Grounded on simulator/simulator.go's word-at-a-time interpreter loop
// from the teacher repo, generalized from a machine-word ISA to the
// seven-opcode PCB instruction set, and on original_source/main.cpp for
// the priority-queue scheduling policy spec.md distills.
package sched

import (
	"fmt"
	"log/slog"

	"github.com/pedropsouza/scheduler/internal/isa"
	"github.com/pedropsouza/scheduler/internal/loader"
	"github.com/pedropsouza/scheduler/internal/proc"
	"github.com/pedropsouza/scheduler/internal/queue"
)

// noneRunning marks that no PCB currently occupies the CPU.
const noneRunning = -1

// Scheduler is the single mutable aggregate owned by the core executor,
// per spec §9: no package-level globals, one value threaded through every
// operation.
type Scheduler struct {
	Table   proc.Table
	Ready   queue.PriorityQueue
	Blocked queue.PriorityQueue
	CPU     proc.CPU

	running   int
	timestamp uint64

	cumulativeTurnaround uint64
	terminatedCount      int

	log *slog.Logger
}

// New bootstraps the scheduler with PCB 0 running initProgram, per
// spec §4.10.
func New(initProgram []isa.Instruction, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{log: log, running: 0}

	pcb, _ := s.Table.Alloc()
	pcb.ParentProcessID = -1
	pcb.Program = initProgram
	pcb.ProgramCounter = 0
	pcb.Value = 0
	pcb.Priority = 0
	pcb.State = proc.Running
	pcb.StartTime = 0
	pcb.TimeUsed = 0

	s.CPU = proc.CPU{
		Program:        pcb.Program,
		ProgramCounter: 0,
		Value:          0,
		TimeSlice:      proc.TimeSlices[0],
		TimeSliceUsed:  0,
	}

	s.log.Debug("bootstrap", "pid", pcb.ProcessID)
	return s
}

// RunningID returns the PID of the running process, or -1 if none runs.
func (s *Scheduler) RunningID() int {
	return s.running
}

// Timestamp returns the current virtual clock value.
func (s *Scheduler) Timestamp() uint64 {
	return s.timestamp
}

// Stats returns the cumulative turnaround time and the number of
// processes terminated so far — the metric §4.9's T operation reports.
func (s *Scheduler) Stats() (cumulative uint64, terminated int) {
	return s.cumulativeTurnaround, s.terminatedCount
}

// dispatch performs the context switch described in spec §4.4.
// outgoingID is -1 when there is no outgoing process (boot, or after
// Block/End).
func (s *Scheduler) dispatch(outgoingID int) {
	if outgoingID != noneRunning {
		out := s.Table.Get(outgoingID)
		out.ProgramCounter = s.CPU.ProgramCounter
		out.Value = s.CPU.Value
		out.TimeUsed += uint64(s.CPU.TimeSliceUsed)
		out.State = proc.Ready
		out.Priority = proc.ClampPriority(out.Priority + 1)
		s.Ready.Push(out.ProcessID, out.Priority)
	}

	incoming := s.Ready.Pop()
	in := s.Table.Get(incoming.ProcessID)

	s.CPU.Program = in.Program
	s.CPU.ProgramCounter = in.ProgramCounter
	s.CPU.Value = in.Value
	s.CPU.TimeSliceUsed = 0
	s.CPU.TimeSlice = proc.TimeSlices[in.Priority]

	in.State = proc.Running
	s.running = in.ProcessID

	s.log.Debug("dispatch", "pid", in.ProcessID, "priority", in.Priority)
}

// schedule implements the policy of spec §4.5: invoked after every
// quantum and after every unblock.
func (s *Scheduler) schedule() {
	if s.Ready.Empty() {
		return
	}
	candidate := s.Ready.Peek()

	if s.running == noneRunning {
		s.dispatch(noneRunning)
		return
	}

	running := s.Table.Get(s.running)
	if s.CPU.TimeSliceUsed >= s.CPU.TimeSlice || candidate.Priority < running.Priority {
		s.dispatch(s.running)
	}
}

// Quantum advances the system by exactly one quantum — spec §4.6.
func (s *Scheduler) Quantum() {
	if s.running == noneRunning {
		s.timestamp++
		return
	}

	var inst isa.Instruction
	if s.CPU.ProgramCounter < len(s.CPU.Program) {
		inst = s.CPU.Program[s.CPU.ProgramCounter]
		s.CPU.ProgramCounter++
	} else {
		inst = isa.Instruction{Op: isa.End}
	}

	s.execute(inst)

	s.timestamp++
	s.CPU.TimeSliceUsed++
	s.schedule()
}

func (s *Scheduler) execute(inst isa.Instruction) {
	switch inst.Op {
	case isa.Set:
		s.CPU.Value = inst.IntArg
	case isa.Add:
		s.CPU.Value += inst.IntArg
	case isa.Decr:
		s.CPU.Value -= inst.IntArg
	case isa.Block:
		s.block()
	case isa.End:
		s.end()
	case isa.Fork:
		s.fork(inst.IntArg)
	case isa.Replace:
		s.replace(inst.StrArg)
	}
}

// block implements the B opcode (spec §4.6).
func (s *Scheduler) block() {
	running := s.Table.Get(s.running)

	running.Priority = proc.ClampPriority(running.Priority - 1)
	running.ProgramCounter = s.CPU.ProgramCounter
	running.Value = s.CPU.Value
	running.TimeUsed += uint64(s.CPU.TimeSliceUsed)
	running.State = proc.Blocked

	s.Blocked.Push(running.ProcessID, running.Priority)
	s.log.Debug("block", "pid", running.ProcessID, "priority", running.Priority)
	s.running = noneRunning
}

// end implements the E opcode (spec §4.6), including the implicit
// fall-off-end termination synthesized by Quantum.
func (s *Scheduler) end() {
	running := s.Table.Get(s.running)

	turnaround := s.timestamp + 1 - running.StartTime
	s.cumulativeTurnaround += turnaround
	s.terminatedCount++

	s.log.Debug("end", "pid", running.ProcessID, "turnaround", turnaround)
	s.running = noneRunning
}

// fork implements the F opcode (spec §4.6).
func (s *Scheduler) fork(v int) {
	running := s.Table.Get(s.running)

	if v < 0 || s.CPU.ProgramCounter+v >= len(running.Program) {
		s.end()
		return
	}

	child, _ := s.Table.Alloc()
	child.Program = append([]isa.Instruction(nil), running.Program...)
	child.ParentProcessID = running.ProcessID
	child.ProgramCounter = s.CPU.ProgramCounter
	child.Value = s.CPU.Value
	child.Priority = running.Priority
	child.State = proc.Ready
	child.StartTime = s.timestamp + 1
	child.TimeUsed = 0

	s.Ready.Push(child.ProcessID, child.Priority)
	s.CPU.ProgramCounter += v

	s.log.Debug("fork", "parent", running.ProcessID, "child", child.ProcessID)
}

// replace implements the R opcode (spec §4.6).
func (s *Scheduler) replace(filename string) {
	running := s.Table.Get(s.running)

	program, err := loader.Load(filename)
	if err != nil {
		s.log.Warn("replace failed, terminating process", "pid", running.ProcessID, "file", filename, "error", err)
		s.end()
		return
	}

	running.Program = program
	s.CPU.Program = program
	s.CPU.ProgramCounter = 0

	s.log.Debug("replace", "pid", running.ProcessID, "file", filename)
}

// Unblock implements the U command (spec §4.7).
func (s *Scheduler) Unblock() {
	if s.Blocked.Empty() {
		return
	}
	entry := s.Blocked.Pop()
	pcb := s.Table.Get(entry.ProcessID)
	pcb.State = proc.Ready
	s.Ready.Push(pcb.ProcessID, pcb.Priority)
	s.schedule()
	s.log.Debug("unblock", "pid", pcb.ProcessID)
}

// AverageTurnaround implements the T command's metric (spec §4.9).
func (s *Scheduler) AverageTurnaround() (avg float64, ok bool) {
	if s.terminatedCount == 0 {
		return 0, false
	}
	return float64(s.cumulativeTurnaround) / float64(s.terminatedCount), true
}

// EffectivePCB returns a snapshot of pcb augmented with the live CPU
// state when pcb is the running process, per spec §4.8's dump rule.
func (s *Scheduler) EffectivePCB(pcb *proc.PCB) proc.PCB {
	snapshot := *pcb
	if pcb.ProcessID == s.running {
		snapshot.ProgramCounter = s.CPU.ProgramCounter
		snapshot.Value = s.CPU.Value
		snapshot.TimeUsed = pcb.TimeUsed + uint64(s.CPU.TimeSliceUsed)
	}
	return snapshot
}

// RunningLabel is a small formatting helper for the C10 dump: "none" or
// the running PID.
func (s *Scheduler) RunningLabel() string {
	if s.running == noneRunning {
		return "none"
	}
	return fmt.Sprintf("%d", s.running)
}
