// Package console implements the command dispatcher (C9): it reads one
// command byte at a time from the operator pipe and drives the scheduler
// core, plus the state dump (C10).
//
// Grounded on simulator/simulator.go's bufio.Reader-driven byte loop from
// the teacher repo.
package console

import (
	"bufio"
	"io"
	"log/slog"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pedropsouza/scheduler/internal/sched"
)

// Command is a recognized operator byte.
type Command byte

const (
	CmdQuantum   Command = 'Q'
	CmdUnblock   Command = 'U'
	CmdPrint     Command = 'P'
	CmdTerminate Command = 'T'
)

// Dispatcher reads command bytes and applies them to a Scheduler.
type Dispatcher struct {
	sched   *sched.Scheduler
	dump    io.Writer
	log     *slog.Logger
	printer *message.Printer
}

// NewDispatcher builds a Dispatcher whose state dumps are written to
// dumpWriter (typically the operator's terminal or a ColorableWriter
// wrapping stdout — see Dump).
func NewDispatcher(s *sched.Scheduler, dumpWriter io.Writer, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		sched:   s,
		dump:    dumpWriter,
		log:     log,
		printer: message.NewPrinter(language.English),
	}
}

// Outcome reports how the dispatch loop ended.
type Outcome int

const (
	// Terminated means a T command was received; §4.9's average
	// turnaround line should be reported.
	Terminated Outcome = iota
	// EOF means the pipe closed before a T command arrived; per §5, the
	// manager exits as if T were received but without the turnaround
	// line.
	EOF
)

// Run reads command bytes from r one at a time until a T command or EOF.
// Whitespace bytes are ignored; unknown bytes produce a diagnostic and do
// not terminate the loop (spec §6, §7.4).
func (d *Dispatcher) Run(r io.Reader) Outcome {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return EOF
		}
		if unicode.IsSpace(rune(b)) {
			continue
		}

		switch Command(unicode.ToUpper(rune(b))) {
		case CmdQuantum:
			d.sched.Quantum()
		case CmdUnblock:
			d.sched.Unblock()
		case CmdPrint:
			d.Dump()
		case CmdTerminate:
			return Terminated
		default:
			d.log.Warn("unknown command byte", "byte", string(rune(b)))
		}
	}
}

// ReportTurnaround writes the §4.9 average-turnaround report.
func (d *Dispatcher) ReportTurnaround() {
	avg, ok := d.sched.AverageTurnaround()
	if !ok {
		d.printer.Fprintln(d.dump, "no processes terminated")
		return
	}
	d.printer.Fprintf(d.dump, "average turnaround time: %.2f\n", avg)
}
