package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pedropsouza/scheduler/internal/isa"
)

func writeProgram(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadParsesAllOpcodes(t *testing.T) {
	path := writeProgram(t, "S 5\nA 3\nD 1\nF 2\nB\nE\nR child.txt\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []isa.Instruction{
		{Op: isa.Set, IntArg: 5},
		{Op: isa.Add, IntArg: 3},
		{Op: isa.Decr, IntArg: 1},
		{Op: isa.Fork, IntArg: 2},
		{Op: isa.Block},
		{Op: isa.End},
		{Op: isa.Replace, StrArg: "child.txt"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadIsCaseInsensitiveAndTrims(t *testing.T) {
	path := writeProgram(t, "  s   5  \n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != (isa.Instruction{Op: isa.Set, IntArg: 5}) {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := writeProgram(t, "S 1\n\n\nE\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d instructions, want 2 (blank lines skipped)", len(got))
	}
}

func TestLoadRejectsUnknownOpcode(t *testing.T) {
	path := writeProgram(t, "Z 1\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if le.Line != 0 {
		t.Errorf("got line %d, want 0", le.Line)
	}
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Errorf("expected ErrUnknownOpcode, got %v", err)
	}
}

func TestLoadReportsLineNumberPastBlankLines(t *testing.T) {
	path := writeProgram(t, "S 1\n\nZ 1\n")
	_, err := Load(path)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if le.Line != 2 {
		t.Errorf("got line %d, want 2", le.Line)
	}
}

func TestLoadRejectsBadIntArg(t *testing.T) {
	path := writeProgram(t, "S abc\n")
	_, err := Load(path)
	if !errors.Is(err, ErrBadIntArg) {
		t.Fatalf("expected ErrBadIntArg, got %v", err)
	}
}

func TestLoadRejectsMissingStrArg(t *testing.T) {
	path := writeProgram(t, "R\n")
	_, err := Load(path)
	if !errors.Is(err, ErrMissingStrArg) {
		t.Fatalf("expected ErrMissingStrArg, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
