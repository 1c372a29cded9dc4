// Command commander is a reference operator front-end: it reads single
// keystrokes (no Enter required) and writes one ASCII byte per command
// to stdout, meant to be piped into the scheduler binary:
//
//	./commander | ./scheduler
//
// Spec §1 places the commander's terminal I/O out of scope for the core;
// this binary is a thin, replaceable client of the byte protocol and
// none of its logic lives in internal/sched.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

var recognized = map[rune]bool{'q': true, 'u': true, 'p': true, 't': true}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "commander: no terminal available:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "commander:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	status := "Enter Q, P, U or T"
	draw(screen, status)

	out := os.Stdout
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			draw(screen, status)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				return
			}
			if ev.Key() != tcell.KeyRune {
				continue
			}

			lower := toLower(ev.Rune())
			if !recognized[lower] {
				status = fmt.Sprintf("ignored: %q", ev.Rune())
				draw(screen, status)
				continue
			}

			if _, err := out.Write([]byte{byte(ev.Rune())}); err != nil {
				return
			}

			status = fmt.Sprintf("sent %q", ev.Rune())
			draw(screen, status)

			if lower == 't' {
				return
			}
		}
	}
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func draw(screen tcell.Screen, status string) {
	screen.Clear()
	style := tcell.StyleDefault
	for i, r := range status {
		screen.SetContent(i, 0, r, nil, style)
	}
	screen.Show()
}
