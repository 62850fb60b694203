package main

import (
	"fmt"
	"os"
	"time"

	terminal "github.com/isgasho/terminal-3"
	"github.com/mattn/go-runewidth"
	"github.com/mgutz/ansi"
)

// Shows every key and mouse event the terminal delivers, translated into
// the structured event model. Run it and mash the keyboard.

func main() {
	fmt.Println(ansi.Color("events", "green+b") + " prints each input event until you press " +
		ansi.Color("q", "yellow") + " or " + ansi.Color("ctrl+c", "yellow") + ".")
	time.Sleep(time.Second)

	b, err := terminal.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "events: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	for _, a := range []terminal.Action{
		terminal.EnableRawMode{},
		terminal.EnterAlternateScreen{},
		terminal.ClearTerminal{How: terminal.ClearAll},
		terminal.MoveCursorTo{X: 0, Y: 0},
		terminal.EnableMouseCapture{},
		terminal.HideCursor{},
	} {
		if err := b.Act(a); err != nil {
			fmt.Fprintf(os.Stderr, "events: %v\n", err)
			return
		}
	}
	defer b.Act(terminal.ShowCursor{})
	defer b.Act(terminal.LeaveAlternateScreen{})

	cols := 80
	if got, err := b.Get(terminal.SizeQuery{}); err == nil {
		cols = got.(terminal.Size).Cols
	}

	for {
		got, err := b.Get(terminal.EventQuery{Timeout: -1})
		if err != nil {
			fmt.Fprintf(os.Stderr, "events: %v\r\n", err)
			return
		}
		ev := got.(terminal.Polled).Event
		if ev == nil {
			continue
		}
		if ev.Kind == terminal.EventResize {
			if got, err := b.Get(terminal.SizeQuery{}); err == nil {
				cols = got.(terminal.Size).Cols
			}
		}
		fmt.Print(runewidth.Truncate(ev.String(), cols, "…") + "\r\n")

		if ev.Kind == terminal.EventKey && ev.Key.Code == terminal.KeyChar {
			ch, mods := ev.Key.Char, ev.Key.Mods
			if ch == 'q' && mods == 0 {
				break
			}
			if ch == 'c' && mods == terminal.ModCtrl {
				break
			}
		}
	}
	fmt.Print("bye!\r\n")
}
