package main

import (
	"fmt"
	"os"

	terminal "github.com/isgasho/terminal-3"
	"github.com/mgutz/ansi"
)

// Walks the named colors, the 256-color palette and an RGB fade through the
// Backend, then reports how many color pairs that actually cost. Repeated
// colors reuse their pair, so the count stays far below the number of cells
// drawn.

func main() {
	fmt.Println(ansi.Color("colors", "cyan+b") + " exercises the color pair allocator.")

	b, err := terminal.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "colors: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	fg := func(c terminal.Color) {
		if err := b.Act(terminal.SetForegroundColor{Color: c}); err != nil {
			fmt.Fprintf(os.Stderr, "colors: %v\n", err)
			os.Exit(1)
		}
	}
	reset := func() {
		b.Act(terminal.ResetColor{})
		fmt.Println()
	}

	fmt.Println("named colors:")
	for c := terminal.Black; c <= terminal.White; c++ {
		fg(c)
		fmt.Print("██")
	}
	reset()

	fmt.Println("256-color palette:")
	for i := 0; i < 256; i++ {
		fg(terminal.Color(i))
		fmt.Print("█")
		if i == 15 || i == 231 || i == 255 {
			reset()
		}
	}

	fmt.Println("rgb fade (reduced to the nearest palette entry):")
	for i := 0; i < 64; i++ {
		fg(terminal.ColorRGB(uint8(i*4), uint8(255-i*4), 96))
		fmt.Print("█")
	}
	reset()

	// Background on top of an already-set foreground costs one combined
	// pair per distinct combination, never a pair per call.
	fg(terminal.Black)
	for _, c := range []terminal.Color{terminal.Red, terminal.Green, terminal.Blue, terminal.Red} {
		if err := b.Act(terminal.SetBackgroundColor{Color: c}); err != nil {
			fmt.Fprintf(os.Stderr, "colors: %v\n", err)
			os.Exit(1)
		}
		fmt.Print("  ")
	}
	reset()

	fmt.Printf("registered pairs: %d\n", b.PairCount())
}
