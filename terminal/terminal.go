// Package terminal draws with ANSI escape sequences on a raw console.
package terminal

import (
	"blockfall/tetris"
	"errors"
	"fmt"

	"golang.org/x/term"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	ResetPos    = "\033[H" // Reset cursor position to 0,0
	Clear       = "\033[2J\033[H"
	HideCursor  = "\033[?25l"
	ShowCursor  = "\033[?25h"
	emptyCell   = "  "
	ghostCell   = "[]"
	coloredCell = "\x1b[7m\x1b[%sm[]\x1b[0m"
)

// MinWidth and MinHeight is the console size the layout needs.
const (
	MinWidth  = 56
	MinHeight = 24
)

var colorMap = map[tetris.Color]string{
	tetris.Cyan:   Cyan,
	tetris.Blue:   Blue,
	tetris.Orange: Orange,
	tetris.Yellow: Yellow,
	tetris.Green:  Green,
	tetris.Red:    Red,
	tetris.Purple: Magenta,
}

var ErrTooSmall = errors.New("terminal too small")

// Cell returns the two characters a field cell is drawn with.
func Cell(c tetris.Color) string {
	if c == tetris.Ghost {
		return ghostCell
	}
	code, ok := colorMap[c]
	if !ok {
		return emptyCell
	}
	return fmt.Sprintf(coloredCell, code)
}

func Bold(s string) string {
	return "\033[1m" + s + "\033[0m"
}

// MoveTo positions the cursor, 1-indexed like the escape sequence.
func MoveTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// Check makes sure fd is a console the layout fits in.
func Check(fd int) error {
	if !term.IsTerminal(fd) {
		return errors.New("not a terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	if w < MinWidth || h < MinHeight {
		return fmt.Errorf("%w: %dx%d, need %dx%d", ErrTooSmall, w, h, MinWidth, MinHeight)
	}
	return nil
}
