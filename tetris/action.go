package tetris

import (
	"fmt"
	"sync/atomic"
)

type Action int32

const (
	None      Action = iota // No pending input. The piece just falls.
	MoveLeft                // Moves the piece one column to the left while it falls.
	MoveRight               // Moves the piece one column to the right while it falls.
	SoftDrop                // Advances the piece two rows instead of one.
	HardDrop                // Snaps the piece to its ghost. Restarts the game once it's over.
	Rotate                  // Rotates the piece 90 degrees around its center.
)

var actionNames = map[Action]string{
	None:      "none",
	MoveLeft:  "left",
	MoveRight: "right",
	SoftDrop:  "down",
	HardDrop:  "drop",
	Rotate:    "rotate",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", int32(a))
}

// ParseAction returns the action for its name.
func ParseAction(s string) (Action, error) {
	for a, n := range actionNames {
		if n == s {
			return a, nil
		}
	}
	return None, fmt.Errorf("unknown action %q", s)
}

// Mailbox is the single pending-action slot shared between the input
// adapter and the game loop. Writes overwrite whatever is pending.
type Mailbox struct {
	slot atomic.Int32
}

// Put sets the pending action.
func (m *Mailbox) Put(a Action) { m.slot.Store(int32(a)) }

// Take returns the pending action and resets the slot to None.
func (m *Mailbox) Take() Action { return Action(m.slot.Swap(int32(None))) }

// Peek returns the pending action without consuming it.
func (m *Mailbox) Peek() Action { return Action(m.slot.Load()) }
