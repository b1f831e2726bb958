// internal/game/types.go
//
// Core type definitions for the well model.
// Defines:
//   - Well: fixed-depth sequence of row bitmasks, top row first.
//   - Piece: a falling piece (id, orientation, position).
//   - Move: the four canonical inputs (left, right, down, rotate).
//   - GameState: immutable snapshot of well, score and falling piece.

package game

import (
	"fmt"
	"strings"
)

// MaxWellWidth bounds the number of columns a uint32 row can carry.
const MaxWellWidth = 30

// Well holds one bitmask per row. Index 0 is the topmost row; bit c of a row
// is column c counting from the left. A zero row is empty.
//
// Wells are treated as values: nothing in this module writes to a Well it
// did not allocate itself.
type Well []uint32

// EmptyWell returns a well of the given depth with every row clear.
func EmptyWell(depth int) Well {
	return make(Well, depth)
}

// Clone returns an independent copy of w.
func (w Well) Clone() Well {
	out := make(Well, len(w))
	copy(out, w)
	return out
}

// Equal reports whether both wells have identical rows.
func (w Well) Equal(o Well) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// Render draws the well as text, one line per row, '#' for filled cells.
func (w Well) Render(width int) string {
	var b strings.Builder
	for _, row := range w {
		for c := 0; c < width; c++ {
			if row&(1<<uint(c)) != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Piece is a falling piece. O is the orientation index in [0,3].
type Piece struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
	O  int `json:"o"`
}

// Move is one of the four inputs a player can give a falling piece.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveDown
	MoveRotate
)

// Moves lists the canonical move alphabet in exploration order.
var Moves = []Move{MoveLeft, MoveRight, MoveDown, MoveRotate}

func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "L"
	case MoveRight:
		return "R"
	case MoveDown:
		return "D"
	case MoveRotate:
		return "U"
	}
	return "?"
}

// ParseMove accepts the single-letter move names L, R, D and U.
func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return MoveLeft, nil
	case "R":
		return MoveRight, nil
	case "D":
		return MoveDown, nil
	case "U":
		return MoveRotate, nil
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

// GameState is an immutable snapshot. Piece == nil means the last piece has
// locked and the well already reflects it.
type GameState struct {
	Well  Well
	Score int
	Piece *Piece
}

// Locked reports whether the state has no falling piece.
func (s GameState) Locked() bool { return s.Piece == nil }
