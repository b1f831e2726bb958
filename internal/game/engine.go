// internal/game/engine.go
//
// Transition function for a single well.
// Responsibilities:
//   - Move a falling piece left, right, down or rotate it clockwise.
//   - Lock a piece that cannot move down, merging it into a fresh well.
//   - Clear full rows and count them into the score.
//
// Notes:
//   - NextState is pure. The input well is never written to; a lock always
//     allocates a new well. Search code relies on this to share wells
//     between sibling branches.
//   - Blocked left/right/rotate moves return the input state unchanged.
//   - Rotation cycles through the orientations a piece declares, so a
//     piece with a single orientation never changes O.
package game

import (
	"errors"
	"fmt"
)

var (
	ErrBadDimensions = errors.New("bad well dimensions")
	ErrBadWell       = errors.New("well does not match engine dimensions")
)

// Engine applies moves for one rotation system and one well size.
type Engine struct {
	rotations *RotationSystem
	width     int
	depth     int
	fullRow   uint32
}

// NewEngine constructs an Engine. Width must fit a row bitmask and leave room
// for a piece box; depth must hold at least one piece box.
func NewEngine(rs *RotationSystem, width, depth int) (*Engine, error) {
	if rs == nil {
		return nil, ErrEmptyRotationSystem
	}
	if width < BoxSize || width > MaxWellWidth {
		return nil, fmt.Errorf("%w: width %d not in [%d,%d]", ErrBadDimensions, width, BoxSize, MaxWellWidth)
	}
	if depth < BoxSize {
		return nil, fmt.Errorf("%w: depth %d below %d", ErrBadDimensions, depth, BoxSize)
	}
	return &Engine{
		rotations: rs,
		width:     width,
		depth:     depth,
		fullRow:   uint32(1)<<uint(width) - 1,
	}, nil
}

func (e *Engine) Rotations() *RotationSystem { return e.rotations }
func (e *Engine) Width() int                 { return e.width }
func (e *Engine) Depth() int                 { return e.depth }

// CheckWell verifies w has the engine's depth and no bits beyond its width.
func (e *Engine) CheckWell(w Well) error {
	if len(w) != e.depth {
		return fmt.Errorf("%w: %d rows, want %d", ErrBadWell, len(w), e.depth)
	}
	for i, row := range w {
		if row&^e.fullRow != 0 {
			return fmt.Errorf("%w: row %d wider than %d columns", ErrBadWell, i, e.width)
		}
	}
	return nil
}

// Spawn places a new piece of the given id using the rotation system's rule.
func (e *Engine) Spawn(pieceID int) Piece {
	return e.rotations.Spawn(e.width, pieceID)
}

// Fits reports whether p lies inside the well without overlapping any cell.
func (e *Engine) Fits(w Well, p Piece) bool {
	or := e.rotations.Orientation(p.ID, p.O)
	if p.X+or.XMin < 0 || p.X+or.XMin+or.XDim > e.width {
		return false
	}
	if p.Y+or.YMin < 0 || p.Y+or.YMin+or.YDim > e.depth {
		return false
	}
	for r := or.YMin; r < or.YMin+or.YDim; r++ {
		if w[p.Y+r]&shiftRow(or.Rows[r], p.X) != 0 {
			return false
		}
	}
	return true
}

// NextState applies m to the falling piece of s.
func (e *Engine) NextState(s GameState, m Move) GameState {
	if s.Piece == nil {
		return s
	}
	next := *s.Piece
	switch m {
	case MoveLeft:
		next.X--
	case MoveRight:
		next.X++
	case MoveDown:
		next.Y++
	case MoveRotate:
		next.O = (next.O + 1) % e.rotations.NumOrientations(next.ID)
	}

	if e.Fits(s.Well, next) {
		return GameState{Well: s.Well, Score: s.Score, Piece: &next}
	}
	if m != MoveDown {
		return s
	}

	well, cleared := e.lock(s.Well, *s.Piece)
	return GameState{Well: well, Score: s.Score + cleared, Piece: nil}
}

// lock merges p into a copy of w and removes full rows.
func (e *Engine) lock(w Well, p Piece) (Well, int) {
	merged := w.Clone()
	or := e.rotations.Orientation(p.ID, p.O)
	for r := or.YMin; r < or.YMin+or.YDim; r++ {
		y := p.Y + r
		if y < 0 || y >= len(merged) {
			continue
		}
		merged[y] |= shiftRow(or.Rows[r], p.X) & e.fullRow
	}

	kept := make(Well, 0, len(merged))
	for _, row := range merged {
		if row != e.fullRow {
			kept = append(kept, row)
		}
	}
	cleared := len(merged) - len(kept)
	if cleared == 0 {
		return merged, 0
	}
	out := make(Well, len(merged))
	copy(out[cleared:], kept)
	return out, cleared
}

func shiftRow(row uint32, x int) uint32 {
	if x >= 0 {
		return row << uint(x)
	}
	return row >> uint(-x)
}
