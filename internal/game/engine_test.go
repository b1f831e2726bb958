package game

import (
	"errors"
	"testing"
)

func newTestSystem(t *testing.T) *RotationSystem {
	t.Helper()
	rs, err := NewRotationSystem("test", []PieceDef{
		{Name: "O", Rows: [BoxSize]string{"....", ".##.", ".##.", "...."}, Orientations: 1},
		{Name: "I", Rows: [BoxSize]string{"....", "####", "....", "...."}, Orientations: 4},
	})
	if err != nil {
		t.Fatalf("rotation system: %v", err)
	}
	return rs
}

func newTestEngine(t *testing.T, width, depth int) *Engine {
	t.Helper()
	e, err := NewEngine(newTestSystem(t), width, depth)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func TestRotationSystemDerivesClockwiseOrientations(t *testing.T) {
	rs := newTestSystem(t)
	if got := rs.NumOrientations(1); got != 4 {
		t.Fatalf("I orientations = %d, want 4", got)
	}
	flat := rs.Orientation(1, 0)
	if flat.Rows[1] != 0b1111 || flat.XMin != 0 || flat.XDim != 4 || flat.YMin != 1 || flat.YDim != 1 {
		t.Fatalf("unexpected flat I: %+v", flat)
	}
	upright := rs.Orientation(1, 1)
	if upright.XMin != 2 || upright.XDim != 1 || upright.YMin != 0 || upright.YDim != 4 {
		t.Fatalf("unexpected upright I: %+v", upright)
	}
	if rs.Orientation(0, 3) != rs.Orientation(0, 0) {
		t.Fatalf("single-orientation piece should ignore o")
	}
	if got := rs.Boxes(1)[1]; got != [BoxSize]string{"..#.", "..#.", "..#.", "..#."} {
		t.Fatalf("Boxes(I)[1] = %v", got)
	}
}

func TestRotationSystemRejectsBadShapes(t *testing.T) {
	cases := map[string][]PieceDef{
		"empty box":    {{Name: "X", Rows: [BoxSize]string{"....", "....", "....", "...."}}},
		"short row":    {{Name: "X", Rows: [BoxSize]string{"...", "####", "....", "...."}}},
		"bad cell":     {{Name: "X", Rows: [BoxSize]string{"....", "#x##", "....", "...."}}},
		"orientations": {{Name: "X", Rows: [BoxSize]string{"....", "####", "....", "...."}, Orientations: 3}},
	}
	for name, defs := range cases {
		if _, err := NewRotationSystem("bad", defs); !errors.Is(err, ErrBadPieceShape) {
			t.Fatalf("%s: expected ErrBadPieceShape, got %v", name, err)
		}
	}
	if _, err := NewRotationSystem("none", nil); !errors.Is(err, ErrEmptyRotationSystem) {
		t.Fatalf("expected ErrEmptyRotationSystem, got %v", err)
	}
}

func TestSpawnCentresBox(t *testing.T) {
	rs := newTestSystem(t)
	for width, want := range map[int]int{4: 0, 5: 0, 10: 3, 11: 3} {
		if p := rs.Spawn(width, 1); p.X != want || p.Y != 0 || p.O != 0 || p.ID != 1 {
			t.Fatalf("Spawn(%d) = %+v, want x=%d", width, p, want)
		}
	}
}

func TestNewEngineValidatesDimensions(t *testing.T) {
	rs := newTestSystem(t)
	for _, dims := range [][2]int{{3, 10}, {31, 10}, {10, 3}} {
		if _, err := NewEngine(rs, dims[0], dims[1]); !errors.Is(err, ErrBadDimensions) {
			t.Fatalf("NewEngine(%v): expected ErrBadDimensions, got %v", dims, err)
		}
	}
}

func TestNextStateMovesAndBlocks(t *testing.T) {
	e := newTestEngine(t, 4, 6)
	p := e.Spawn(0) // O occupies columns 1-2
	s := GameState{Well: EmptyWell(6), Piece: &p}

	left := e.NextState(s, MoveLeft)
	if left.Piece == nil || left.Piece.X != -1 {
		t.Fatalf("expected O to move left to x=-1, got %+v", left.Piece)
	}
	blocked := e.NextState(left, MoveLeft)
	if blocked.Piece != left.Piece {
		t.Fatalf("blocked move should return the input state")
	}
	rotated := e.NextState(s, MoveRotate)
	if rotated.Piece == nil || rotated.Piece.O != 0 {
		t.Fatalf("single-orientation piece should keep o=0, got %+v", rotated.Piece)
	}
}

func TestNextStateLocksWithoutMutatingInput(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	well := Well{0, 0, 0, 0b0001}
	before := well.Clone()
	p := Piece{ID: 0, X: 0, Y: 1, O: 0} // O on rows 2-3, columns 1-2
	s := GameState{Well: well, Score: 5, Piece: &p}

	s = e.NextState(s, MoveDown)
	if s.Piece != nil {
		t.Fatalf("expected O to lock on the floor, got %+v", s.Piece)
	}
	if !well.Equal(before) {
		t.Fatalf("input well was mutated: %v", well)
	}
	want := Well{0, 0, 0b0110, 0b0111}
	if !s.Well.Equal(want) || s.Score != 5 {
		t.Fatalf("got well %v score %d, want %v score 5", s.Well, s.Score, want)
	}
}

func TestNextStateClearsFullRow(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	well := Well{0, 0, 0, 0b0001}
	p := Piece{ID: 1, X: 0, Y: 1, O: 0} // flat I on row 2, blocked by row 3
	s := e.NextState(GameState{Well: well, Score: 5, Piece: &p}, MoveDown)
	if s.Piece != nil || s.Score != 6 || !s.Well.Equal(Well{0, 0, 0, 0b0001}) {
		t.Fatalf("expected row 2 to clear, got well %v score %d", s.Well, s.Score)
	}
	if !well.Equal(Well{0, 0, 0, 0b0001}) {
		t.Fatalf("input well was mutated: %v", well)
	}
}

func TestLineClearShiftsRowsDown(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	well := Well{0, 0b0100, 0b0110, 0}
	p := Piece{ID: 1, X: 0, Y: 2, O: 0}
	s := e.NextState(GameState{Well: well, Piece: &p}, MoveDown)
	want := Well{0, 0, 0b0100, 0b0110}
	if s.Piece != nil || s.Score != 1 || !s.Well.Equal(want) {
		t.Fatalf("got %v score %d, want %v", s.Well, s.Score, want)
	}
}

func TestCheckWell(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	if err := e.CheckWell(Well{0, 0, 0, 0b1111}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.CheckWell(Well{0, 0, 0}); !errors.Is(err, ErrBadWell) {
		t.Fatalf("expected ErrBadWell for short well, got %v", err)
	}
	if err := e.CheckWell(Well{0, 0, 0, 0b10000}); !errors.Is(err, ErrBadWell) {
		t.Fatalf("expected ErrBadWell for wide row, got %v", err)
	}
}

func TestParseMove(t *testing.T) {
	for _, m := range Moves {
		got, err := ParseMove(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMove(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMove("X"); err == nil {
		t.Fatalf("expected error for unknown move")
	}
}
