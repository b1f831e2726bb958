// internal/game/rotation.go
//
// Rotation systems: the catalogue of piece shapes and their orientations.
//
// Each piece is declared as a 4x4 box of rows ('#' filled, '.' empty).
// Orientation 0 is the declared box; each further orientation is the
// previous one rotated clockwise inside the box. A piece may declare 1, 2
// or 4 distinct orientations; orientation indices are always in [0,3] and
// are reduced modulo the declared count when looked up.
//
// Piece ids are the declaration order (0..n-1). That order is also the
// tie-break order the enemies rely on, so it must be preserved.

package game

import (
	"errors"
	"fmt"
)

// BoxSize is the edge of the bounding box every piece is declared in.
const BoxSize = 4

// Orientation is one rotation of a piece, pre-digested for collision tests.
// Rows[r] has bit c set when box cell (r, c) is filled.
type Orientation struct {
	Rows [BoxSize]uint32
	XMin int
	XDim int
	YMin int
	YDim int
}

// PieceDef declares a piece for NewRotationSystem.
type PieceDef struct {
	Name         string          `json:"name"`
	Rows         [BoxSize]string `json:"rows"`
	Orientations int             `json:"orientations"`
}

type pieceShape struct {
	name         string
	orientations []Orientation
}

// RotationSystem is an immutable piece catalogue.
type RotationSystem struct {
	Name   string
	pieces []pieceShape
}

var (
	ErrEmptyRotationSystem = errors.New("rotation system declares no pieces")
	ErrBadPieceShape       = errors.New("bad piece shape")
)

// NewRotationSystem validates defs and derives every orientation.
func NewRotationSystem(name string, defs []PieceDef) (*RotationSystem, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyRotationSystem
	}
	rs := &RotationSystem{Name: name, pieces: make([]pieceShape, 0, len(defs))}
	for i, def := range defs {
		count := def.Orientations
		if count == 0 {
			count = 4
		}
		if count != 1 && count != 2 && count != 4 {
			return nil, fmt.Errorf("piece %d (%s): %w: %d orientations", i, def.Name, ErrBadPieceShape, def.Orientations)
		}
		grid, err := parseBox(def.Rows)
		if err != nil {
			return nil, fmt.Errorf("piece %d (%s): %w", i, def.Name, err)
		}
		shape := pieceShape{name: def.Name, orientations: make([]Orientation, 0, count)}
		for o := 0; o < count; o++ {
			shape.orientations = append(shape.orientations, digest(grid))
			grid = rotateClockwise(grid)
		}
		rs.pieces = append(rs.pieces, shape)
	}
	return rs, nil
}

// PieceIDs returns every piece id in declaration order.
func (rs *RotationSystem) PieceIDs() []int {
	ids := make([]int, len(rs.pieces))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// NumPieces reports how many pieces are declared.
func (rs *RotationSystem) NumPieces() int { return len(rs.pieces) }

// HasPiece reports whether id names a declared piece.
func (rs *RotationSystem) HasPiece(id int) bool { return id >= 0 && id < len(rs.pieces) }

// PieceName returns the declared name of a piece, or "" for unknown ids.
func (rs *RotationSystem) PieceName(id int) string {
	if !rs.HasPiece(id) {
		return ""
	}
	return rs.pieces[id].name
}

// NumOrientations returns the number of distinct orientations of a piece.
func (rs *RotationSystem) NumOrientations(id int) int {
	return len(rs.pieces[id].orientations)
}

// Orientation returns orientation o of piece id. o is reduced modulo the
// number of declared orientations.
func (rs *RotationSystem) Orientation(id, o int) Orientation {
	ors := rs.pieces[id].orientations
	return ors[o%len(ors)]
}

// Spawn places a fresh piece centred at the top of a well of the given width.
func (rs *RotationSystem) Spawn(wellWidth, pieceID int) Piece {
	return Piece{ID: pieceID, X: floorDiv(wellWidth-BoxSize, 2), Y: 0, O: 0}
}

// Boxes renders every orientation of a piece back into '#'/'.' rows.
func (rs *RotationSystem) Boxes(id int) [][BoxSize]string {
	ors := rs.pieces[id].orientations
	out := make([][BoxSize]string, len(ors))
	for i, or := range ors {
		for r := 0; r < BoxSize; r++ {
			line := make([]byte, BoxSize)
			for c := 0; c < BoxSize; c++ {
				line[c] = '.'
				if or.Rows[r]&(1<<uint(c)) != 0 {
					line[c] = '#'
				}
			}
			out[i][r] = string(line)
		}
	}
	return out
}

type box [BoxSize][BoxSize]bool

func parseBox(rows [BoxSize]string) (box, error) {
	var g box
	filled := 0
	for r, line := range rows {
		if len(line) != BoxSize {
			return g, fmt.Errorf("%w: row %d is %q, want %d cells", ErrBadPieceShape, r, line, BoxSize)
		}
		for c := 0; c < BoxSize; c++ {
			switch line[c] {
			case '#':
				g[r][c] = true
				filled++
			case '.':
			default:
				return g, fmt.Errorf("%w: row %d has %q", ErrBadPieceShape, r, line[c])
			}
		}
	}
	if filled == 0 {
		return g, fmt.Errorf("%w: no filled cells", ErrBadPieceShape)
	}
	return g, nil
}

func rotateClockwise(g box) box {
	var out box
	for r := 0; r < BoxSize; r++ {
		for c := 0; c < BoxSize; c++ {
			out[r][c] = g[BoxSize-1-c][r]
		}
	}
	return out
}

func digest(g box) Orientation {
	var o Orientation
	xMin, xMax, yMin, yMax := BoxSize, -1, BoxSize, -1
	for r := 0; r < BoxSize; r++ {
		for c := 0; c < BoxSize; c++ {
			if !g[r][c] {
				continue
			}
			o.Rows[r] |= 1 << uint(c)
			xMin, xMax = min(xMin, c), max(xMax, c)
			yMin, yMax = min(yMin, r), max(yMax, r)
		}
	}
	o.XMin, o.XDim = xMin, xMax-xMin+1
	o.YMin, o.YDim = yMin, yMax-yMin+1
	return o
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
