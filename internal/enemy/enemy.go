// Package enemy picks the next piece a player receives.
//
// The Hatetris enemy searches every way each piece can land and hands out
// a piece chosen by a depth-limited two-player evaluation of the well.
// The Random enemy is a baseline that ignores the well.
package enemy

import (
	"errors"

	"github.com/hatetris/go-server/internal/game"
)

var (
	ErrInvalidConfig      = errors.New("invalid enemy config")
	ErrWellShape          = errors.New("well does not match configured dimensions")
	ErrUnknownPiece       = errors.New("unknown piece id")
	ErrSearchDepth        = errors.New("search depth out of range")
	ErrNoLandings         = errors.New("piece has no landing")
	ErrPositionOutOfRange = errors.New("piece position out of range")
	ErrPositionCollision  = errors.New("position key collision")
	ErrUnknownEnemy       = errors.New("unknown enemy")
)

// RotationSystem is the part of a piece catalogue the enemies consume.
// PieceIDs must return ids in a fixed declaration order.
type RotationSystem interface {
	PieceIDs() []int
	Spawn(wellWidth, pieceID int) game.Piece
}

// Transition applies one move to a game state. Implementations must not
// write to the input well.
type Transition interface {
	NextState(s game.GameState, m game.Move) game.GameState
}

// Enemy chooses the id of the next piece for a well.
type Enemy interface {
	Name() string
	// Deterministic reports whether equal wells always yield equal pieces.
	Deterministic() bool
	NextPiece(w game.Well) (int, error)
}
