// internal/game/session.go
//
// Session is the host game loop: it owns the current GameState, feeds
// player moves to the Engine and, whenever a piece locks, asks a
// PieceChooser which piece comes next.

package game

import (
	"errors"
	"fmt"
)

var ErrGameOver = errors.New("game over")

// PieceChooser picks the id of the next piece for a well.
type PieceChooser interface {
	NextPiece(w Well) (int, error)
}

type Session struct {
	engine  *Engine
	chooser PieceChooser
	state   GameState
	over    bool
	placed  int
}

// NewSession starts a game on an empty well with the chooser's first piece.
func NewSession(engine *Engine, chooser PieceChooser) (*Session, error) {
	s := &Session{
		engine:  engine,
		chooser: chooser,
		state:   GameState{Well: EmptyWell(engine.Depth())},
	}
	if err := s.spawnNext(); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply feeds one move to the falling piece.
func (s *Session) Apply(m Move) error {
	if s.over {
		return ErrGameOver
	}
	next := s.engine.NextState(s.state, m)
	s.state = next
	if !next.Locked() {
		return nil
	}
	s.placed++
	return s.spawnNext()
}

func (s *Session) spawnNext() error {
	id, err := s.chooser.NextPiece(s.state.Well)
	if err != nil {
		return fmt.Errorf("choose piece: %w", err)
	}
	if !s.engine.Rotations().HasPiece(id) {
		return fmt.Errorf("choose piece: unknown piece id %d", id)
	}
	p := s.engine.Spawn(id)
	if !s.engine.Fits(s.state.Well, p) {
		s.over = true
		return nil
	}
	s.state.Piece = &p
	return nil
}

func (s *Session) State() GameState  { return s.state }
func (s *Session) Over() bool        { return s.over }
func (s *Session) PiecesPlaced() int { return s.placed }
