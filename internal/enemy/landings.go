package enemy

import (
	"fmt"

	"github.com/hatetris/go-server/internal/game"
)

// EnumerateLandings returns one locked GameState for every way pieceID can
// come to rest in w. Landings are not deduplicated by resulting well: two
// placements that lock into identical wells are both returned.
func (h *Hatetris) EnumerateLandings(w game.Well, pieceID int) ([]game.GameState, error) {
	if err := h.checkWell(w); err != nil {
		return nil, err
	}
	if err := h.checkPiece(pieceID); err != nil {
		return nil, err
	}
	return h.landings(w, pieceID)
}

func (h *Hatetris) landings(w game.Well, pieceID int) ([]game.GameState, error) {
	piece := h.cfg.Rotations.Spawn(h.cfg.WellWidth, pieceID)

	// Drop straight through open rows; no other move leads anywhere new
	// while the row below the piece box is empty.
	for piece.Y >= 0 && piece.Y+game.BoxSize < h.cfg.WellDepth && w[piece.Y+game.BoxSize] == 0 {
		next := h.cfg.Transition.NextState(game.GameState{Well: w, Piece: &piece}, game.MoveDown)
		if next.Piece == nil || next.Piece.Y != piece.Y+1 {
			break
		}
		piece = *next.Piece
	}

	key, err := h.positionKey(piece)
	if err != nil {
		return nil, err
	}
	seen := map[int]game.Piece{key: piece}
	queue := []game.Piece{piece}

	var landed []game.GameState
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, m := range game.Moves {
			next := h.cfg.Transition.NextState(game.GameState{Well: w, Piece: &current}, m)
			if next.Piece == nil {
				landed = append(landed, next)
				continue
			}

			moved := *next.Piece
			k, err := h.positionKey(moved)
			if err != nil {
				return nil, err
			}
			if prev, ok := seen[k]; ok {
				if prev.X != moved.X || prev.Y != moved.Y || prev.O != moved.O {
					return nil, fmt.Errorf("%w: %+v and %+v share key %d", ErrPositionCollision, prev, moved, k)
				}
				continue
			}
			seen[k] = moved
			queue = append(queue, moved)
		}
	}

	if len(landed) == 0 {
		return nil, fmt.Errorf("%w: piece %d", ErrNoLandings, pieceID)
	}
	return landed, nil
}

func (h *Hatetris) positionKey(p game.Piece) (int, error) {
	return PositionKey(p.X, p.Y, p.O, h.cfg.WellWidth, h.cfg.WellDepth)
}
