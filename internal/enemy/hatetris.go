package enemy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hatetris/go-server/internal/game"
)

const (
	// MaxSearchDepth caps lookahead. Cost grows as
	// (pieces x landings per piece) ^ depth.
	MaxSearchDepth = 3

	// MaxWellDepth keeps every lookahead contribution (rating/100) below 1,
	// so deeper plies only ever break ties between equal immediate ratings.
	MaxWellDepth = 98

	maxWellWidth = 32
)

// Config is the immutable context every Hatetris operation runs in.
type Config struct {
	Name        string
	Rotations   RotationSystem
	Transition  Transition
	WellWidth   int
	WellDepth   int
	SearchDepth int
}

// Hatetris hands out the piece selected by a depth-limited search over all
// landings of all pieces. It keeps no state between calls and is safe for
// concurrent use as long as its collaborators are.
type Hatetris struct {
	cfg      Config
	pieceIDs []int
}

// Choice is a piece id with the rating that selected it.
type Choice struct {
	PieceID int     `json:"pieceId"`
	Rating  float64 `json:"rating"`
}

func NewHatetris(cfg Config) (*Hatetris, error) {
	switch {
	case cfg.Rotations == nil || cfg.Transition == nil:
		return nil, fmt.Errorf("%w: missing rotation system or transition", ErrInvalidConfig)
	case cfg.WellWidth < 1 || cfg.WellWidth > maxWellWidth:
		return nil, fmt.Errorf("%w: well width %d", ErrInvalidConfig, cfg.WellWidth)
	case cfg.WellDepth < 1 || cfg.WellDepth > MaxWellDepth:
		return nil, fmt.Errorf("%w: well depth %d not in [1,%d]", ErrInvalidConfig, cfg.WellDepth, MaxWellDepth)
	case cfg.SearchDepth < 0 || cfg.SearchDepth > MaxSearchDepth:
		return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrSearchDepth, cfg.SearchDepth, MaxSearchDepth)
	}
	ids := append([]int(nil), cfg.Rotations.PieceIDs()...)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: rotation system declares no pieces", ErrInvalidConfig)
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("hatetris-%d", cfg.SearchDepth)
	}
	return &Hatetris{cfg: cfg, pieceIDs: ids}, nil
}

// Hatetris0 looks at immediate danger only.
func Hatetris0(rs RotationSystem, tr Transition, wellWidth, wellDepth int) (*Hatetris, error) {
	return NewHatetris(Config{Rotations: rs, Transition: tr, WellWidth: wellWidth, WellDepth: wellDepth, SearchDepth: 0})
}

// Hatetris1 adds one ply of lookahead.
func Hatetris1(rs RotationSystem, tr Transition, wellWidth, wellDepth int) (*Hatetris, error) {
	return NewHatetris(Config{Rotations: rs, Transition: tr, WellWidth: wellWidth, WellDepth: wellDepth, SearchDepth: 1})
}

func (h *Hatetris) Name() string        { return h.cfg.Name }
func (h *Hatetris) Deterministic() bool { return true }
func (h *Hatetris) SearchDepth() int    { return h.cfg.SearchDepth }
func (h *Hatetris) PieceIDs() []int     { return append([]int(nil), h.pieceIDs...) }

// ChooseNextPiece returns the piece selected for w at the configured depth.
func (h *Hatetris) ChooseNextPiece(w game.Well) (int, error) {
	c, err := h.Choose(context.Background(), w)
	if err != nil {
		return 0, err
	}
	return c.PieceID, nil
}

// Choose is ChooseNextPiece with the selecting rating, abandoning the search
// with ctx.Err() once ctx is done.
func (h *Hatetris) Choose(ctx context.Context, w game.Well) (Choice, error) {
	c, err := h.WorstPieceContext(ctx, w, h.cfg.SearchDepth)
	if err != nil {
		return Choice{}, err
	}
	log.Debug().
		Str("enemy", h.cfg.Name).
		Int("depth", h.cfg.SearchDepth).
		Int("piece", c.PieceID).
		Float64("rating", c.Rating).
		Msg("chose piece")
	return c, nil
}

// NextPiece implements Enemy and game.PieceChooser.
func (h *Hatetris) NextPiece(w game.Well) (int, error) { return h.ChooseNextPiece(w) }

// DangerFreeRows counts the empty rows above the highest filled cell.
// Larger is safer; an empty well scores its full depth.
func DangerFreeRows(w game.Well) int {
	for row, bits := range w {
		if bits != 0 {
			return row
		}
	}
	return len(w)
}

// Rate scores a well: immediate danger in the integer part, the next ply's
// selected rating scaled by 1/100 in the fractional part.
func (h *Hatetris) Rate(w game.Well, depthRemaining int) (float64, error) {
	if err := h.checkWell(w); err != nil {
		return 0, err
	}
	if err := checkDepth(depthRemaining); err != nil {
		return 0, err
	}
	return h.rate(context.Background(), w, depthRemaining)
}

// BestRatingForPiece is the best rating the player can reach by placing
// pieceID anywhere it can land.
func (h *Hatetris) BestRatingForPiece(w game.Well, pieceID, depthRemaining int) (float64, error) {
	return h.BestRatingForPieceContext(context.Background(), w, pieceID, depthRemaining)
}

// BestRatingForPieceContext is BestRatingForPiece bounded by ctx.
func (h *Hatetris) BestRatingForPieceContext(ctx context.Context, w game.Well, pieceID, depthRemaining int) (float64, error) {
	if err := h.checkWell(w); err != nil {
		return 0, err
	}
	if err := h.checkPiece(pieceID); err != nil {
		return 0, err
	}
	if err := checkDepth(depthRemaining); err != nil {
		return 0, err
	}
	return h.bestRatingForPiece(ctx, w, pieceID, depthRemaining)
}

// WorstPiece rates every declared piece and selects one by rating.
func (h *Hatetris) WorstPiece(w game.Well, depthRemaining int) (Choice, error) {
	return h.WorstPieceContext(context.Background(), w, depthRemaining)
}

// WorstPieceContext is WorstPiece bounded by ctx.
func (h *Hatetris) WorstPieceContext(ctx context.Context, w game.Well, depthRemaining int) (Choice, error) {
	if err := h.checkWell(w); err != nil {
		return Choice{}, err
	}
	if err := checkDepth(depthRemaining); err != nil {
		return Choice{}, err
	}
	return h.worstPiece(ctx, w, depthRemaining)
}

func (h *Hatetris) rate(ctx context.Context, w game.Well, depthRemaining int) (float64, error) {
	rating := float64(DangerFreeRows(w))
	if depthRemaining == 0 {
		return rating, nil
	}
	next, err := h.worstPiece(ctx, w, depthRemaining-1)
	if err != nil {
		return 0, err
	}
	return rating + next.Rating/100, nil
}

func (h *Hatetris) bestRatingForPiece(ctx context.Context, w game.Well, pieceID, depthRemaining int) (float64, error) {
	landed, err := h.landings(w, pieceID)
	if err != nil {
		return 0, err
	}
	best := 0.0
	for i, s := range landed {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		r, err := h.rate(ctx, s.Well, depthRemaining)
		if err != nil {
			return 0, err
		}
		if i == 0 || r > best {
			best = r
		}
	}
	return best, nil
}

// worstPiece orders candidates by descending rating and takes the first;
// the earliest declared piece wins ties. This selects the piece whose best
// landing is highest rated.
func (h *Hatetris) worstPiece(ctx context.Context, w game.Well, depthRemaining int) (Choice, error) {
	var selected Choice
	for i, id := range h.pieceIDs {
		if err := ctx.Err(); err != nil {
			return Choice{}, err
		}
		r, err := h.bestRatingForPiece(ctx, w, id, depthRemaining)
		if err != nil {
			return Choice{}, fmt.Errorf("piece %d: %w", id, err)
		}
		if i == 0 || r > selected.Rating {
			selected = Choice{PieceID: id, Rating: r}
		}
	}
	return selected, nil
}

func (h *Hatetris) checkWell(w game.Well) error {
	if len(w) != h.cfg.WellDepth {
		return fmt.Errorf("%w: %d rows, want %d", ErrWellShape, len(w), h.cfg.WellDepth)
	}
	if h.cfg.WellWidth >= maxWellWidth {
		return nil
	}
	for i, row := range w {
		if row>>uint(h.cfg.WellWidth) != 0 {
			return fmt.Errorf("%w: row %d wider than %d columns", ErrWellShape, i, h.cfg.WellWidth)
		}
	}
	return nil
}

func (h *Hatetris) checkPiece(pieceID int) error {
	for _, id := range h.pieceIDs {
		if id == pieceID {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownPiece, pieceID)
}

func checkDepth(depth int) error {
	if depth < 0 || depth > MaxSearchDepth {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrSearchDepth, depth, MaxSearchDepth)
	}
	return nil
}
