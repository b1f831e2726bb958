// internal/httpserver/routes_v1.go
//
// Enemy endpoints mounted under /v1:
//   - GET  /v1/rotation-system → piece catalogue and well size
//   - GET  /v1/enemies         → registered enemy names and the default
//   - POST /v1/next-piece      → the piece an enemy hands out for a well
//   - POST /v1/ratings         → per-piece best ratings at a search depth
//   - POST /v1/landings        → every way a piece can come to rest
//
// Choices of deterministic enemies are cached by (enemy, well). Ratings are
// computed one goroutine per piece. Searches stop once the request context
// is done (REQUEST_TIMEOUT_SECONDS).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hatetris/go-server/internal/enemy"
	"github.com/hatetris/go-server/internal/game"
	"github.com/hatetris/go-server/internal/store"
)

func (s *Server) mountV1(r chi.Router) {
	r.Get("/rotation-system", s.handleRotationSystem)
	r.Get("/enemies", s.handleEnemies)
	r.Post("/next-piece", s.handleNextPiece)
	r.Post("/ratings", s.handleRatings)
	r.Post("/landings", s.handleLandings)
}

type pieceRes struct {
	ID           int                    `json:"id"`
	Name         string                 `json:"name"`
	Orientations [][game.BoxSize]string `json:"orientations"`
}

type rotationSystemRes struct {
	Name      string     `json:"name"`
	WellWidth int        `json:"wellWidth"`
	WellDepth int        `json:"wellDepth"`
	Pieces    []pieceRes `json:"pieces"`
}

func (s *Server) handleRotationSystem(w http.ResponseWriter, r *http.Request) {
	rs := s.engine.Rotations()
	res := rotationSystemRes{Name: rs.Name, WellWidth: s.engine.Width(), WellDepth: s.engine.Depth()}
	for _, id := range rs.PieceIDs() {
		res.Pieces = append(res.Pieces, pieceRes{ID: id, Name: rs.PieceName(id), Orientations: rs.Boxes(id)})
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleEnemies(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"enemies": s.enemies.Names(),
		"default": s.cfg.DefaultEnemy,
	})
}

type nextPieceReq struct {
	Enemy string    `json:"enemy"`
	Well  game.Well `json:"well"`
}

type nextPieceRes struct {
	Enemy   string     `json:"enemy"`
	PieceID int        `json:"pieceId"`
	Piece   game.Piece `json:"piece"`
	Rating  float64    `json:"rating,omitempty"`
	Cached  bool       `json:"cached"`
}

// handleNextPiece asks an enemy for the next piece and returns it spawned.
func (s *Server) handleNextPiece(w http.ResponseWriter, r *http.Request) {
	var req nextPieceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	name := req.Enemy
	if name == "" {
		name = s.cfg.DefaultEnemy
	}
	e, err := s.enemies.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.engine.CheckWell(req.Well); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := store.Key(name, req.Well)
	if e.Deterministic() {
		if hit, err := s.store.Get(r.Context(), key); err == nil {
			_ = json.NewEncoder(w).Encode(nextPieceRes{
				Enemy: name, PieceID: hit.PieceID, Piece: s.engine.Spawn(hit.PieceID), Rating: hit.Rating, Cached: true,
			})
			return
		}
	}

	c, err := choose(r.Context(), e, req.Well)
	if err != nil {
		s.enemyError(w, name, err)
		return
	}
	if e.Deterministic() {
		if err := s.store.Save(r.Context(), key, store.Entry{Enemy: name, PieceID: c.PieceID, Rating: c.Rating}); err != nil {
			log.Warn().Err(err).Str("enemy", name).Msg("cache choice")
		}
	}
	_ = json.NewEncoder(w).Encode(nextPieceRes{Enemy: name, PieceID: c.PieceID, Piece: s.engine.Spawn(c.PieceID), Rating: c.Rating})
}

// choose runs a Hatetris search under ctx so it keeps its rating; other
// enemies only report a piece id.
func choose(ctx context.Context, e enemy.Enemy, w game.Well) (enemy.Choice, error) {
	if h, ok := e.(*enemy.Hatetris); ok {
		return h.Choose(ctx, w)
	}
	id, err := e.NextPiece(w)
	return enemy.Choice{PieceID: id}, err
}

type ratingsReq struct {
	Well  game.Well `json:"well"`
	Depth int       `json:"depth"`
}

type pieceRating struct {
	PieceID int     `json:"pieceId"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
}

type ratingsRes struct {
	Depth    int           `json:"depth"`
	Ratings  []pieceRating `json:"ratings"`
	Selected enemy.Choice  `json:"selected"`
}

// handleRatings rates every piece for a well. Selection matches the Hatetris
// enemy: highest rating, earliest declared piece on ties.
func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	var req ratingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Depth < 0 || req.Depth > s.cfg.MaxSearchDepth {
		writeError(w, http.StatusBadRequest, enemy.ErrSearchDepth.Error())
		return
	}
	if err := s.engine.CheckWell(req.Well); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h, err := s.evaluator(req.Depth)
	if err != nil {
		s.enemyError(w, "ratings", err)
		return
	}

	ids := h.PieceIDs()
	ratings := make([]pieceRating, len(ids))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			rating, err := h.BestRatingForPieceContext(ctx, req.Well, id, req.Depth)
			if err != nil {
				return err
			}
			ratings[i] = pieceRating{PieceID: id, Name: s.engine.Rotations().PieceName(id), Rating: rating}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.enemyError(w, h.Name(), err)
		return
	}

	res := ratingsRes{Depth: req.Depth, Ratings: ratings}
	for i, pr := range ratings {
		if i == 0 || pr.Rating > res.Selected.Rating {
			res.Selected = enemy.Choice{PieceID: pr.PieceID, Rating: pr.Rating}
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

type landingsReq struct {
	Well    game.Well `json:"well"`
	PieceID int       `json:"pieceId"`
}

type landingRes struct {
	Well  game.Well `json:"well"`
	Score int       `json:"score"`
}

func (s *Server) handleLandings(w http.ResponseWriter, r *http.Request) {
	var req landingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.engine.CheckWell(req.Well); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h, err := s.evaluator(0)
	if err != nil {
		s.enemyError(w, "landings", err)
		return
	}
	landed, err := h.EnumerateLandings(req.Well, req.PieceID)
	if err != nil {
		s.enemyError(w, h.Name(), err)
		return
	}
	out := make([]landingRes, 0, len(landed))
	for _, st := range landed {
		out = append(out, landingRes{Well: st.Well, Score: st.Score})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// evaluator builds a Hatetris enemy over the server's engine at depth.
func (s *Server) evaluator(depth int) (*enemy.Hatetris, error) {
	return enemy.NewHatetris(enemy.Config{
		Rotations:   s.engine.Rotations(),
		Transition:  s.engine,
		WellWidth:   s.engine.Width(),
		WellDepth:   s.engine.Depth(),
		SearchDepth: depth,
	})
}

// enemyError maps enemy errors onto status codes. Caller mistakes are 400,
// an expired request is 504 and a dropped one 503. Anything else means a
// collaborator broke its contract and is logged.
func (s *Server) enemyError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Str("enemy", name).Msg("search timed out")
		writeError(w, http.StatusGatewayTimeout, "search_timeout")
	case errors.Is(err, context.Canceled):
		log.Debug().Str("enemy", name).Msg("search canceled")
		writeError(w, http.StatusServiceUnavailable, "search_canceled")
	case errors.Is(err, enemy.ErrWellShape),
		errors.Is(err, enemy.ErrUnknownPiece),
		errors.Is(err, enemy.ErrSearchDepth):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, enemy.ErrUnknownEnemy):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Str("enemy", name).Msg("enemy failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
