package enemy

import (
	"fmt"
	"sync"
	"time"

	"lukechampine.com/frand"

	"github.com/hatetris/go-server/internal/daily"
	"github.com/hatetris/go-server/internal/game"
)

// SeedSize is the seed length the Random enemy requires.
const SeedSize = 32

// Random picks a declared piece uniformly, ignoring the well.
type Random struct {
	mu  sync.Mutex
	rng *frand.RNG
	ids []int

	// set by NewDailyRandom
	salt string
	now  func() time.Time
	day  string
}

// NewRandom seeds a ChaCha12 stream; the same seed yields the same sequence.
func NewRandom(rs RotationSystem, seed []byte) (*Random, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: missing rotation system", ErrInvalidConfig)
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed is %d bytes, want %d", ErrInvalidConfig, len(seed), SeedSize)
	}
	ids := append([]int(nil), rs.PieceIDs()...)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: rotation system declares no pieces", ErrInvalidConfig)
	}
	return &Random{rng: newRNG(seed), ids: ids}, nil
}

// NewDailyRandom seeds from daily.Seed(now(), salt) and re-seeds on the
// first draw after the UTC date changes.
func NewDailyRandom(rs RotationSystem, salt string, now func() time.Time) (*Random, error) {
	if now == nil {
		now = time.Now
	}
	t := now()
	r, err := NewRandom(rs, daily.Seed(t, salt))
	if err != nil {
		return nil, err
	}
	r.salt, r.now, r.day = salt, now, daily.DateKey(t)
	return r, nil
}

func newRNG(seed []byte) *frand.RNG { return frand.NewCustom(seed, 1024, 12) }

func (r *Random) Name() string        { return "random" }
func (r *Random) Deterministic() bool { return false }

func (r *Random) NextPiece(game.Well) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.now != nil {
		t := r.now()
		if day := daily.DateKey(t); day != r.day {
			r.rng, r.day = newRNG(daily.Seed(t, r.salt)), day
		}
	}
	return r.ids[r.rng.Intn(len(r.ids))], nil
}
