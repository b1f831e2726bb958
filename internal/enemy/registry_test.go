package enemy

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/hatetris/go-server/internal/daily"
	"github.com/hatetris/go-server/internal/game"
)

func TestRandomIsReproducibleFromSeed(t *testing.T) {
	rs := newDefaultEngine(t).Rotations()
	seed := bytes.Repeat([]byte{7}, SeedSize)

	a, err := NewRandom(rs, seed)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	b, err := NewRandom(rs, seed)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	well := game.EmptyWell(20)
	for i := 0; i < 50; i++ {
		x, _ := a.NextPiece(well)
		y, _ := b.NextPiece(well)
		if x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
		if !rs.HasPiece(x) {
			t.Fatalf("draw %d: undeclared piece %d", i, x)
		}
	}
	if a.Deterministic() {
		t.Fatalf("random enemy must not report deterministic")
	}
}

func TestDailyRandomReseedsWhenDateChanges(t *testing.T) {
	rs := newDefaultEngine(t).Rotations()
	well := game.EmptyWell(20)
	day1 := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Hour)

	clock := day1
	r, err := NewDailyRandom(rs, "salt", func() time.Time { return clock })
	if err != nil {
		t.Fatalf("daily random: %v", err)
	}
	ref1, _ := NewRandom(rs, daily.Seed(day1, "salt"))
	ref2, _ := NewRandom(rs, daily.Seed(day2, "salt"))

	for i := 0; i < 20; i++ {
		got, _ := r.NextPiece(well)
		want, _ := ref1.NextPiece(well)
		if got != want {
			t.Fatalf("day 1 draw %d: %d != %d", i, got, want)
		}
	}
	clock = day2
	for i := 0; i < 20; i++ {
		got, _ := r.NextPiece(well)
		want, _ := ref2.NextPiece(well)
		if got != want {
			t.Fatalf("day 2 draw %d: %d != %d", i, got, want)
		}
	}
}

func TestRandomRejectsShortSeed(t *testing.T) {
	rs := newDefaultEngine(t).Rotations()
	if _, err := NewRandom(rs, []byte("short")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	e := newTwoPieceEngine(t, 4, 6)
	h0 := newHatetris(t, e, 0)
	h1 := newHatetris(t, e, 1)

	r, err := NewRegistry(h1, h0)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if names := r.Names(); len(names) != 2 || names[0] != "hatetris-1" || names[1] != "hatetris-0" {
		t.Fatalf("unexpected names %v", names)
	}
	got, err := r.Get("hatetris-0")
	if err != nil || got != Enemy(h0) {
		t.Fatalf("Get(hatetris-0) = %v, %v", got, err)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrUnknownEnemy) {
		t.Fatalf("expected ErrUnknownEnemy, got %v", err)
	}
	if err := r.Register(newHatetris(t, e, 0)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}
