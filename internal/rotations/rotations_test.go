package rotations

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hatetris/go-server/internal/game"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	rs, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"S", "Z", "O", "I", "L", "J", "T"}
	if rs.NumPieces() != len(want) {
		t.Fatalf("got %d pieces, want %d", rs.NumPieces(), len(want))
	}
	for id, name := range want {
		if got := rs.PieceName(id); got != name {
			t.Fatalf("piece %d = %q, want %q", id, got, name)
		}
		if rs.NumOrientations(id) != 4 {
			t.Fatalf("piece %s: %d orientations", name, rs.NumOrientations(id))
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bar.json")
	raw := `{"name":"bars","pieces":[{"name":"I","rows":["....","####","....","...."],"orientations":2}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rs, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rs.Name != "bars" || rs.NumPieces() != 1 || rs.NumOrientations(0) != 2 {
		t.Fatalf("unexpected rotation system %q with %d pieces", rs.Name, rs.NumPieces())
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := Parse([]byte(`{"name":"empty","pieces":[]}`)); !errors.Is(err, game.ErrEmptyRotationSystem) {
		t.Fatalf("expected ErrEmptyRotationSystem, got %v", err)
	}
	bad := `{"name":"bad","pieces":[{"name":"X","rows":["....","....","....","...."]}]}`
	if _, err := Parse([]byte(bad)); !errors.Is(err, game.ErrBadPieceShape) {
		t.Fatalf("expected ErrBadPieceShape, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
}
