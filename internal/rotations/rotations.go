// internal/rotations/rotations.go
//
// Loads the rotation system (piece catalogue) the server plays with.
//
// Behavior (Load):
//   1. If a path is given (ROTATION_SYSTEM_FILE), read that JSON file.
//   2. Otherwise fall back to the embedded "hatetris" catalogue.
//
// File format:
//   {
//     "name": "hatetris",
//     "pieces": [
//       {"name": "S", "rows": ["....", ".##.", "##..", "...."], "orientations": 4},
//       ...
//     ]
//   }
//
// Constraints:
//   • Every piece is a 4x4 box of '#' and '.' cells with at least one '#'.
//   • "orientations" is 1, 2 or 4 (0 or absent means 4).
//   • Piece order in the file is the piece id order, and the tie-break order
//     of every enemy.

package rotations

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hatetris/go-server/assets"
	"github.com/hatetris/go-server/internal/game"
)

type fileFormat struct {
	Name   string          `json:"name"`
	Pieces []game.PieceDef `json:"pieces"`
}

// Load reads the rotation system at path, or the embedded default when path
// is empty.
func Load(path string) (*game.RotationSystem, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = assets.RotationSystem(assets.DefaultRotationSystem)
	}
	if err != nil {
		return nil, fmt.Errorf("rotations: read: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a rotation system from its JSON form.
func Parse(raw []byte) (*game.RotationSystem, error) {
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("rotations: decode: %w", err)
	}
	rs, err := game.NewRotationSystem(f.Name, f.Pieces)
	if err != nil {
		return nil, fmt.Errorf("rotations: %s: %w", f.Name, err)
	}
	return rs, nil
}
