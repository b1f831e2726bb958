package assets

import (
	"embed"
	"path"
)

//go:embed rotation-systems/*.json
var FS embed.FS

// DefaultRotationSystem names the rotation system used when none is configured.
const DefaultRotationSystem = "hatetris"

// RotationSystem returns the raw JSON of an embedded rotation system.
func RotationSystem(name string) ([]byte, error) {
	return FS.ReadFile(path.Join("rotation-systems", name+".json"))
}
