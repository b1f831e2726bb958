package enemy

import "fmt"

// PositionKey encodes a falling piece's (x, y, o) as a single integer.
//
//	x in [-3, wellWidth-1]  -> wellWidth+3 values
//	y in [0, wellDepth+2]   -> wellDepth+3 values
//	o in [0, 3]             -> 4 values
//
// The encoding is mixed-radix over those ranges, so it is injective inside
// them. Anything outside is an encoding bug and returns ErrPositionOutOfRange.
func PositionKey(x, y, o, wellWidth, wellDepth int) (int, error) {
	if x < -3 || x > wellWidth-1 || y < 0 || y > wellDepth+2 || o < 0 || o > 3 {
		return 0, fmt.Errorf("%w: x=%d y=%d o=%d in %dx%d well", ErrPositionOutOfRange, x, y, o, wellWidth, wellDepth)
	}
	return ((x+3)*(wellDepth+3)+y)*4 + o, nil
}
