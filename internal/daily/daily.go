// internal/daily/daily.go
//
// Deterministic per-day seeds. Every process using the same salt derives the
// same seed for a calendar day (UTC). The daily random enemy re-seeds when
// the date key changes, so it replays one piece sequence per day.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns HMAC-SHA256(salt, DateKey(t)), 32 bytes.
func Seed(t time.Time, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	return h.Sum(nil)
}
