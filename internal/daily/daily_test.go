package daily

import (
	"bytes"
	"testing"
	"time"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	tm := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	if got := DateKey(tm); got != "2026-03-01" {
		t.Fatalf("DateKey = %s, want 2026-03-01", got)
	}
}

func TestSeedStableWithinDay(t *testing.T) {
	morning := time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 55, 0, 0, time.UTC)
	a, b := Seed(morning, "salt"), Seed(evening, "salt")
	if len(a) != 32 {
		t.Fatalf("seed length = %d, want 32", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected equal seeds within one day")
	}
}

func TestSeedChangesWithDayAndSalt(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if bytes.Equal(Seed(day, "salt"), Seed(day.AddDate(0, 0, 1), "salt")) {
		t.Fatalf("expected different seeds on different days")
	}
	if bytes.Equal(Seed(day, "salt"), Seed(day, "pepper")) {
		t.Fatalf("expected different seeds for different salts")
	}
}
