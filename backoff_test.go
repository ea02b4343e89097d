package llmretry

import (
	"testing"
	"time"
)

func TestFullJitterBackoffCeilingGrowth(t *testing.T) {
	b := FullJitterBackoff{Min: 4 * time.Second, Max: 10 * time.Second}
	maxDraw := func() float64 { return 0.999999 }

	tests := []struct {
		attempt int
		ceiling time.Duration
	}{
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 10 * time.Second}, // 16s exponential, capped at Max
		{4, 10 * time.Second},
	}

	for _, tt := range tests {
		got := b.Delay(tt.attempt, maxDraw)
		if got < b.Min || got > tt.ceiling {
			t.Fatalf("Delay(%d) = %v, want in [%v, %v]", tt.attempt, got, b.Min, tt.ceiling)
		}
	}
}

func TestFullJitterBackoffFloor(t *testing.T) {
	b := FullJitterBackoff{Min: 4 * time.Second, Max: 10 * time.Second}
	zeroDraw := func() float64 { return 0 }

	for attempt := 1; attempt <= 6; attempt++ {
		if got := b.Delay(attempt, zeroDraw); got != b.Min {
			t.Fatalf("Delay(%d) = %v, want floor %v", attempt, got, b.Min)
		}
	}
}

func TestFullJitterBackoffFirstAttemptIsFloor(t *testing.T) {
	// The ceiling for attempt 1 equals Min, so jitter has no room.
	b := FullJitterBackoff{Min: 2 * time.Second, Max: 30 * time.Second}

	if got := b.Delay(1, func() float64 { return 0.7 }); got != 2*time.Second {
		t.Fatalf("Delay(1) = %v, want 2s", got)
	}
}

func TestFullJitterBackoffInvalidAttempt(t *testing.T) {
	b := FullJitterBackoff{Min: 4 * time.Second, Max: 10 * time.Second}

	if got := b.Delay(0, func() float64 { return 0 }); got != b.Min {
		t.Fatalf("Delay(0) = %v, want %v", got, b.Min)
	}
	if got := b.Delay(-3, func() float64 { return 0 }); got != b.Min {
		t.Fatalf("Delay(-3) = %v, want %v", got, b.Min)
	}
}

func TestFullJitterBackoffLargeAttemptStaysCapped(t *testing.T) {
	// Doubling 4s sixty times overflows int64; the ceiling must stick to Max.
	b := FullJitterBackoff{Min: 4 * time.Second, Max: 10 * time.Second}

	got := b.Delay(60, func() float64 { return 0.999999 })
	if got < b.Min || got > b.Max {
		t.Fatalf("Delay(60) = %v, want in [%v, %v]", got, b.Min, b.Max)
	}
}

func TestFullJitterBackoffNilRandFloat(t *testing.T) {
	b := FullJitterBackoff{Min: 4 * time.Second, Max: 10 * time.Second}

	got := b.Delay(2, nil)
	if got < b.Min || got > 8*time.Second {
		t.Fatalf("Delay(2) = %v, want in [4s, 8s]", got)
	}
}
