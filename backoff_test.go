package await

import (
	"testing"
	"time"
)

func TestBackoffDelaySchedule(t *testing.T) {
	tests := []struct {
		name    string
		initial time.Duration
		factor  float64
		attempt int
		want    time.Duration
	}{
		{"first", time.Second, 2.0, 0, 1 * time.Second},
		{"second", time.Second, 2.0, 1, 2 * time.Second},
		{"third", time.Second, 2.0, 2, 4 * time.Second},
		{"flat factor", 500 * time.Millisecond, 1.0, 5, 500 * time.Millisecond},
		{"fractional factor", 100 * time.Millisecond, 1.5, 2, 225 * time.Millisecond},
		{"zero initial", 0, 2.0, 3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := backoffDelay(tc.initial, tc.factor, tc.attempt); got != tc.want {
				t.Fatalf("backoffDelay(%v, %v, %d) = %v, want %v",
					tc.initial, tc.factor, tc.attempt, got, tc.want)
			}
		})
	}
}
