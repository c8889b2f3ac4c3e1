package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var bogota = time.FixedZone("COT", -5*3600)

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, bogota)
}

func TestComputeStreak(t *testing.T) {
	asOf := at(10, 15)

	cases := []struct {
		name string
		in   []time.Time
		want int
	}{
		{"empty", nil, 0},
		{"only today", []time.Time{at(10, 8)}, 1},
		{"three consecutive ending today", []time.Time{at(10, 8), at(9, 8), at(8, 8)}, 3},
		{"unordered input", []time.Time{at(8, 8), at(10, 8), at(9, 8)}, 3},
		{"same day counts once", []time.Time{at(10, 8), at(10, 20), at(9, 8), at(9, 9)}, 2},
		{"gap breaks chain", []time.Time{at(10, 8), at(9, 8), at(7, 8), at(6, 8)}, 2},
		{"yesterday keeps streak alive", []time.Time{at(9, 8), at(8, 8)}, 2},
		{"older than yesterday is zero", []time.Time{at(8, 8), at(7, 8)}, 0},
		{"events after asOf day are ignored", []time.Time{at(11, 8), at(10, 8)}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStreak(tc.in, asOf, bogota))
		})
	}
}

func TestComputeStreak_UsesReferenceZone(t *testing.T) {
	// 2026-03-10 02:00 UTC es 2026-03-09 21:00 en Bogotá.
	late := time.Date(2026, time.March, 10, 2, 0, 0, 0, time.UTC)
	asOf := at(10, 12)

	assert.Equal(t, 1, ComputeStreak([]time.Time{late}, asOf, bogota), "yesterday in reference zone")
	assert.Equal(t, 1, ComputeStreak([]time.Time{late}, asOf, time.UTC), "today in UTC")
}

func TestPriorStreak_ExcludesToday(t *testing.T) {
	now := at(10, 15)
	ts := []time.Time{at(10, 8), at(9, 8), at(8, 8)}

	assert.Equal(t, 2, priorStreak(ts, now, bogota))
	assert.Equal(t, 0, priorStreak([]time.Time{at(10, 8)}, now, bogota))
}

func TestDayBounds(t *testing.T) {
	start := StartOfDay(at(10, 15), bogota)
	end := EndOfDay(at(10, 15), bogota)

	assert.Equal(t, at(10, 0), start)
	assert.Equal(t, at(11, 0).Add(-time.Nanosecond), end)
}
