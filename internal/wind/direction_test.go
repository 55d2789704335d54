// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package wind

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("normalized values are always in range", func(t *testing.T) {
		for d := -1080.0; d <= 1080; d += 7.5 {
			n := Normalize(d)
			if n < 0 || n >= 360 {
				t.Errorf("Normalize(%g) = %g, out of [0, 360)", d, n)
			}
		}
	})
	t.Run("known values normalize correctly", func(t *testing.T) {
		tests := []struct {
			in, want float64
		}{
			{0, 0}, {45, 45}, {360, 0}, {-90, 270}, {450, 90}, {-360, 0}, {719.5, 359.5},
		}
		for _, tc := range tests {
			if got := Normalize(tc.in); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Normalize(%g): expected %g, got %g", tc.in, tc.want, got)
			}
		}
	})
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name      string
		direction float64
		want      Bucket
	}{
		{"zero is north", 0, BucketNorth},
		{"45 is north", 45, BucketNorth},
		{"just below 90 is north", 89.999, BucketNorth},
		{"90 is east", 90, BucketEast},
		{"just below 180 is east", 179.999, BucketEast},
		{"180 is south", 180, BucketSouth},
		{"270 is west", 270, BucketWest},
		{"just below 360 is west", 359.999, BucketWest},
		{"360 wraps to north", 360, BucketNorth},
		{"negative 90 is west", -90, BucketWest},
		{"negative 1 is west", -1, BucketWest},
		{"large value wraps", 810, BucketEast},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BucketOf(tc.direction); got != tc.want {
				t.Errorf("expected bucket %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBucket_Color(t *testing.T) {
	tests := []struct {
		bucket Bucket
		hex    string
		label  string
	}{
		{BucketNorth, "#3B82F6", "North wind"},
		{BucketEast, "#10B981", "East wind"},
		{BucketSouth, "#F59E0B", "South wind"},
		{BucketWest, "#EF4444", "West wind"},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			if tc.bucket.Hex() != tc.hex {
				t.Errorf("expected hex %s, got %s", tc.hex, tc.bucket.Hex())
			}
			if tc.bucket.Label() != tc.label {
				t.Errorf("expected label %s, got %s", tc.label, tc.bucket.Label())
			}
			if tc.bucket.Color().A != 0xFF {
				t.Error("expected bucket color to be opaque")
			}
		})
	}
}

func TestBucket_Range(t *testing.T) {
	t.Run("buckets cover the circle without gaps", func(t *testing.T) {
		next := 0.0
		for _, b := range Buckets {
			from, to := b.Range()
			if from != next {
				t.Errorf("expected bucket %d to start at %g, got %g", b, next, from)
			}
			if BucketOf(from) != b {
				t.Errorf("expected lower bound %g to belong to bucket %d", from, b)
			}
			next = to
		}
		if next != 360 {
			t.Errorf("expected last bucket to end at 360, got %g", next)
		}
	})
}

func TestHeading(t *testing.T) {
	t.Run("zero degrees yields an angle of pi", func(t *testing.T) {
		h := Heading(0)
		if math.Abs(math.Cos(h)-(-1)) > 1e-9 {
			t.Errorf("expected heading of 0 to be pi, got %g", h)
		}
	})
	t.Run("heading is shifted by half a turn", func(t *testing.T) {
		if got := Heading(90); math.Abs(got-1.5*math.Pi) > 1e-9 {
			t.Errorf("expected 1.5 pi, got %g", got)
		}
	})
}
