package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDailyHours(t *testing.T) {
	cases := []struct {
		name     string
		existing float64
		hours    float64
		wantErr  bool
	}{
		{"fresh day", 0, 20, false},
		{"fills the day exactly", 20, 4, false},
		{"full day rejects one more hour", 24, 1, true}, // e.g. 10h + 14h already booked
		{"partial day overflow", 16, 8.5, true},
		{"zero hours", 0, 0, true},
		{"negative hours", 0, -1, true},
		{"single entry above cap", 0, 25, true},
		{"cap-sized single entry", 0, 24, false},
		{"fractional hours fit", 23.5, 0.5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkDailyHours(tc.existing, tc.hours)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
