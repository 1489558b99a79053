package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	cases := []struct {
		year       int
		month      time.Month
		start, end string
	}{
		{2024, time.March, "2024-03-01", "2024-03-31"},
		{2024, time.February, "2024-02-01", "2024-02-29"}, // leap year
		{2023, time.February, "2023-02-01", "2023-02-28"},
		{2024, time.December, "2024-12-01", "2024-12-31"},
	}
	for _, tc := range cases {
		start, end := monthWindow(tc.year, tc.month)
		assert.Equal(t, tc.start, start.Format("2006-01-02"))
		assert.Equal(t, tc.end, end.Format("2006-01-02"))
	}
}

func TestParseISODate(t *testing.T) {
	d, err := parseISODate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.Format("2006-01-02"))

	// Full timestamps collapse to the calendar day.
	d, err = parseISODate("2024-03-05T23:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.Format("2006-01-02"))
	assert.Zero(t, d.Hour())

	_, err = parseISODate("05/03/2024")
	assert.Error(t, err)
	_, err = parseISODate("")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.July, 14, 18, 30, 12, 99, time.UTC)
	out := dateOnly(in)
	assert.Equal(t, time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC), out)
}
