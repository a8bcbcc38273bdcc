package qsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsTotal(t *testing.T) {
	c := Counts{"00": 1000, "11": 48}
	assert.Equal(t, 1048, c.Total())
	assert.Equal(t, 0, Counts{}.Total())
}

func TestCountsMostFrequent(t *testing.T) {
	c := Counts{"00": 10, "01": 30, "10": 5}
	outcome, n := c.MostFrequent()
	assert.Equal(t, "01", outcome)
	assert.Equal(t, 30, n)
}

func TestCountsMostFrequent_TieBreaksLexicographically(t *testing.T) {
	c := Counts{"11": 7, "00": 7}
	outcome, _ := c.MostFrequent()
	assert.Equal(t, "00", outcome)
}

func TestCountsMostFrequent_Empty(t *testing.T) {
	outcome, n := Counts{}.MostFrequent()
	assert.Equal(t, "", outcome)
	assert.Equal(t, 0, n)
}

func TestCountsProbability(t *testing.T) {
	c := Counts{"00": 75, "11": 25}
	assert.InDelta(t, 0.75, c.Probability("00"), 1e-12)
	assert.Equal(t, 0.0, c.Probability("01"))
	assert.Equal(t, 0.0, Counts{}.Probability("00"))
}

func TestCountsOutcomes_Sorted(t *testing.T) {
	c := Counts{"11": 1, "00": 1, "10": 1}
	assert.Equal(t, []string{"00", "10", "11"}, c.Outcomes())
}

func TestCountsWithout(t *testing.T) {
	c := Counts{"00": 10, "01": 3, "10": 2}
	rest := c.Without("00")
	assert.Equal(t, Counts{"01": 3, "10": 2}, rest)
	assert.Equal(t, 10, c["00"]) // original untouched
}

func TestCountsSplitByLengths(t *testing.T) {
	c := Counts{"10110": 4, "00110": 2}
	parts, err := c.SplitByLengths([]int{2, 3})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, Counts{"10": 4, "00": 2}, parts[0])
	assert.Equal(t, Counts{"110": 6}, parts[1])
}

func TestCountsSplitByLengths_LengthMismatch(t *testing.T) {
	c := Counts{"101": 1}
	_, err := c.SplitByLengths([]int{2, 3})
	assert.Error(t, err)

	_, err = c.SplitByLengths([]int{2})
	assert.Error(t, err)
}

func TestFormatBitstring(t *testing.T) {
	measurements := []Gate{
		{Kind: OpMeasure, Target: 0, Control: -1, CBit: 1},
		{Kind: OpMeasure, Target: 1, Control: -1, CBit: 0},
	}
	tests := []struct {
		basis int
		want  string
	}{
		{0b00, "00"},
		{0b01, "10"}, // qubit 0 set -> classical bit 1 -> left position
		{0b10, "01"},
		{0b11, "11"},
	}
	for _, tt := range tests {
		if got := FormatBitstring(tt.basis, measurements, 2); got != tt.want {
			t.Errorf("FormatBitstring(%02b) = %q, want %q", tt.basis, got, tt.want)
		}
	}
}
