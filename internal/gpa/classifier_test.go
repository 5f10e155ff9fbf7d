package gpa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		gpa   float64
		label string
		band  Band
	}{
		{10, LabelOutstanding, BandSuccess},
		{9.0, LabelOutstanding, BandSuccess},
		{8.999, LabelExcellent, BandPrimary},
		{8, LabelExcellent, BandPrimary},
		{7.5, LabelVeryGood, BandWarning},
		{6, LabelGood, BandAccent},
		{5, LabelAverage, BandMuted},
		{4.999, LabelPoor, BandDestructive},
		{0, LabelPoor, BandDestructive},
		{-3, LabelPoor, BandDestructive},
		{12, LabelOutstanding, BandSuccess},
		{math.NaN(), LabelPoor, BandDestructive},
	}
	for _, tc := range cases {
		got := Classify(tc.gpa)
		assert.Equal(t, tc.label, got.Label, "gpa %v", tc.gpa)
		assert.Equal(t, tc.band, got.Band, "gpa %v", tc.gpa)
	}
}

func TestStandingRangesAgreeWithClassify(t *testing.T) {
	ranges := StandingRanges()
	require.Len(t, ranges, 6)
	for _, r := range ranges {
		assert.Equal(t, r.Standing, Classify(r.Min))
	}
	assert.Equal(t, LabelPoor, ranges[len(ranges)-1].Standing.Label)
}
