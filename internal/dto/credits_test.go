package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditsUnmarshalIsLenient(t *testing.T) {
	cases := map[string]int{
		`{"credits": 4}`:       4,
		`{"credits": 3.9}`:     3,
		`{"credits": "5"}`:     5,
		`{"credits": "2 hrs"}`: 2,
		`{"credits": "abc"}`:   0,
		`{"credits": -3}`:      0,
		`{"credits": null}`:    0,
		`{"credits": true}`:    0,
		`{"credits": [1]}`:     0,
		`{"credits": {}}`:      0,
		`{"credits": 1e3}`:     1,
		`{"credits": "1e3"}`:   1,
	}
	for body, want := range cases {
		var in ComputeCourse
		require.NoError(t, json.Unmarshal([]byte(body), &in), body)
		assert.Equal(t, Credits(want), in.Credits, body)
	}
}

func TestCreditsUnmarshalRejectsOversized(t *testing.T) {
	var in ComputeCourse
	require.NoError(t, json.Unmarshal([]byte(`{"credits": 5000000000000000000}`), &in))
	assert.Zero(t, in.Credits)

	require.NoError(t, json.Unmarshal([]byte(`{"credits": 2147483647}`), &in))
	assert.Equal(t, Credits(2147483647), in.Credits)
}

func TestCourseInputDistinguishesMissingFields(t *testing.T) {
	var in CourseInput
	require.NoError(t, json.Unmarshal([]byte(`{"grade": "A+"}`), &in))

	assert.Nil(t, in.Name)
	assert.Nil(t, in.Credits)
	require.NotNil(t, in.Grade)
	assert.Equal(t, "A+", *in.Grade)
}
