package model

import (
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type NormalizeSuite struct {
	suite.Suite
}

func (suite *NormalizeSuite) TestParseReleaseYear(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "Should parse full date", raw: "1980-01-01", expected: 1980},
		{name: "Should parse bare year", raw: "1980", expected: 1980},
		{name: "Should parse year stored as number", raw: "645", expected: 645},
		{name: "Should parse long date", raw: "January 2, 1980", expected: 1980},
		{name: "Should parse provider date", raw: "02 Jan 1980", expected: 1980},
		{name: "Should trim whitespace", raw: " 1980 ", expected: 1980},
		{name: "Should return zero for empty", raw: "", expected: 0},
		{name: "Should return zero for garbage", raw: "unknown", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ParseReleaseYear(tc.raw))
		})
	}
}

func (suite *NormalizeSuite) TestNormalizeRating(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected *float64
	}{
		{name: "Should scale percentage", raw: "86%", expected: ratingOf(8.6)},
		{name: "Should scale bare percent value", raw: "86", expected: ratingOf(8.6)},
		{name: "Should keep decimal scale", raw: "8.6", expected: ratingOf(8.6)},
		{name: "Should keep ten", raw: "10", expected: ratingOf(10)},
		{name: "Should scale hundred", raw: "100", expected: ratingOf(10)},
		{name: "Should return nil for empty", raw: "", expected: nil},
		{name: "Should return nil for garbage", raw: "N/A", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()

			got := NormalizeRating(tc.raw)
			if tc.expected == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.InDelta(t, *tc.expected, *got, 0.001)
			}
		})
	}
}

func ratingOf(v float64) *float64 {
	return &v
}

func (suite *NormalizeSuite) TestSplitGenres(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "Should split comma string", raw: "Comedy, Drama", expected: []string{"Comedy", "Drama"}},
		{name: "Should parse JSON array string", raw: `["Comedy","Drama"]`, expected: []string{"Comedy", "Drama"}},
		{name: "Should keep single genre", raw: "Comedy", expected: []string{"Comedy"}},
		{name: "Should drop empty segments", raw: "Comedy,, Drama,", expected: []string{"Comedy", "Drama"}},
		{name: "Should return nil for empty", raw: "", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, SplitGenres(tc.raw))
		})
	}
}

func (suite *NormalizeSuite) TestParseRuntimeMinutes(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected int
	}{
		{name: "Should parse provider runtime", raw: "104 min", expected: 104},
		{name: "Should parse bare minutes", raw: "104", expected: 104},
		{name: "Should return zero for empty", raw: "", expected: 0},
		{name: "Should return zero for garbage", raw: "N/A", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ParseRuntimeMinutes(tc.raw))
		})
	}
}

func TestNormalizeSuite(t *testing.T) {
	suite.RunSuite(t, new(NormalizeSuite))
}
