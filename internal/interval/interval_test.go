package interval_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"opsdash/internal/interval"
)

func TestParse_OK(t *testing.T) {
	r, err := interval.Parse("1-3")
	require.NoError(t, err)
	require.Equal(t, interval.Range{Start: 1, End: 3}, r)
	require.Equal(t, 3, r.PackageCount())
}

func TestParse_Format(t *testing.T) {
	for _, in := range []string{"", "1", "1-", "-3", "a-b", "1-2-3", "1.5-2"} {
		_, err := interval.Parse(in)
		var fe *interval.FormatError
		require.Error(t, err, "input %q", in)
		require.True(t, errors.As(err, &fe), "input %q", in)
	}
}

func TestParse_TrimsSpaces(t *testing.T) {
	r, err := interval.Parse(" 2 - 5 ")
	require.NoError(t, err)
	require.Equal(t, interval.Range{Start: 2, End: 5}, r)
}

func TestValidate_Bounds(t *testing.T) {
	cases := []struct {
		name  string
		r     interval.Range
		total int
	}{
		{"end beyond total", interval.Range{1, 6}, 5},
		{"start below one", interval.Range{0, 2}, 5},
		{"inverted", interval.Range{4, 2}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate(tc.total, nil)
			var be *interval.BoundsError
			require.True(t, errors.As(err, &be))
		})
	}
}

func TestValidate_Overlap(t *testing.T) {
	sib := []interval.Range{{Start: 1, End: 3}}

	cases := []struct {
		name    string
		r       interval.Range
		overlap bool
	}{
		{"partial left", interval.Range{2, 5}, true},
		{"contained", interval.Range{2, 2}, true},
		{"containing", interval.Range{1, 10}, true},
		{"touching end", interval.Range{3, 4}, true},
		{"adjacent after", interval.Range{4, 6}, false},
		{"disjoint", interval.Range{5, 10}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate(10, sib)
			if tc.overlap {
				var oe *interval.OverlapError
				require.True(t, errors.As(err, &oe))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseAndValidate(t *testing.T) {
	r, err := interval.ParseAndValidate("1-3", 10, nil)
	require.NoError(t, err)
	require.Equal(t, 3, r.PackageCount())

	_, err = interval.ParseAndValidate("2-5", 10, []interval.Range{r})
	var oe *interval.OverlapError
	require.True(t, errors.As(err, &oe))

	_, err = interval.ParseAndValidate("1-6", 5, nil)
	var be *interval.BoundsError
	require.True(t, errors.As(err, &be))
}
