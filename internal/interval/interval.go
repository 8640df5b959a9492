// Package interval models CT ranges: contiguous inclusive spans of box
// indices partitioning a product's total unit count.
package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive [Start, End] span over 1..totalBoxes.
type Range struct {
	Start int
	End   int
}

// FormatError reports input that is not a "start-end" pair of integers.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid CT range %q: want \"start-end\"", e.Input)
}

// BoundsError reports a syntactically valid range outside 1..TotalBoxes
// or with start greater than end.
type BoundsError struct {
	Range      Range
	TotalBoxes int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("CT range %s out of bounds 1-%d", e.Range, e.TotalBoxes)
}

// OverlapError reports an intersection with a sibling range of the same
// product.
type OverlapError struct {
	Range   Range
	Sibling Range
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("CT range %s overlaps %s", e.Range, e.Sibling)
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// PackageCount is the number of boxes the range covers.
func (r Range) PackageCount() int {
	return r.End - r.Start + 1
}

// Overlaps is the closed-interval intersection test.
func (r Range) Overlaps(o Range) bool {
	return r.Start <= o.End && r.End >= o.Start
}

// Parse decodes "start-end". Partial input such as "1-" is a format
// error: callers validate on commit, not on every keystroke, so
// mid-typing states are simply not submitted.
func Parse(s string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Range{}, &FormatError{Input: s}
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, &FormatError{Input: s}
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, &FormatError{Input: s}
	}
	return Range{Start: start, End: end}, nil
}

// Validate checks the range against the product's unit count and the
// product's other committed ranges.
func (r Range) Validate(totalBoxes int, siblings []Range) error {
	if r.Start > r.End || r.Start < 1 || r.End > totalBoxes {
		return &BoundsError{Range: r, TotalBoxes: totalBoxes}
	}
	for _, s := range siblings {
		if r.Overlaps(s) {
			return &OverlapError{Range: r, Sibling: s}
		}
	}
	return nil
}

// ParseAndValidate is the commit-time entry point: parse, then validate
// bounds and sibling overlap in one step.
func ParseAndValidate(s string, totalBoxes int, siblings []Range) (Range, error) {
	r, err := Parse(s)
	if err != nil {
		return Range{}, err
	}
	if err := r.Validate(totalBoxes, siblings); err != nil {
		return Range{}, err
	}
	return r, nil
}
