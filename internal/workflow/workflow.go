// Package workflow models the four-phase order-fulfillment pipeline.
// Navigation is strictly forward: a stage may be re-entered for display
// but the persisted current stage never moves backwards.
package workflow

import "fmt"

type Stage string

const (
	StageCollection Stage = "collection"
	StagePackaging  Stage = "packaging"
	StageDelivery   Stage = "delivery"
	StagePricing    Stage = "pricing"
)

var order = map[Stage]int{
	StageCollection: 1,
	StagePackaging:  2,
	StageDelivery:   3,
	StagePricing:    4,
}

func (s Stage) Valid() bool {
	_, ok := order[s]
	return ok
}

// Next returns the stage after s, or s itself when s is terminal.
func (s Stage) Next() Stage {
	switch s {
	case StageCollection:
		return StagePackaging
	case StagePackaging:
		return StageDelivery
	case StageDelivery:
		return StagePricing
	}
	return s
}

// Advance validates a transition from s to target. Only single forward
// steps are allowed.
func (s Stage) Advance(target Stage) error {
	if !s.Valid() || !target.Valid() {
		return fmt.Errorf("unknown stage %q -> %q", s, target)
	}
	if order[target] != order[s]+1 {
		return fmt.Errorf("cannot advance %s -> %s", s, target)
	}
	return nil
}
