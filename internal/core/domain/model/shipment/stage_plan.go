package shipment

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// StagePlan is the immutable time budget of a shipment: one duration (in
// ticks) per delivery stage, fixed at creation. Every entry must be at least
// one tick; the sum equals the total delivery time that was allocated.
type StagePlan [StageCount]int

// NewStagePlan builds a plan from per-stage durations, rejecting any stage
// shorter than one tick.
func NewStagePlan(durations [StageCount]int) (StagePlan, error) {
	plan := StagePlan(durations)
	if err := plan.Validate(); err != nil {
		return StagePlan{}, err
	}
	return plan, nil
}

// StagePlanFromSlice restores a plan from its persisted form.
func StagePlanFromSlice(durations []int) (StagePlan, error) {
	if len(durations) != StageCount {
		return StagePlan{}, errs.NewValueIsInvalidErrorWithCause("stagePlan",
			fmt.Errorf("expected %d stage durations, got %d", StageCount, len(durations)))
	}
	var fixed [StageCount]int
	copy(fixed[:], durations)
	return NewStagePlan(fixed)
}

// Validate checks that every stage has a positive duration.
func (p StagePlan) Validate() error {
	for i, d := range p {
		if d < 1 {
			return errs.NewValueIsInvalidErrorWithCause("stagePlan",
				fmt.Errorf("stage %d has non-positive duration %d", i, d))
		}
	}
	return nil
}

// Duration returns the tick budget of the given stage.
func (p StagePlan) Duration(s Stage) int {
	return p[s]
}

// Total returns the total delivery time in ticks, the sum of all stages.
func (p StagePlan) Total() int {
	total := 0
	for _, d := range p {
		total += d
	}
	return total
}

// Slice returns the durations as a slice for persistence.
func (p StagePlan) Slice() []int {
	out := make([]int, StageCount)
	copy(out, p[:])
	return out
}
