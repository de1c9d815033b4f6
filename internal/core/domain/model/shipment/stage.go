package shipment

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Stage represents one of the seven fixed delivery phases a shipment passes
// through, in order. Stage values double as the index into a shipment's
// stage plan.
//
// Progression:
//
//	OrderConfirmed -> PackagePrepared -> PickedUpByCarrier -> InTransit
//	  -> AtDistributionCenter -> OutForDelivery -> Delivered
//
// StageInTransit is the only stage at which an incident may be declared.
type Stage int

const (
	StageOrderConfirmed Stage = iota
	StagePackagePrepared
	StagePickedUpByCarrier
	StageInTransit
	StageAtDistributionCenter
	StageOutForDelivery
	StageDelivered
)

// StageCount is the number of delivery stages.
const StageCount = 7

// stageLabels holds the customer-facing status text per stage.
var stageLabels = [StageCount]string{
	"order confirmed",
	"package prepared",
	"picked up by carrier",
	"in transit",
	"arrived at distribution center",
	"out for delivery",
	"delivered",
}

// Label returns the customer-facing status text for the stage.
// Invalid stages yield "unknown".
func (s Stage) Label() string {
	if s.Validate() != nil {
		return "unknown"
	}
	return stageLabels[s]
}

// String implements fmt.Stringer using the stage label.
func (s Stage) String() string {
	return s.Label()
}

// Validate checks that the stage is one of the seven delivery phases.
func (s Stage) Validate() error {
	if s < StageOrderConfirmed || s >= StageCount {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage index", int(s)))
	}
	return nil
}

// IsLast reports whether the stage is the terminal delivery phase.
func (s Stage) IsLast() bool {
	return s == StageDelivered
}

// Next returns the following stage.
// Returns an error for the terminal stage and for invalid values.
func (s Stage) Next() (Stage, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsLast() {
		return 0, errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s is the terminal stage", s))
	}
	return s + 1, nil
}
