package commands

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrAdvanceShipmentsCommandIsNotConstructed = errors.New(
	"AdvanceShipmentsCommand is not constructed, use NewAdvanceShipmentsCommand")

// AdvanceShipmentsCommand pushes every active shipment forward by delta
// time units. One command per scheduler tick.
type AdvanceShipmentsCommand struct {
	delta float64

	guard guard.ConstructorGuard
}

func NewAdvanceShipmentsCommand(delta float64) (AdvanceShipmentsCommand, error) {
	if delta <= 0 {
		return AdvanceShipmentsCommand{}, errs.NewValueIsInvalidErrorWithCause("delta",
			fmt.Errorf("%v is not greater than 0", delta))
	}

	return AdvanceShipmentsCommand{
		delta: delta,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceShipmentsCommand) Delta() float64 {
	return c.delta
}

func (c AdvanceShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentsCommandIsNotConstructed)
}
