package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrResolveIncidentCommandIsNotConstructed = errors.New(
	"ResolveIncidentCommand is not constructed, use NewResolveIncidentCommand")

// ResolveIncidentCommand settles a declared incident after its delay has
// elapsed: the shipment either resumes transit or gets cancelled.
type ResolveIncidentCommand struct {
	tracking  kernel.TrackingID
	delayDays int

	guard guard.ConstructorGuard
}

func NewResolveIncidentCommand(tracking kernel.TrackingID, delayDays int) (ResolveIncidentCommand, error) {
	if err := tracking.Validate(); err != nil {
		return ResolveIncidentCommand{}, err
	}
	if delayDays < shipment.MinIncidentDelayDays || delayDays > shipment.MaxIncidentDelayDays {
		return ResolveIncidentCommand{}, errs.NewValueIsOutOfRangeError("delayDays",
			delayDays, shipment.MinIncidentDelayDays, shipment.MaxIncidentDelayDays)
	}

	return ResolveIncidentCommand{
		tracking:  tracking,
		delayDays: delayDays,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveIncidentCommand) Tracking() kernel.TrackingID {
	return c.tracking
}

func (c ResolveIncidentCommand) DelayDays() int {
	return c.delayDays
}

func (c ResolveIncidentCommand) Validate() error {
	return c.guard.Validate(ErrResolveIncidentCommandIsNotConstructed)
}
