package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrArchiveShipmentCommandIsNotConstructed = errors.New(
	"ArchiveShipmentCommand is not constructed, use NewArchiveShipmentCommand")

type ArchiveShipmentCommand struct {
	tracking kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewArchiveShipmentCommand(tracking kernel.TrackingID) (ArchiveShipmentCommand, error) {
	if err := tracking.Validate(); err != nil {
		return ArchiveShipmentCommand{}, err
	}

	return ArchiveShipmentCommand{
		tracking: tracking,

		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ArchiveShipmentCommand) Tracking() kernel.TrackingID {
	return c.tracking
}

func (c ArchiveShipmentCommand) Validate() error {
	return c.guard.Validate(ErrArchiveShipmentCommandIsNotConstructed)
}
