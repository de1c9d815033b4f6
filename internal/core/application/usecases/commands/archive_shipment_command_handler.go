package commands

import (
	"context"
)

// ArchiveShipmentCommandHandler hides a shipment from listings and from the
// progression scheduler. Archived shipments stay readable by tracking number.
type ArchiveShipmentCommandHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewArchiveShipmentCommandHandler creates a handler for archiving shipments.
func NewArchiveShipmentCommandHandler(uowFactory UnitOfWorkFactory) ArchiveShipmentCommandHandler {
	return ArchiveShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ArchiveShipmentCommandHandler) Handle(ctx context.Context, cmd ArchiveShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	current, err := shipmentRepo.Get(ctx, cmd.Tracking())
	if err != nil {
		return err
	}

	current.Archive()

	if err := shipmentRepo.Update(ctx, current); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
