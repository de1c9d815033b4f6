package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per operation.
// Each concurrent operation must use its own instance.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the exclusive-update boundary of the shipment store. Every
// read-modify-write of a shipment record runs inside one unit of work, so a
// scheduler tick and an incident resolver touching the same record can never
// interleave their reads and writes. Client code manages the lifecycle
// explicitly.
type UnitOfWork interface {
	// Begin starts the exclusive region (a database transaction, or a store
	// lock in the in-memory adapter).
	Begin(ctx context.Context) error

	// Commit makes the changes visible and ends the exclusive region.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and ends the exclusive region.
	// Safe to defer after a successful Commit.
	Rollback(ctx context.Context) error

	// ShipmentRepository returns a repository bound to this unit of work.
	ShipmentRepository() ShipmentRepository
}
