package shipmentrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside an open
// unit of work.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWork is one exclusive transaction over the in-memory store. Begin
// locks the store; staged writes become visible to other units of work only
// after Commit.
type UnitOfWork struct {
	store  *Store
	active bool
	staged map[string]shipment.Snapshot
}

// Begin takes the store lock. Calling Begin on an already open unit of work
// is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.store.mu.Lock()
	uow.active = true
	uow.staged = make(map[string]shipment.Snapshot)
	return nil
}

// Commit applies the staged writes to the store and releases the lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	for tracking, snap := range uow.staged {
		uow.store.byTracking[tracking] = snap
	}

	uow.staged = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

// Rollback discards the staged writes and releases the lock. After Commit it
// reports ErrNoActiveTransaction, which deferred rollbacks discard.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.staged = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

// ShipmentRepository provides shipment access within this unit of work.
func (uow *UnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return &Repository{uow: uow}
}
