// Package shipmentrepo (memory) keeps shipments in process memory. It backs
// development setups and tests that need the full engine without PostgreSQL.
//
// The store implements the same unit of work contract as the GORM adapter,
// but with a single store-wide mutex as the transaction: Begin takes the
// lock, Commit applies the staged writes and releases it, Rollback discards
// them. Holding the lock for the whole unit of work gives the scheduler and
// the incident resolvers the same exclusive read-decide-write cycle they get
// from database transactions.
package shipmentrepo

import (
	"sync"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

// Store holds the committed shipment snapshots keyed by tracking number.
type Store struct {
	mu         sync.Mutex
	byTracking map[string]shipment.Snapshot
}

// NewStore creates an empty in-memory shipment store.
func NewStore() *Store {
	return &Store{
		byTracking: make(map[string]shipment.Snapshot),
	}
}

// Factory creates unit of work instances bound to one store.
type Factory struct {
	store *Store
}

// NewFactory creates a unit of work factory over the given store.
func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

// Create produces a new UnitOfWork over the shared store.
func (f *Factory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}
