package commands

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

type TxManager interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type ShipmentRepositoryFactory interface {
	ShipmentRepository() ports.ShipmentRepository
}

type UnitOfWork interface {
	TxManager
	ShipmentRepositoryFactory
}

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// RandomSource supplies the randomness used by the progression engine.
// IntN must return a uniform value in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// FuncRandomSource adapts an ordinary function to the RandomSource interface.
type FuncRandomSource func(n int) int

func (f FuncRandomSource) IntN(n int) int {
	return f(n)
}

// IncidentDispatcher hands a declared incident over to the background
// resolver. Dispatch must not block the caller.
type IncidentDispatcher interface {
	Dispatch(tracking kernel.TrackingID, delayDays int)
}
