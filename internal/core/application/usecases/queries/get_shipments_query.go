package queries

import (
	"errors"
	"time"

	"tracking/internal/pkg/guard"
)

var ErrGetShipmentsQueryIsNotConstructed = errors.New(
	"GetShipmentsQuery must be created via NewGetShipmentsQuery constructor",
)

// GetShipmentsQuery retrieves the shipment overview list: every shipment
// that has not been archived, finished ones included.
//
// Example:
//
//	query := NewGetShipmentsQuery()
//	handler := NewGetShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list shipments: %w", err)
//	}
//
//	for _, s := range shipments {
//	    fmt.Printf("%s %s: %s\n", s.TrackingNumber, s.Client, s.Status)
//	}
type GetShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetShipmentsQuery creates a query for the shipment overview list.
func NewGetShipmentsQuery() GetShipmentsQuery {
	return GetShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsQueryIsNotConstructed)
}

// GetShipmentsQueryResponse is one row of the shipment overview list.
type GetShipmentsQueryResponse struct {
	TrackingNumber string
	Client         string
	Quantity       int
	Destination    string
	Status         string
	Finished       bool
	CreatedAt      time.Time
}
