package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetShipmentsQueryHandler reads the shipment overview straight from the
// database, bypassing the aggregate. Archived shipments are filtered out.
type GetShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentsQueryHandler creates a handler for the shipment overview
// list. Requires a GORM database connection for query execution.
func NewGetShipmentsQueryHandler(db *gorm.DB) GetShipmentsQueryHandler {
	return GetShipmentsQueryHandler{db: db}
}

// Handle executes the overview query. Results are ordered by creation time
// so the listing is stable across ticks.
func (h GetShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsQuery,
) ([]GetShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_number,
			client,
			quantity,
			destination,
			status,
			finished,
			created_at
		FROM shipments
		WHERE archived = false
		ORDER BY created_at, tracking_number
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetShipmentsQueryResponse

		err = rows.Scan(
			&resp.TrackingNumber,
			&resp.Client,
			&resp.Quantity,
			&resp.Destination,
			&resp.Status,
			&resp.Finished,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
