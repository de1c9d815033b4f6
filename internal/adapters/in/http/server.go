// Package http exposes the tracking engine over HTTP. Handlers translate
// between the JSON API and the application's commands and queries; all
// business rules stay behind those.
package http

import (
	"errors"
	"net/http"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createShipmentHandler  commands.CreateShipmentCommandHandler
	archiveShipmentHandler commands.ArchiveShipmentCommandHandler

	getShipmentsHandler          queries.GetShipmentsQueryHandler
	getShipmentByTrackingHandler queries.GetShipmentByTrackingQueryHandler
}

// NewServer creates an HTTP server around the required command and query
// handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	archiveShipmentHandler commands.ArchiveShipmentCommandHandler,
	getShipmentsHandler queries.GetShipmentsQueryHandler,
	getShipmentByTrackingHandler queries.GetShipmentByTrackingQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:        createShipmentHandler,
		archiveShipmentHandler:       archiveShipmentHandler,
		getShipmentsHandler:          getShipmentsHandler,
		getShipmentByTrackingHandler: getShipmentByTrackingHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/:trackingNumber", s.GetShipmentByTracking)
	api.POST("/shipments/:trackingNumber/archive", s.ArchiveShipment)
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewShipment is the request body of POST /api/v1/shipments.
type NewShipment struct {
	Client      string `json:"client"`
	Quantity    int    `json:"quantity"`
	Destination string `json:"destination"`
}

// CreatedShipment is the response body of a successful shipment creation.
type CreatedShipment struct {
	TrackingNumber string `json:"trackingNumber"`
}

// ShipmentSummary is one row of the shipment listing.
type ShipmentSummary struct {
	TrackingNumber string    `json:"trackingNumber"`
	Client         string    `json:"client"`
	Quantity       int       `json:"quantity"`
	Destination    string    `json:"destination"`
	Status         string    `json:"status"`
	Finished       bool      `json:"finished"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HistoryEntry is one status change in the tracking detail.
type HistoryEntry struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// ShipmentDetail is the full tracking view of one shipment.
type ShipmentDetail struct {
	TrackingNumber string         `json:"trackingNumber"`
	Client         string         `json:"client"`
	Quantity       int            `json:"quantity"`
	Destination    string         `json:"destination"`
	Status         string         `json:"status"`
	CurrentStage   string         `json:"currentStage"`
	StageDurations []int          `json:"stageDurations"`
	TimeInStage    float64        `json:"timeInStage"`
	History        []HistoryEntry `json:"history"`
	OnHold         bool           `json:"onHold"`
	Finished       bool           `json:"finished"`
	Archived       bool           `json:"archived"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateShipment handles POST /api/v1/shipments - registers a new shipment
// and returns its tracking number.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body NewShipment
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateShipmentCommand(body.Client, body.Quantity, body.Destination)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	tracking, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create shipment",
		})
	}

	return ctx.JSON(http.StatusCreated, CreatedShipment{
		TrackingNumber: tracking.String(),
	})
}

// GetShipments handles GET /api/v1/shipments - lists all shipments that have
// not been archived.
func (s *Server) GetShipments(ctx echo.Context) error {
	query := queries.NewGetShipmentsQuery()

	shipments, err := s.getShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve shipments",
		})
	}

	response := make([]ShipmentSummary, len(shipments))
	for i, s := range shipments {
		response[i] = ShipmentSummary{
			TrackingNumber: s.TrackingNumber,
			Client:         s.Client,
			Quantity:       s.Quantity,
			Destination:    s.Destination,
			Status:         s.Status,
			Finished:       s.Finished,
			CreatedAt:      s.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipmentByTracking handles GET /api/v1/shipments/:trackingNumber - the
// full tracking detail, archived shipments included.
func (s *Server) GetShipmentByTracking(ctx echo.Context) error {
	tracking, err := kernel.TrackingIDFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking number",
		})
	}

	query, err := queries.NewGetShipmentByTrackingQuery(tracking)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	detail, err := s.getShipmentByTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Shipment not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve shipment",
		})
	}

	history := make([]HistoryEntry, len(detail.History))
	for i, entry := range detail.History {
		history[i] = HistoryEntry{Status: entry.Status, At: entry.At}
	}

	return ctx.JSON(http.StatusOK, ShipmentDetail{
		TrackingNumber: detail.TrackingNumber,
		Client:         detail.Client,
		Quantity:       detail.Quantity,
		Destination:    detail.Destination,
		Status:         detail.Status,
		CurrentStage:   detail.CurrentStage,
		StageDurations: detail.StageDurations,
		TimeInStage:    detail.TimeInStage,
		History:        history,
		OnHold:         detail.OnHold,
		Finished:       detail.Finished,
		Archived:       detail.Archived,
		CreatedAt:      detail.CreatedAt,
	})
}

// ArchiveShipment handles POST /api/v1/shipments/:trackingNumber/archive -
// hides the shipment from listings and from the scheduler.
func (s *Server) ArchiveShipment(ctx echo.Context) error {
	tracking, err := kernel.TrackingIDFromString(ctx.Param("trackingNumber"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking number",
		})
	}

	cmd, err := commands.NewArchiveShipmentCommand(tracking)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err := s.archiveShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Shipment not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to archive shipment",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}
