package commands_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, tracking kernel.TrackingID) (*shipment.Shipment, error) {
	args := m.Called(ctx, tracking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetAllActive(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UnitOfWork {
	args := m.Called()
	return args.Get(0).(commands.UnitOfWork)
}

type MockIncidentDispatcher struct{ mock.Mock }

func (m *MockIncidentDispatcher) Dispatch(tracking kernel.TrackingID, delayDays int) {
	m.Called(tracking, delayDays)
}

// fixedRandom returns the same value for every draw.
func fixedRandom(value int) commands.RandomSource {
	return commands.FuncRandomSource(func(int) int { return value })
}

func testTracking(t *testing.T, raw string) kernel.TrackingID {
	t.Helper()
	tracking, err := kernel.TrackingIDFromString(raw)
	require.NoError(t, err)
	return tracking
}

func testPlan(t *testing.T) shipment.StagePlan {
	t.Helper()
	plan, err := shipment.NewStagePlan([shipment.StageCount]int{5, 5, 5, 25, 6, 6, 6})
	require.NoError(t, err)
	return plan
}

func newTestShipment(t *testing.T, tracking kernel.TrackingID, incidentDecision bool) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), tracking, "ACME Corp", 3, "456 Oak Avenue",
		testPlan(t), incidentDecision, time.Now())
	require.NoError(t, err)
	return s
}

// shipmentAtTransit builds a shipment sitting at the start of the transit
// stage, with the incident offer still open when incidentDecision is set.
func shipmentAtTransit(t *testing.T, tracking kernel.TrackingID, incidentDecision bool) *shipment.Shipment {
	t.Helper()
	s := newTestShipment(t, tracking, incidentDecision)
	for s.CurrentStage() != shipment.StageInTransit {
		require.NoError(t, s.AccrueTime(float64(s.Plan().Duration(s.CurrentStage()))))
		require.NoError(t, s.AdvanceStage(time.Now()))
	}
	return s
}

// shipmentOnHold builds a shipment with a declared, unresolved incident.
func shipmentOnHold(t *testing.T, tracking kernel.TrackingID, days int) *shipment.Shipment {
	t.Helper()
	s := shipmentAtTransit(t, tracking, true)
	require.NoError(t, s.DeclareIncident(days, time.Now()))
	return s
}
