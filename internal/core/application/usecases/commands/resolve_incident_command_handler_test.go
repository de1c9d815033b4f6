package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancellationChance(t *testing.T) {
	tests := []struct {
		days   int
		chance int
	}{
		{days: 1, chance: 10},
		{days: 2, chance: 15},
		{days: 5, chance: 30},
		{days: 9, chance: 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.chance, commands.CancellationChance(tt.days))
	}
}

func TestResolveIncidentCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx := t.Context()
	tracking := testTracking(t, "10000020")
	current := shipmentOnHold(t, tracking, 5)
	cmd, _ := commands.NewResolveIncidentCommand(tracking, 5)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	repo.On("Get", ctx, tracking).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(nil).Once()

	// five day delay gives a 30% chance; a draw of 20 lands inside it
	h := commands.NewResolveIncidentCommandHandler(factory, fixedRandom(19), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.CancelledStatus, current.Status())
	assert.True(t, current.IsFinished())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResolveIncidentCommandHandler_Handle_Resumed(t *testing.T) {
	ctx := t.Context()
	tracking := testTracking(t, "10000021")
	current := shipmentOnHold(t, tracking, 5)
	cmd, _ := commands.NewResolveIncidentCommand(tracking, 5)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	repo.On("Get", ctx, tracking).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(nil).Once()

	// a draw of 80 clears the 30% chance, incident resolves benignly
	h := commands.NewResolveIncidentCommandHandler(factory, fixedRandom(79), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.StageInTransit.Label(), current.Status())
	assert.False(t, current.IsOnHold())
	assert.False(t, current.IsFinished())
	repo.AssertExpectations(t)
}

func TestResolveIncidentCommandHandler_Handle_ArchivedMidIncident(t *testing.T) {
	ctx := t.Context()
	tracking := testTracking(t, "10000025")
	current := shipmentOnHold(t, tracking, 5)
	current.Archive()
	cmd, _ := commands.NewResolveIncidentCommand(tracking, 5)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	repo.On("Get", ctx, tracking).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(nil).Once()

	h := commands.NewResolveIncidentCommandHandler(factory, fixedRandom(79), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	// resolution applies on top of the archived flag without reverting it
	assert.False(t, current.IsOnHold())
	assert.True(t, current.IsArchived())
	repo.AssertExpectations(t)
}

func TestResolveIncidentCommandHandler_Handle_MissingShipmentIsNoOp(t *testing.T) {
	ctx := t.Context()
	tracking := testTracking(t, "10000022")
	cmd, _ := commands.NewResolveIncidentCommand(tracking, 3)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("Get", ctx, tracking).
		Return(nil, errs.NewObjectNotFoundError("trackingID", tracking)).Once()

	h := commands.NewResolveIncidentCommandHandler(factory, fixedRandom(0), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestResolveIncidentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)
	h := commands.NewResolveIncidentCommandHandler(factory, fixedRandom(0), testLogger())
	err := h.Handle(ctx, commands.ResolveIncidentCommand{})
	require.Error(t, err)
}
