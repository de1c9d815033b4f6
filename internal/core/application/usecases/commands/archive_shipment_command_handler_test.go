package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiveShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tracking := testTracking(t, "10000031")
	current := newTestShipment(t, tracking, false)
	cmd, _ := commands.NewArchiveShipmentCommand(tracking)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, tracking).Return(current, nil).Once(),
		repo.On("Update", ctx, current).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewArchiveShipmentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, current.IsArchived())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestArchiveShipmentCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	tracking := testTracking(t, "10000032")
	cmd, _ := commands.NewArchiveShipmentCommand(tracking)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("Get", ctx, tracking).
		Return(nil, errs.NewObjectNotFoundError("trackingID", tracking)).Once()

	h := commands.NewArchiveShipmentCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestArchiveShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)
	h := commands.NewArchiveShipmentCommandHandler(factory)
	err := h.Handle(ctx, commands.ArchiveShipmentCommand{})
	require.Error(t, err)
}
