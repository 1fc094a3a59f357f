package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetCourierWorkStateCommandHandler_Handle(t *testing.T) {
	t.Run("should bring approved courier online and available", func(t *testing.T) {
		ctx := t.Context()
		shifted := pendingCourierFixture(t)
		require.NoError(t, shifted.Approve())

		courierRepo := new(MockCourierRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		courierRepo.On("Get", ctx, shifted.ID()).Return(shifted, nil).Once()
		courierRepo.On("Update", ctx, shifted).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockCourierUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewSetCourierWorkStateCommand(shifted.ID(), true, true)
		require.NoError(t, err)

		h := commands.NewSetCourierWorkStateCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
		assert.True(t, shifted.IsOnline())
		assert.True(t, shifted.IsAvailable())
	})

	t.Run("should withdraw availability when going offline", func(t *testing.T) {
		ctx := t.Context()
		shifted := pendingCourierFixture(t)
		require.NoError(t, shifted.Approve())
		require.NoError(t, shifted.SetOnline(true))
		require.NoError(t, shifted.SetAvailability(true))

		courierRepo := new(MockCourierRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		courierRepo.On("Get", ctx, shifted.ID()).Return(shifted, nil).Once()
		courierRepo.On("Update", ctx, shifted).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockCourierUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewSetCourierWorkStateCommand(shifted.ID(), false, true)
		require.NoError(t, err)

		h := commands.NewSetCourierWorkStateCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
		assert.False(t, shifted.IsOnline())
		assert.False(t, shifted.IsAvailable())
	})

	t.Run("should refuse work state changes before approval", func(t *testing.T) {
		ctx := t.Context()
		shifted := pendingCourierFixture(t)

		courierRepo := new(MockCourierRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		courierRepo.On("Get", ctx, shifted.ID()).Return(shifted, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockCourierUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewSetCourierWorkStateCommand(shifted.ID(), true, true)
		require.NoError(t, err)

		h := commands.NewSetCourierWorkStateCommandHandler(factory)
		assert.ErrorIs(t, h.Handle(ctx, cmd), courier.ErrCourierNotApproved)
		courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
