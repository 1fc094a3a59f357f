package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCourierLocationCommandHandler_Handle(t *testing.T) {
	t.Run("should store position in cache and on the courier row", func(t *testing.T) {
		ctx := t.Context()
		located := availableCourierFixture(t, mustGeoPoint(t, 32.0853, 34.7818))
		position := mustGeoPoint(t, 32.0900, 34.7900)

		store := new(MockLocationStore)
		store.On("Set", ctx, located.ID(), position).Return(nil).Once()

		courierRepo := new(MockCourierRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		courierRepo.On("Get", ctx, located.ID()).Return(located, nil).Once()
		courierRepo.On("Update", ctx, located).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockCourierUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewUpdateCourierLocationCommand(located.ID(), position)
		require.NoError(t, err)

		h := commands.NewUpdateCourierLocationCommandHandler(factory, store, discardLogger())
		require.NoError(t, h.Handle(ctx, cmd))

		require.NotNil(t, located.Location())
		assert.InDelta(t, 32.0900, located.Location().Latitude(), 1e-9)
		store.AssertExpectations(t)
	})

	t.Run("should survive a cache write failure", func(t *testing.T) {
		ctx := t.Context()
		located := availableCourierFixture(t, mustGeoPoint(t, 32.0853, 34.7818))
		position := mustGeoPoint(t, 32.0900, 34.7900)

		store := new(MockLocationStore)
		store.On("Set", ctx, located.ID(), position).Return(errors.New("redis: connection refused")).Once()

		courierRepo := new(MockCourierRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		courierRepo.On("Get", ctx, located.ID()).Return(located, nil).Once()
		courierRepo.On("Update", ctx, located).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockCourierUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewUpdateCourierLocationCommand(located.ID(), position)
		require.NoError(t, err)

		h := commands.NewUpdateCourierLocationCommandHandler(factory, store, discardLogger())
		assert.NoError(t, h.Handle(ctx, cmd))
	})
}
