package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("should create customer and courier actors with an identity", func(t *testing.T) {
		for _, role := range []order.Role{order.RoleCustomer, order.RoleCourier} {
			id := kernel.NewUUID()

			actor, err := order.NewActor(role, id)

			require.NoError(t, err, role.String())
			assert.Equal(t, role, actor.Role())
			assert.True(t, actor.ID().IsEqual(id))
		}
	})

	t.Run("should require an identity for non-admin roles", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.NewActor(order.RoleCourier, zeroID)

		require.Error(t, err)
	})

	t.Run("should allow an admin without an identity", func(t *testing.T) {
		var zeroID kernel.UUID

		actor, err := order.NewActor(order.RoleAdmin, zeroID)

		require.NoError(t, err)
		assert.NoError(t, actor.Validate())
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		_, err := order.NewActor(order.RoleUnknown, kernel.NewUUID())

		require.Error(t, err)
	})
}

func TestSystemActor(t *testing.T) {
	actor := order.SystemActor()

	assert.Equal(t, order.RoleAdmin, actor.Role())
	assert.NoError(t, actor.Validate())
}

func TestRoleFromString(t *testing.T) {
	t.Run("should parse known roles", func(t *testing.T) {
		cases := map[string]order.Role{
			"customer": order.RoleCustomer,
			"courier":  order.RoleCourier,
			"admin":    order.RoleAdmin,
		}

		for str, expected := range cases {
			role, err := order.RoleFromString(str)

			require.NoError(t, err, str)
			assert.Equal(t, expected, role)
		}
	})

	t.Run("should reject unrecognized strings", func(t *testing.T) {
		_, err := order.RoleFromString("dispatcher")

		require.Error(t, err)
	})
}
