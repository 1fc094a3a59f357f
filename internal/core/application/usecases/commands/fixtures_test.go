package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func pendingOrderFixture(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "DSP-20260828-TEST01", kernel.NewUUID(),
		mustGeoPoint(t, 32.0853, 34.7818), mustGeoPoint(t, 31.7683, 35.2137),
		order.PackageSizeSmall, 1.5, order.UrgencyStandard,
		order.RiskClassStandard, 0,
		order.PriceBreakdown{
			DistanceKm: 54, DistanceCost: 216,
			SizeMultiplier: 1, UrgencyMultiplier: 1, RiskMultiplier: 1,
			Total: 216,
		},
		"417293", time.Now().UTC(),
	)
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

// inTransitOrderFixture drives a fresh order to in_transit and returns it
// with the assigned courier's ID. The handover code is 417293.
func inTransitOrderFixture(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	o := pendingOrderFixture(t)
	courierID := kernel.NewUUID()
	now := time.Now().UTC()

	require.NoError(t, o.Transition(order.SystemActor(), order.StatusAssigned,
		order.TransitionMeta{CourierID: &courierID}, now))

	actor, err := order.NewActor(order.RoleCourier, courierID)
	require.NoError(t, err)
	require.NoError(t, o.Transition(actor, order.StatusPickedUp, order.TransitionMeta{}, now))
	require.NoError(t, o.Transition(actor, order.StatusInTransit, order.TransitionMeta{}, now))

	o.ClearEvents()
	return o, courierID
}

func availableCourierFixture(t *testing.T, position kernel.GeoPoint) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(
		kernel.NewUUID(), "Dana Reyes", courier.VehicleClassCar, &position,
		true, true, courier.OnboardingApproved, 100, 4.8,
		courier.DefaultPerformanceScores(),
	)
	require.NoError(t, err)
	return c
}
