package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises both read-side handlers against
// a real PostgreSQL schema seeded through the write-side repositories.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.RatingDTO{},
	))
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_history, couriers, courier_ratings").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TestTrackOrder_ReturnsStatusAndHistory() {
	ctx := context.Background()
	seeded := suite.seedOrder("DSP-20260828-TRACK1")

	courierID := kernel.NewUUID()
	now := time.Now().UTC()
	pickupEta := now.Add(30 * time.Minute)
	deliveryEta := now.Add(2 * time.Hour)
	suite.Require().NoError(seeded.Transition(order.SystemActor(), order.StatusAssigned,
		order.TransitionMeta{
			CourierID:           &courierID,
			EstimatedPickupAt:   &pickupEta,
			EstimatedDeliveryAt: &deliveryEta,
		}, now))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db).
		Update(ctx, seeded, order.StatusPending))

	query, err := queries.NewTrackOrderQuery("DSP-20260828-TRACK1")
	suite.Require().NoError(err)

	result, err := queries.NewTrackOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("DSP-20260828-TRACK1", result.TrackingCode)
	suite.Equal("assigned", result.Status)
	suite.Require().NotNil(result.CourierID)
	suite.True(result.CourierID.IsEqual(courierID))
	suite.NotNil(result.EstimatedDeliveryAt)
	suite.InDelta(216.0, result.PriceTotal, 1e-9)

	suite.Require().Len(result.History, 2)
	suite.Equal("pending", result.History[0].To)
	suite.Equal("pending", result.History[1].From)
	suite.Equal("assigned", result.History[1].To)
	suite.Equal("admin", result.History[1].ActorRole)
}

func (suite *QueryHandlersIntegrationTestSuite) TestTrackOrder_UnknownCode() {
	query, err := queries.NewTrackOrderQuery("DSP-20260828-XXXXXX")
	suite.Require().NoError(err)

	_, err = queries.NewTrackOrderQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestLeaderboard_RanksByIndexAndSkipsUnapproved() {
	ctx := context.Background()

	suite.seedCourier("Avery", courier.OnboardingApproved, 0.9, 4.9, 400)
	suite.seedCourier("Blake", courier.OnboardingApproved, 0.6, 4.1, 120)
	suite.seedCourier("Casey", courier.OnboardingPending, 1.0, 5.0, 900)

	query, err := queries.NewCourierLeaderboardQuery(10)
	suite.Require().NoError(err)

	result, err := queries.NewCourierLeaderboardQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal("Avery", result[0].Name)
	suite.Equal("Blake", result[1].Name)
	suite.Greater(result[0].PerformanceIndex, result[1].PerformanceIndex)
	suite.Equal(400, result[0].CompletedDeliveries)
	suite.Equal(courier.TierForIndex(result[0].PerformanceIndex), result[0].Tier)
}

func (suite *QueryHandlersIntegrationTestSuite) TestLeaderboard_RespectsLimit() {
	ctx := context.Background()

	suite.seedCourier("Avery", courier.OnboardingApproved, 0.9, 4.9, 400)
	suite.seedCourier("Blake", courier.OnboardingApproved, 0.6, 4.1, 120)

	query, err := queries.NewCourierLeaderboardQuery(1)
	suite.Require().NoError(err)

	result, err := queries.NewCourierLeaderboardQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal("Avery", result[0].Name)
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(trackingCode string) *order.Order {
	pickup, err := kernel.NewGeoPoint(32.0853, 34.7818)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(31.7683, 35.2137)
	suite.Require().NoError(err)

	seeded, err := order.NewOrder(
		kernel.NewUUID(), trackingCode, kernel.NewUUID(),
		pickup, dropoff,
		order.PackageSizeSmall, 1.5, order.UrgencyStandard,
		order.RiskClassStandard, 0,
		order.PriceBreakdown{
			DistanceKm: 54, DistanceCost: 216,
			SizeMultiplier: 1, UrgencyMultiplier: 1, RiskMultiplier: 1,
			Total: 216,
		},
		"417293", time.Now().UTC(),
	)
	suite.Require().NoError(err)

	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db).Add(context.Background(), seeded))
	return seeded
}

func (suite *QueryHandlersIntegrationTestSuite) seedCourier(
	name string,
	onboarding courier.OnboardingStatus,
	scoreLevel float64,
	rating float64,
	completed int,
) {
	scores, err := courier.NewPerformanceScores(scoreLevel, scoreLevel, scoreLevel, scoreLevel)
	suite.Require().NoError(err)

	position, err := kernel.NewGeoPoint(32.0853, 34.7818)
	suite.Require().NoError(err)

	seeded, err := courier.RestoreCourier(
		kernel.NewUUID(), name, courier.VehicleClassCar, &position,
		false, false, onboarding, completed, rating, scores,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(courierrepo.NewGormCourierRepository(suite.db).Add(context.Background(), seeded))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
