package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence behavior
// against a real PostgreSQL instance, including the conditional status write
// that backs optimistic concurrency.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.HistoryEntryDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_history").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	original := suite.newPendingOrder("DSP-20260828-RND001")

	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(original))
	suite.Equal(original.TrackingCode(), restored.TrackingCode())
	suite.Equal(order.StatusPending, restored.Status())
	suite.Equal(original.PackageSize(), restored.PackageSize())
	suite.InDelta(original.Price().Total, restored.Price().Total, 1e-9)
	suite.Equal(original.VerificationCode(), restored.VerificationCode())
	suite.InDelta(original.Pickup().Latitude(), restored.Pickup().Latitude(), 1e-9)

	suite.Require().Len(restored.History(), 1)
	suite.Equal(order.StatusPending, restored.History()[0].To)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByTrackingCode() {
	ctx := context.Background()
	original := suite.newPendingOrder("DSP-20260828-TRK001")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(original))

	byCode, err := suite.repository.GetByTrackingCode(ctx, "DSP-20260828-TRK001")
	suite.Require().NoError(err)
	suite.True(byCode.IsEqual(original))

	_, err = suite.repository.GetByTrackingCode(ctx, "DSP-20260828-NOPE99")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	original := suite.newPendingOrder("DSP-20260828-UPD001")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	courierID := kernel.NewUUID()
	suite.Require().NoError(original.Transition(order.SystemActor(), order.StatusAssigned,
		order.TransitionMeta{CourierID: &courierID}, time.Now().UTC()))

	suite.Require().NoError(suite.repository.Update(ctx, original, order.StatusPending))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAssigned, restored.Status())
	suite.Require().NotNil(restored.Courier())
	suite.True(restored.Courier().IsEqual(courierID))
	suite.Require().Len(restored.History(), 2)
	suite.Equal(order.StatusAssigned, restored.History()[1].To)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleWriteLosesRace() {
	ctx := context.Background()
	original := suite.newPendingOrder("DSP-20260828-RACE01")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	// Two transactions load the same pending order.
	winner, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	loser, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	winnerCourier := kernel.NewUUID()
	suite.Require().NoError(winner.Transition(order.SystemActor(), order.StatusAssigned,
		order.TransitionMeta{CourierID: &winnerCourier}, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, winner, order.StatusPending))

	loserCourier := kernel.NewUUID()
	suite.Require().NoError(loser.Transition(order.SystemActor(), order.StatusAssigned,
		order.TransitionMeta{CourierID: &loserCourier}, time.Now().UTC()))
	err = suite.repository.Update(ctx, loser, order.StatusPending)
	suite.ErrorIs(err, ports.ErrStaleWrite)

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(restored.Courier())
	suite.True(restored.Courier().IsEqual(winnerCourier))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	ctx := context.Background()
	ghost := suite.newPendingOrder("DSP-20260828-GHOST1")

	err := suite.repository.Update(ctx, ghost, order.StatusPending)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInPendingStatus_OldestFirst() {
	ctx := context.Background()

	first := suite.newPendingOrder("DSP-20260828-OLD001")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	second := suite.newPendingOrder("DSP-20260828-NEW001")
	suite.Require().NoError(suite.repository.Add(ctx, second))

	oldest, err := suite.repository.GetFirstInPendingStatus(ctx)
	suite.Require().NoError(err)
	suite.True(oldest.IsEqual(first))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInPendingStatus_NonePending() {
	_, err := suite.repository.GetFirstInPendingStatus(context.Background())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder(trackingCode string) *order.Order {
	pickup, err := kernel.NewGeoPoint(32.0853, 34.7818)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(31.7683, 35.2137)
	suite.Require().NoError(err)

	created, err := order.NewOrder(
		kernel.NewUUID(), trackingCode, kernel.NewUUID(),
		pickup, dropoff,
		order.PackageSizeMedium, 4.2, order.UrgencyExpress,
		order.RiskClassStandard, 0,
		order.PriceBreakdown{
			DistanceKm: 54, DistanceCost: 216,
			SizeMultiplier: 1.2, UrgencyMultiplier: 1.5, RiskMultiplier: 1,
			Total: 388.80,
		},
		"417293", time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return created
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
