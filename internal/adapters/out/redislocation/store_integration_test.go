package redislocation_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dispatch/internal/adapters/out/redislocation"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// LocationStoreIntegrationTestSuite verifies the geo set behavior against a
// real Redis instance.
type LocationStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	store     *redislocation.Store
}

func (suite *LocationStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	suite.Require().NoError(err)

	store, err := redislocation.NewStoreFromURL(fmt.Sprintf("redis://%s:%s", host, port.Port()))
	suite.Require().NoError(err)
	suite.store = store

	suite.Require().NoError(store.Ping(ctx))
}

func (suite *LocationStoreIntegrationTestSuite) TearDownSuite() {
	if suite.store != nil {
		suite.Require().NoError(suite.store.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LocationStoreIntegrationTestSuite) TestSetAndGet_RoundTrip() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	position, err := kernel.NewGeoPoint(32.0853, 34.7818)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Set(ctx, courierID, position))

	found, ok, err := suite.store.Get(ctx, courierID)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	// The geohash encoding loses sub-meter precision.
	suite.InDelta(32.0853, found.Latitude(), 1e-4)
	suite.InDelta(34.7818, found.Longitude(), 1e-4)
}

func (suite *LocationStoreIntegrationTestSuite) TestSet_ReplacesPreviousPosition() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	first, err := kernel.NewGeoPoint(32.0853, 34.7818)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Set(ctx, courierID, first))

	second, err := kernel.NewGeoPoint(31.7683, 35.2137)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Set(ctx, courierID, second))

	found, ok, err := suite.store.Get(ctx, courierID)
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.InDelta(31.7683, found.Latitude(), 1e-4)
}

func (suite *LocationStoreIntegrationTestSuite) TestGet_UnknownCourier() {
	_, ok, err := suite.store.Get(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestLocationStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LocationStoreIntegrationTestSuite))
}
