package queries_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres/shipmentrepo"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetShipmentByTrackingQueryHandlerTestSuite struct {
	suite.Suite
	container  *pgcontainer.PostgresContainer
	db         *gorm.DB
	handler    queries.GetShipmentByTrackingQueryHandler
	repository *shipmentrepo.GormShipmentRepository
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}))

	suite.handler = queries.NewGetShipmentByTrackingQueryHandler(db)
	suite.repository = shipmentrepo.NewGormShipmentRepository(db)
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) TestHandle_FreshShipment_ReturnsDetail() {
	ctx := context.Background()
	s := suite.seedShipment("50000001", false)

	query, err := queries.NewGetShipmentByTrackingQuery(s.Tracking())
	suite.Require().NoError(err)

	detail, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(s.Tracking().String(), detail.TrackingNumber)
	suite.Equal(s.Client(), detail.Client)
	suite.Equal(s.Quantity(), detail.Quantity)
	suite.Equal(s.Destination(), detail.Destination)
	suite.Equal(shipment.StageOrderConfirmed.Label(), detail.Status)
	suite.Equal(shipment.StageOrderConfirmed.Label(), detail.CurrentStage)
	suite.Equal(s.Plan().Slice(), detail.StageDurations)
	suite.InDelta(0, detail.TimeInStage, 1e-9)
	suite.Require().Len(detail.History, 1)
	suite.Equal(shipment.StageOrderConfirmed.Label(), detail.History[0].Status)
	suite.False(detail.OnHold)
	suite.False(detail.Finished)
	suite.False(detail.Archived)
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) TestHandle_ShipmentOnHold_ExposesIncident() {
	ctx := context.Background()
	s := suite.seedShipment("50000002", true)

	for s.CurrentStage() != shipment.StageInTransit {
		suite.Require().NoError(s.AccrueTime(float64(s.Plan().Duration(s.CurrentStage()))))
		suite.Require().NoError(s.AdvanceStage(time.Now()))
	}
	suite.Require().NoError(s.DeclareIncident(6, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	query, err := queries.NewGetShipmentByTrackingQuery(s.Tracking())
	suite.Require().NoError(err)

	detail, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(detail.OnHold)
	suite.Equal(shipment.IncidentStatus(6), detail.Status)
	suite.Equal(shipment.StageInTransit.Label(), detail.CurrentStage)
	// creation, three stage advances, incident declaration
	suite.Require().Len(detail.History, 5)
	suite.Equal(shipment.IncidentStatus(6), detail.History[4].Status)
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) TestHandle_ArchivedShipment_StillReadable() {
	ctx := context.Background()
	s := suite.seedShipment("50000003", false)
	s.Archive()
	suite.Require().NoError(suite.repository.Update(ctx, s))

	query, err := queries.NewGetShipmentByTrackingQuery(s.Tracking())
	suite.Require().NoError(err)

	detail, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(detail.Archived)
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) TestHandle_UnknownTracking_ReturnsNotFound() {
	tracking, err := kernel.TrackingIDFromString("59999999")
	suite.Require().NoError(err)

	query, err := queries.NewGetShipmentByTrackingQuery(tracking)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetShipmentByTrackingQueryHandlerTestSuite) seedShipment(rawTracking string, incidentDecision bool) *shipment.Shipment {
	tracking, err := kernel.TrackingIDFromString(rawTracking)
	suite.Require().NoError(err)

	plan, err := shipment.NewStagePlan([shipment.StageCount]int{5, 5, 5, 25, 6, 6, 6})
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(
		kernel.NewUUID(), tracking, "ACME Corp", 3, "456 Oak Avenue",
		plan, incidentDecision, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(context.Background(), s))
	return s
}

func TestGetShipmentByTrackingQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentByTrackingQueryHandlerTestSuite))
}
