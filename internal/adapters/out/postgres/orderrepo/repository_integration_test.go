package orderrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderSectionDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderItemPropertyDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_sections, order_items, order_item_properties",
	).Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(orderNumber string) *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), orderNumber, 42, "Acme Interiors", nil, "rush job")
	suite.Require().NoError(err)

	section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddSection(section))

	suite.Require().NoError(testOrder.AddItemToSection(1, suite.createTestItem()))
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestItem() *order.OrderItem {
	base, err := kernel.NewMoneyFromFloat(1000)
	suite.Require().NoError(err)
	final, err := kernel.NewMoneyFromFloat(1200)
	suite.Require().NoError(err)
	total, err := kernel.NewMoneyFromFloat(2400)
	suite.Require().NoError(err)

	property, err := order.NewPropertyInOrder(kernel.NewUUID(), "MATERIAL", "Material", "oak")
	suite.Require().NoError(err)

	item, err := order.NewOrderItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Cabinet Front",
		2, 1, 1,
		order.ItemPrices{Base: base, Final: final, Total: total},
		[]order.PropertyInOrder{property},
	)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_FullTree() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-001")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal("ORD-2025-001", restored.OrderNumber())
	suite.Equal(int64(42), restored.ClientID())
	suite.Equal("Acme Interiors", restored.ClientName())
	suite.Equal(order.Draft, restored.Status())
	suite.Equal(order.Unpaid, restored.PaymentStatus())
	suite.Equal("rush job", restored.Notes())
	suite.Require().Len(restored.Sections(), 1)

	section := restored.Sections()[0]
	suite.Equal(1, section.SectionNumber())
	suite.Equal("Kitchen", section.Name())
	suite.Require().Len(section.Items(), 1)

	item := section.Items()[0]
	suite.Equal("Cabinet Front", item.ProductName())
	suite.InEpsilon(2.0, item.Quantity(), 1e-9)
	suite.InEpsilon(2400.0, item.TotalPrice().Float64(), 1e-9)
	suite.Require().Len(item.Properties(), 1)
	suite.Equal("MATERIAL", item.Properties()[0].PropertyCode())
	suite.Equal("oak", item.Properties()[0].Value())

	suite.InEpsilon(2400.0, restored.TotalAmount().Float64(), 1e-9)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesChildTree() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Remove the only section and change the status
	suite.Require().NoError(testOrder.RemoveSection(1))
	section, err := order.NewOrderSection(2, "Bedroom", nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddSection(section))
	suite.Require().NoError(testOrder.AddItemToSection(2, suite.createTestItem()))
	suite.Require().NoError(testOrder.ChangeStatus(order.Confirmed))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, restored.Status())
	suite.Require().Len(restored.Sections(), 1)
	suite.Equal(2, restored.Sections()[0].SectionNumber())
	suite.Equal("Bedroom", restored.Sections()[0].Name())
}

func (suite *OrderRepositoryIntegrationTestSuite) createNamedItem(productName string) *order.OrderItem {
	base, err := kernel.NewMoneyFromFloat(1000)
	suite.Require().NoError(err)
	final, err := kernel.NewMoneyFromFloat(1200)
	suite.Require().NoError(err)
	total, err := kernel.NewMoneyFromFloat(2400)
	suite.Require().NoError(err)

	item, err := order.NewOrderItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		productName,
		2, 1, 1,
		order.ItemPrices{Base: base, Final: final, Total: total},
		nil,
	)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PreservesItemOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// The update rewrites the whole child tree; a read afterwards must still
	// return the items in the order the section holds them.
	suite.Require().NoError(testOrder.AddItemToSection(1, suite.createNamedItem("Side Panel")))
	suite.Require().NoError(testOrder.AddItemToSection(1, suite.createNamedItem("Shelf")))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(restored.Sections(), 1)

	items := restored.Sections()[0].Items()
	suite.Require().Len(items, 3)
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.ProductName())
	}
	suite.Equal([]string{"Cabinet Front", "Side Panel", "Shelf"}, names)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLockRelease() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-001")
	suite.Require().NoError(testOrder.AcquireLock(7))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ReleaseLock(7))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Nil(restored.Lock())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-001")

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByOrderNumber() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-007")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.GetByOrderNumber(ctx, "ORD-2025-007")
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(restored))

	_, err = suite.repository.GetByOrderNumber(ctx, "ORD-2025-999")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestExistsByOrderNumber() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-2025-001")))

	exists, err := suite.repository.ExistsByOrderNumber(ctx, "ORD-2025-001")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.ExistsByOrderNumber(ctx, "ORD-2025-002")
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_Filters() {
	ctx := context.Background()

	first := suite.createTestOrder("ORD-2025-001")
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestOrder("ORD-2025-002")
	suite.Require().NoError(second.ChangeStatus(order.Confirmed))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	all, err := suite.repository.GetAll(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	// Newest order number first
	suite.Equal("ORD-2025-002", all[0].OrderNumber())

	confirmed, err := suite.repository.GetAll(ctx, ports.OrderFilter{Status: order.Confirmed})
	suite.Require().NoError(err)
	suite.Require().Len(confirmed, 1)
	suite.True(second.IsEqual(confirmed[0]))

	none, err := suite.repository.GetAll(ctx, ports.OrderFilter{ClientID: 99})
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-2025-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.Delete(ctx, testOrder.ID()))

	_, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var itemCount int64
	suite.Require().NoError(suite.db.Table("order_items").Count(&itemCount).Error)
	suite.Zero(itemCount)

	err = suite.repository.Delete(ctx, testOrder.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextOrderNumber_Sequence() {
	ctx := context.Background()

	first, err := suite.repository.NextOrderNumber(ctx)
	suite.Require().NoError(err)
	suite.Regexp(`^ORD-\d{4}-001$`, first)

	testOrder, err := order.NewOrder(kernel.NewUUID(), first, 42, "Acme Interiors", nil, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	second, err := suite.repository.NextOrderNumber(ctx)
	suite.Require().NoError(err)
	suite.Regexp(`^ORD-\d{4}-002$`, second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextOrderNumber_CrossesPaddingBoundary() {
	ctx := context.Background()
	prefix := fmt.Sprintf("ORD-%d-", time.Now().Year())

	// Once the sequence outgrows its zero padding, a lexicographic max would
	// stick at 999 and re-issue taken numbers.
	seeded, err := order.NewOrder(kernel.NewUUID(), prefix+"999", 42, "Acme Interiors", nil, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, seeded))

	next, err := suite.repository.NextOrderNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(prefix+"1000", next)

	wide, err := order.NewOrder(kernel.NewUUID(), next, 42, "Acme Interiors", nil, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, wide))

	next, err = suite.repository.NextOrderNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(prefix+"1001", next)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetLockedBefore() {
	ctx := context.Background()

	locked := suite.createTestOrder("ORD-2025-001")
	suite.Require().NoError(locked.AcquireLock(7))
	suite.Require().NoError(suite.repository.Add(ctx, locked))

	unlocked := suite.createTestOrder("ORD-2025-002")
	suite.Require().NoError(suite.repository.Add(ctx, unlocked))

	expired, err := suite.repository.GetLockedBefore(ctx, time.Now().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(locked.IsEqual(expired[0]))

	expired, err = suite.repository.GetLockedBefore(ctx, time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(expired)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
