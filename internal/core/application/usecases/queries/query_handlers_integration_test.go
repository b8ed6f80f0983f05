package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(order.OrderID, *order.Order) {}

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderDetailDTO{}))
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_details").Error)
}

func (suite *QueryHandlersTestSuite) TestGetOrderSummary_MatchesAggregateSummary() {
	ctx := context.Background()
	placed := suite.addOrder("u1", "ORD-1", time.Now().UTC())
	expected, err := placed.Summary()
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderSummaryQuery(placed.ID().String())
	suite.Require().NoError(err)

	summary, err := queries.NewGetOrderSummaryQueryHandler(suite.db, nil).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(expected.OrderID, summary.OrderID)
	suite.Equal(expected.Code, summary.Code)
	suite.Equal("PENDING", summary.Status)
	suite.Equal("PENDING", summary.PaymentStatus)
	suite.Equal("125000 VND", summary.Subtotal)
	suite.Equal("10000 VND", summary.ShippingFee)
	suite.Equal("135000 VND", summary.TotalAmount)
	suite.Equal(expected.TotalAmount, summary.TotalAmount)
	suite.Equal(2, summary.ItemCount)
	suite.WithinDuration(expected.CreatedAt, summary.CreatedAt, time.Millisecond)
}

func (suite *QueryHandlersTestSuite) TestGetOrderSummary_MissFillsCache() {
	ctx := context.Background()
	placed := suite.addOrder("u1", "ORD-1", time.Now().UTC())

	cache := new(MockSummaryCache)
	cache.On("GetSummary", mock.Anything, placed.ID().String()).Return(order.Summary{}, false, nil).Once()
	cache.On("SetSummary", mock.Anything, mock.MatchedBy(func(s order.Summary) bool {
		return s.OrderID == placed.ID().String() && s.TotalAmount == "135000 VND"
	})).Return(nil).Once()

	query, err := queries.NewGetOrderSummaryQuery(placed.ID().String())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderSummaryQueryHandler(suite.db, cache).Handle(ctx, query)

	suite.Require().NoError(err)
	cache.AssertExpectations(suite.T())
}

func (suite *QueryHandlersTestSuite) TestGetOrderSummary_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderSummaryQuery(order.NewOrderID().String())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderSummaryQueryHandler(suite.db, nil).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestListUserOrders_NewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	older := suite.addOrder("u1", "ORD-1", base)
	newer := suite.addOrder("u1", "ORD-2", base.Add(time.Minute))
	suite.addOrder("u2", "ORD-3", base)

	query, err := queries.NewListUserOrdersQuery("u1")
	suite.Require().NoError(err)

	summaries, err := queries.NewListUserOrdersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal(newer.ID().String(), summaries[0].OrderID)
	suite.Equal(older.ID().String(), summaries[1].OrderID)
}

func (suite *QueryHandlersTestSuite) TestListUserOrders_NoOrders_ReturnsEmpty() {
	query, err := queries.NewListUserOrdersQuery("nobody")
	suite.Require().NoError(err)

	summaries, err := queries.NewListUserOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(summaries)
	suite.Empty(summaries)
}

// addOrder stores an order with lines S1 × 2 at 50000 and S2 × 1 at 25000 plus a 10000 VND fee.
func (suite *QueryHandlersTestSuite) addOrder(userID, code string, createdAt time.Time) *order.Order {
	vnd := func(amount int64) kernel.Money {
		m, err := kernel.NewMoneyFromInt(amount, "VND")
		suite.Require().NoError(err)
		return m
	}

	id := order.NewOrderID()
	detail := func(sku string, qty int, price int64) order.OrderDetail {
		product, err := order.NewProductDetail(order.ProductDetailParams{Name: "Product " + sku})
		suite.Require().NoError(err)
		d, err := order.NewOrderDetail(id.String(), sku, qty, vnd(price), product)
		suite.Require().NoError(err)
		return d
	}

	address, err := order.NewShippingAddress(
		"Nguyen Van A", "0912345678", "12 Ly Thuong Kiet", "Ha Noi", "Hoan Kiem", "Hang Bai",
	)
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:              id,
		UserID:          userID,
		Code:            code,
		Status:          order.StatusPending,
		PaymentStatus:   order.PaymentStatusPending,
		ShippingAddress: address,
		ReceiverName:    "Nguyen Van A",
		ReceiverPhone:   "0912345678",
		OrderDetails:    []order.OrderDetail{detail("S1", 2, 50000), detail("S2", 1, 25000)},
		ShippingFee:     vnd(10000),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func TestQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	suite.Run(t, new(QueryHandlersTestSuite))
}
