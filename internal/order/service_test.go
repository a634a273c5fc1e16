package order

import (
	"context"
	"errors"
	"testing"

	"storefront-be/internal/auth"
	"storefront-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) FindWithItems(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) FindAllByCustomer(ctx context.Context, customerID int64) ([]*Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatusIfPending(ctx context.Context, orderID int64, status PaymentStatus) (bool, error) {
	args := m.Called(ctx, orderID, status)
	return args.Bool(0), args.Error(1)
}

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CurrentActor(ctx context.Context) (user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.User), args.Error(1)
}

// --- Tests ---

func TestGetOrder_ReturnsViewForOwner(t *testing.T) {
	repo := new(MockRepository)
	identity := new(MockIdentity)
	svc := NewService(repo, identity)

	o := &Order{
		ID:         99,
		CustomerID: 3,
		Status:     StatusPending,
		TotalCents: 5000,
		Items: []OrderItem{
			{ProductID: 1, ProductName: "Hammer", UnitPriceCents: 2500, Quantity: 2, TotalCents: 5000},
		},
	}

	repo.On("FindWithItems", mock.Anything, int64(99)).Return(o, nil)
	identity.On("CurrentActor", mock.Anything).Return(user.User{ID: 3, Role: user.RoleUser}, nil)

	view, err := svc.GetOrder(context.Background(), 99)

	assert.NoError(t, err)
	assert.Equal(t, int64(99), view.ID)
	assert.Equal(t, int64(5000), view.TotalCents)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "Hammer", view.Items[0].ProductName)
}

func TestGetOrder_DeniedWhenNotOwner(t *testing.T) {
	repo := new(MockRepository)
	identity := new(MockIdentity)
	svc := NewService(repo, identity)

	o := &Order{ID: 50, CustomerID: 1}

	repo.On("FindWithItems", mock.Anything, int64(50)).Return(o, nil)
	identity.On("CurrentActor", mock.Anything).Return(user.User{ID: 2, Role: user.RoleUser}, nil)

	view, err := svc.GetOrder(context.Background(), 50)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, view)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := new(MockRepository)
	identity := new(MockIdentity)
	svc := NewService(repo, identity)

	repo.On("FindWithItems", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.GetOrder(context.Background(), 404)

	assert.ErrorIs(t, err, ErrOrderNotFound)
	identity.AssertNotCalled(t, "CurrentActor", mock.Anything)
}

func TestGetOrder_Unauthenticated(t *testing.T) {
	repo := new(MockRepository)
	identity := new(MockIdentity)
	svc := NewService(repo, identity)

	repo.On("FindWithItems", mock.Anything, int64(7)).Return(&Order{ID: 7, CustomerID: 1}, nil)
	identity.On("CurrentActor", mock.Anything).Return(user.User{}, auth.ErrUnauthenticated)

	_, err := svc.GetOrder(context.Background(), 7)

	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestGetAllOrders_ReturnsOwnedOrders(t *testing.T) {
	repo := new(MockRepository)
	identity := new(MockIdentity)
	svc := NewService(repo, identity)

	identity.On("CurrentActor", mock.Anything).Return(user.User{ID: 1, Role: user.RoleUser}, nil)
	repo.On("FindAllByCustomer", mock.Anything, int64(1)).Return([]*Order{
		{ID: 10, CustomerID: 1, Status: StatusPaid, TotalCents: 1200},
	}, nil)

	views, err := svc.GetAllOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, int64(10), views[0].ID)
	assert.Equal(t, StatusPaid, views[0].Status)
}

func TestMarkAsPaid_TransitionsPendingOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockIdentity))

	repo.On("UpdateStatusIfPending", mock.Anything, int64(99), StatusPaid).Return(true, nil)

	err := svc.MarkAsPaid(context.Background(), 99)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "FindWithItems", mock.Anything, mock.Anything)
}

func TestMarkAsPaid_RepeatedDeliveryIsNoOp(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockIdentity))

	// Second delivery: nothing transitions, order is already PAID.
	repo.On("UpdateStatusIfPending", mock.Anything, int64(99), StatusPaid).Return(false, nil)
	repo.On("FindWithItems", mock.Anything, int64(99)).Return(&Order{ID: 99, Status: StatusPaid}, nil)

	err := svc.MarkAsPaid(context.Background(), 99)

	assert.NoError(t, err)
}

func TestMarkAsPaid_UnknownOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockIdentity))

	repo.On("UpdateStatusIfPending", mock.Anything, int64(404), StatusPaid).Return(false, nil)
	repo.On("FindWithItems", mock.Anything, int64(404)).Return(nil, nil)

	err := svc.MarkAsPaid(context.Background(), 404)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMarkAsFailed_IgnoredForTerminalOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockIdentity))

	// Out-of-order delivery: a FAILED webhook after the order was paid.
	repo.On("UpdateStatusIfPending", mock.Anything, int64(99), StatusFailed).Return(false, nil)
	repo.On("FindWithItems", mock.Anything, int64(99)).Return(&Order{ID: 99, Status: StatusPaid}, nil)

	err := svc.MarkAsFailed(context.Background(), 99)

	assert.NoError(t, err)
}

func TestMarkAsPaid_RepoError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockIdentity))

	repo.On("UpdateStatusIfPending", mock.Anything, int64(1), StatusPaid).
		Return(false, errors.New("db error"))

	err := svc.MarkAsPaid(context.Background(), 1)

	assert.Error(t, err)
}
