package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"furnirent-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, category, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) GetAvailable(ctx context.Context, id int32) (int32, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockProductRepo) ReserveStock(ctx context.Context, productID, quantity int32) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}
func (m *MockProductRepo) ReleaseStock(ctx context.Context, productID, quantity int32) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOrder), args.Error(1)
}
func (m *MockOrderRepo) Update(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.RentalOrder, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.RentalOrder), args.Error(1)
}
func (m *MockOrderRepo) ListAwaitingInstallment(ctx context.Context) ([]domain.RentalOrder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalOrder), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Record(ctx context.Context, event *domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockAuditRepo) ListByEntity(ctx context.Context, module string, entityID int32) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, module, entityID)
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderCreated(ctx context.Context, email, name string, orderID int32, totalCents int64) error {
	args := m.Called(ctx, email, name, orderID, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderStatusChanged(ctx context.Context, email, name string, orderID int32, status domain.OrderStatus) error {
	args := m.Called(ctx, email, name, orderID, status)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderCancelled(ctx context.Context, email, name string, orderID int32) error {
	args := m.Called(ctx, email, name, orderID)
	return args.Error(0)
}
func (m *MockEmailService) SendInstallmentReceipt(ctx context.Context, email, name string, orderID int32, kind domain.InstallmentKind, amountCents int64) error {
	args := m.Called(ctx, email, name, orderID, kind, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendInstallmentReminder(ctx context.Context, email, name string, orderID int32, kind domain.InstallmentKind, amountCents int64) error {
	args := m.Called(ctx, email, name, orderID, kind, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendTransportFeeAccepted(ctx context.Context, email, name string, orderID int32, feeCents int64) error {
	args := m.Called(ctx, email, name, orderID, feeCents)
	return args.Error(0)
}
