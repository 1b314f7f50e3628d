package service_test

import (
	"context"
	"time"

	"voltpark-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockVendorRepo
type MockVendorRepo struct {
	mock.Mock
}

func (m *MockVendorRepo) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
func (m *MockVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vendor), args.Error(1)
}
func (m *MockVendorRepo) Update(ctx context.Context, vendor *domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

// MockStationRepo
type MockStationRepo struct {
	mock.Mock
}

func (m *MockStationRepo) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}
func (m *MockStationRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Station, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]domain.Station), args.Error(1)
}
func (m *MockStationRepo) GetImages(ctx context.Context, stationID string) ([]domain.StationImage, error) {
	args := m.Called(ctx, stationID)
	return args.Get(0).([]domain.StationImage), args.Error(1)
}
func (m *MockStationRepo) CreateWithImages(ctx context.Context, station *domain.Station, images []domain.StationImage) error {
	args := m.Called(ctx, station, images)
	return args.Error(0)
}
func (m *MockStationRepo) UpdateImages(ctx context.Context, stationID string, add []domain.StationImage, removeImageIDs []string) error {
	args := m.Called(ctx, stationID, add, removeImageIDs)
	return args.Error(0)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*domain.ChargingTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChargingTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListCompletedInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.ChargingTransaction, error) {
	args := m.Called(ctx, vendorID, start, end)
	return args.Get(0).([]domain.ChargingTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListUnsettledInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.ChargingTransaction, error) {
	args := m.Called(ctx, vendorID, start, end)
	return args.Get(0).([]domain.ChargingTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListBySettlement(ctx context.Context, settlementID string) ([]domain.ChargingTransaction, error) {
	args := m.Called(ctx, settlementID)
	return args.Get(0).([]domain.ChargingTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListEarmarked(ctx context.Context, vendorID string) ([]domain.ChargingTransaction, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]domain.ChargingTransaction), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.RestaurantOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestaurantOrder), args.Error(1)
}
func (m *MockOrderRepo) ListCompletedInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.RestaurantOrder, error) {
	args := m.Called(ctx, vendorID, start, end)
	return args.Get(0).([]domain.RestaurantOrder), args.Error(1)
}
func (m *MockOrderRepo) ListUnsettledInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.RestaurantOrder, error) {
	args := m.Called(ctx, vendorID, start, end)
	return args.Get(0).([]domain.RestaurantOrder), args.Error(1)
}
func (m *MockOrderRepo) ListBySettlement(ctx context.Context, settlementID string) ([]domain.RestaurantOrder, error) {
	args := m.Called(ctx, settlementID)
	return args.Get(0).([]domain.RestaurantOrder), args.Error(1)
}
func (m *MockOrderRepo) ListEarmarked(ctx context.Context, vendorID string) ([]domain.RestaurantOrder, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]domain.RestaurantOrder), args.Error(1)
}

// MockSettlementRepo
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) GetByID(ctx context.Context, id string) (*domain.SettlementRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementRecord), args.Error(1)
}
func (m *MockSettlementRepo) ListByVendor(ctx context.Context, vendorID string, limit int32) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, vendorID, limit)
	return args.Get(0).([]domain.SettlementRecord), args.Error(1)
}
func (m *MockSettlementRepo) FindActiveOverlapping(ctx context.Context, vendorID string, start, end time.Time) (*domain.SettlementRecord, error) {
	args := m.Called(ctx, vendorID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementRecord), args.Error(1)
}
func (m *MockSettlementRepo) FindLatestActiveByVendor(ctx context.Context, vendorID string) (*domain.SettlementRecord, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementRecord), args.Error(1)
}
func (m *MockSettlementRepo) CreateWithEarmarks(ctx context.Context, rec *domain.SettlementRecord, txnIDs, orderIDs []string) error {
	args := m.Called(ctx, rec, txnIDs, orderIDs)
	return args.Error(0)
}
func (m *MockSettlementRepo) CompleteAndRelease(ctx context.Context, settlementID, paymentReference, notes string, processedAt time.Time) error {
	args := m.Called(ctx, settlementID, paymentReference, notes, processedAt)
	return args.Error(0)
}
func (m *MockSettlementRepo) SettleOrphanEarmarks(ctx context.Context, txnIDs, orderIDs []string, processedAt time.Time) error {
	args := m.Called(ctx, txnIDs, orderIDs, processedAt)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipientID, title, message string, severity domain.NotificationSeverity, attributes map[string]string) {
	m.Called(ctx, recipientID, title, message, severity, attributes)
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendSettlementCompletedNotification(ctx context.Context, email, vendorName string, amountCents int64, paymentReference, date string) error {
	args := m.Called(ctx, email, vendorName, amountCents, paymentReference, date)
	return args.Error(0)
}
func (m *MockEmail) SendPendingSettlementDigest(ctx context.Context, adminEmail, date string, summaries []domain.VendorSettlementSummary) error {
	args := m.Called(ctx, adminEmail, date, summaries)
	return args.Error(0)
}
