package service_test

import (
	"context"
	"testing"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/service"
	"voltpark-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testInstant = time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)

func newSettlementFixture() (*MockSettlementRepo, *MockTransactionRepo, *MockOrderRepo, *MockVendorRepo, *MockNotifier, service.SettlementService) {
	settlementRepo := new(MockSettlementRepo)
	txnRepo := new(MockTransactionRepo)
	orderRepo := new(MockOrderRepo)
	vendorRepo := new(MockVendorRepo)
	notifier := new(MockNotifier)
	aggregator := service.NewAggregator(txnRepo, orderRepo, vendorRepo, 500, 10)
	svc := service.NewSettlementService(
		settlementRepo, txnRepo, orderRepo, vendorRepo,
		aggregator, notifier, utils.FixedClock{Instant: testInstant}, 500,
	)
	return settlementRepo, txnRepo, orderRepo, vendorRepo, notifier, svc
}

func testVendor() *domain.Vendor {
	return &domain.Vendor{
		ID:    "vendor-1",
		Name:  "Volt Charging Co",
		Email: "owner@voltcharging.example",
		BankDetails: domain.BankDetails{
			AccountHolder: "Volt Charging Co",
			AccountNumber: "000111222333",
			BankName:      "First National",
			IFSCCode:      "FNB0001234",
		},
	}
}

func TestSettlementService_InitiateSettlement(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	t.Run("Success", func(t *testing.T) {
		settlementRepo, txnRepo, orderRepo, vendorRepo, _, svc := newSettlementFixture()

		vendorRepo.On("GetByID", ctx, "vendor-1").Return(testVendor(), nil)
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(nil, nil)
		txnRepo.On("ListUnsettledInWindow", ctx, "vendor-1", start, end).Return([]domain.ChargingTransaction{
			{ID: "txn-1", VendorID: "vendor-1", TotalAmountCents: 10000, Status: domain.TransactionStatusCompleted},
			{ID: "txn-2", VendorID: "vendor-1", TotalAmountCents: 4000, Status: domain.TransactionStatusCompleted},
		}, nil)
		orderRepo.On("ListUnsettledInWindow", ctx, "vendor-1", start, end).Return([]domain.RestaurantOrder{
			{ID: "ord-1", VendorID: "vendor-1", TotalAmountCents: 25000, Status: domain.OrderStatusDelivered},
		}, nil)

		var captured *domain.SettlementRecord
		settlementRepo.On("CreateWithEarmarks", ctx, mock.AnythingOfType("*domain.SettlementRecord"),
			[]string{"txn-1", "txn-2"}, []string{"ord-1"}).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*domain.SettlementRecord)
			}).Return(nil)

		result, err := svc.InitiateSettlement(ctx, "vendor-1", "2026-03-15", 38000)
		assert.NoError(t, err)
		assert.Equal(t, domain.SettlementStatusProcessing, result.Status)
		assert.Equal(t, 3, result.TransactionCount)
		assert.Equal(t, int64(38000), result.AmountCents)
		assert.NotEmpty(t, result.SettlementID)

		assert.Equal(t, "vendor-1", captured.VendorID)
		assert.Equal(t, domain.SettlementRequestTypeManual, captured.RequestType)
		assert.Equal(t, start, captured.PeriodStart)
		assert.Equal(t, end, captured.PeriodEnd)
		assert.Equal(t, testInstant, captured.RequestedAt)
		// 10000-500 + 4000-500 + 25000
		assert.Equal(t, "38000", captured.Metadata["computed_pending_cents"])
	})

	t.Run("SnapshotsBankDetails", func(t *testing.T) {
		settlementRepo, txnRepo, orderRepo, vendorRepo, _, svc := newSettlementFixture()

		vendor := testVendor()
		vendorRepo.On("GetByID", ctx, "vendor-1").Return(vendor, nil)
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(nil, nil)
		txnRepo.On("ListUnsettledInWindow", ctx, "vendor-1", start, end).Return([]domain.ChargingTransaction{
			{ID: "txn-1", VendorID: "vendor-1", TotalAmountCents: 10000},
		}, nil)
		orderRepo.On("ListUnsettledInWindow", ctx, "vendor-1", start, end).Return([]domain.RestaurantOrder{}, nil)

		var captured *domain.SettlementRecord
		settlementRepo.On("CreateWithEarmarks", ctx, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*domain.SettlementRecord)
			}).Return(nil)

		_, err := svc.InitiateSettlement(ctx, "vendor-1", "2026-03-15", 9500)
		assert.NoError(t, err)

		// Editing the vendor afterwards must not change the payout destination.
		vendor.BankDetails.AccountNumber = "999999999999"
		assert.Equal(t, "000111222333", captured.BankDetails.AccountNumber)
		assert.Equal(t, "First National", captured.BankDetails.BankName)
	})

	t.Run("OverlappingActiveSettlement", func(t *testing.T) {
		settlementRepo, _, _, vendorRepo, _, svc := newSettlementFixture()

		vendorRepo.On("GetByID", ctx, "vendor-1").Return(testVendor(), nil)
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(&domain.SettlementRecord{
			ID:          "SETL-EXISTING",
			VendorID:    "vendor-1",
			Status:      domain.SettlementStatusProcessing,
			PeriodStart: start,
			PeriodEnd:   end,
		}, nil)

		_, err := svc.InitiateSettlement(ctx, "vendor-1", "2026-03-15", 5000)
		assert.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		assert.Equal(t, domain.CodeWindowConflict, domain.ErrorCode(err))
		assert.Contains(t, err.Error(), "SETL-EXISTING")
	})

	t.Run("NoPendingWork", func(t *testing.T) {
		settlementRepo, txnRepo, orderRepo, vendorRepo, _, svc := newSettlementFixture()

		vendorRepo.On("GetByID", ctx, "vendor-1").Return(testVendor(), nil)
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(nil, nil)
		txnRepo.On("ListUnsettledInWindow", ctx, "vendor-1", start, end).Return([]domain.ChargingTransaction{}, nil)
		orderRepo.On("ListUnsettledInWindow", ctx, "vendor-1", start, end).Return([]domain.RestaurantOrder{}, nil)

		_, err := svc.InitiateSettlement(ctx, "vendor-1", "2026-03-15", 5000)
		assert.Error(t, err)
		assert.Equal(t, domain.CodeNoPendingWork, domain.ErrorCode(err))
		settlementRepo.AssertNotCalled(t, "CreateWithEarmarks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("VendorNotFound", func(t *testing.T) {
		_, _, _, vendorRepo, _, svc := newSettlementFixture()

		vendorRepo.On("GetByID", ctx, "ghost").Return(nil, domain.NewNotFoundError("vendor", "ghost"))

		_, err := svc.InitiateSettlement(ctx, "ghost", "2026-03-15", 5000)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("RejectsBadInput", func(t *testing.T) {
		_, _, _, _, _, svc := newSettlementFixture()

		_, err := svc.InitiateSettlement(ctx, "", "2026-03-15", 5000)
		assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))

		_, err = svc.InitiateSettlement(ctx, "vendor-1", "15-03-2026", 5000)
		assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))

		_, err = svc.InitiateSettlement(ctx, "vendor-1", "2026-03-15", 0)
		assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))
	})
}

func TestSettlementService_CompleteSettlement(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	activeRecord := func() *domain.SettlementRecord {
		return &domain.SettlementRecord{
			ID:             "SETL-20260315-abcd1234",
			VendorID:       "vendor-1",
			AmountCents:    38000,
			SettlementDate: "2026-03-15",
			TransactionIDs: []string{"txn-1", "txn-2"},
			OrderIDs:       []string{"ord-1"},
			Status:         domain.SettlementStatusProcessing,
			PeriodStart:    start,
			PeriodEnd:      end,
		}
	}

	t.Run("ByExactID", func(t *testing.T) {
		settlementRepo, _, _, _, notifier, svc := newSettlementFixture()

		rec := activeRecord()
		settlementRepo.On("GetByID", ctx, rec.ID).Return(rec, nil)
		settlementRepo.On("CompleteAndRelease", ctx, rec.ID, "UTR-998877", "paid via neft", testInstant).Return(nil)
		notifier.On("Notify", ctx, "vendor-1", mock.Anything, mock.Anything, domain.NotificationSeveritySuccess, mock.Anything).Return()

		result, err := svc.CompleteSettlement(ctx, service.CompleteRequest{
			SettlementID:     rec.ID,
			PaymentReference: "UTR-998877",
			Notes:            "paid via neft",
		})
		assert.NoError(t, err)
		assert.Equal(t, rec.ID, result.SettlementID)
		assert.Equal(t, domain.SettlementStatusCompleted, result.Status)
		assert.Equal(t, int64(38000), result.AmountCents)
		assert.Equal(t, 3, result.ItemCount)
		assert.False(t, result.Recovered)
		notifier.AssertExpectations(t)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		settlementRepo, _, _, _, _, svc := newSettlementFixture()

		processedAt := testInstant.Add(-2 * time.Hour)
		rec := activeRecord()
		rec.Status = domain.SettlementStatusCompleted
		rec.PaymentReference = "UTR-ORIGINAL"
		rec.ProcessedAt = &processedAt
		settlementRepo.On("GetByID", ctx, rec.ID).Return(rec, nil)

		_, err := svc.CompleteSettlement(ctx, service.CompleteRequest{
			SettlementID:     rec.ID,
			PaymentReference: "UTR-SECOND-ATTEMPT",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.CodeAlreadyCompleted, domain.ErrorCode(err))
		assert.Contains(t, err.Error(), "UTR-ORIGINAL")
		settlementRepo.AssertNotCalled(t, "CompleteAndRelease", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FallsBackToVendorWindow", func(t *testing.T) {
		settlementRepo, _, _, _, notifier, svc := newSettlementFixture()

		rec := activeRecord()
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(rec, nil)
		settlementRepo.On("CompleteAndRelease", ctx, rec.ID, "UTR-1", "", testInstant).Return(nil)
		notifier.On("Notify", ctx, "vendor-1", mock.Anything, mock.Anything, domain.NotificationSeveritySuccess, mock.Anything).Return()

		result, err := svc.CompleteSettlement(ctx, service.CompleteRequest{
			VendorID:         "vendor-1",
			Date:             "2026-03-15",
			PaymentReference: "UTR-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, rec.ID, result.SettlementID)
		settlementRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("FallsBackToLatestActive", func(t *testing.T) {
		settlementRepo, _, _, _, notifier, svc := newSettlementFixture()

		rec := activeRecord()
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(nil, nil)
		settlementRepo.On("FindLatestActiveByVendor", ctx, "vendor-1").Return(rec, nil)
		settlementRepo.On("CompleteAndRelease", ctx, rec.ID, "UTR-2", "", testInstant).Return(nil)
		notifier.On("Notify", ctx, "vendor-1", mock.Anything, mock.Anything, domain.NotificationSeveritySuccess, mock.Anything).Return()

		result, err := svc.CompleteSettlement(ctx, service.CompleteRequest{
			VendorID:         "vendor-1",
			Date:             "2026-03-15",
			PaymentReference: "UTR-2",
		})
		assert.NoError(t, err)
		assert.Equal(t, rec.ID, result.SettlementID)
	})

	t.Run("RecoversOrphanedEarmarks", func(t *testing.T) {
		settlementRepo, txnRepo, orderRepo, _, notifier, svc := newSettlementFixture()

		goneID := "SETL-GONE"
		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(nil, nil)
		settlementRepo.On("FindLatestActiveByVendor", ctx, "vendor-1").Return(nil, nil)
		txnRepo.On("ListEarmarked", ctx, "vendor-1").Return([]domain.ChargingTransaction{
			{ID: "txn-9", VendorID: "vendor-1", TotalAmountCents: 10000,
				SettlementStatus: domain.ItemSettlementStatusIncluded, SettlementID: &goneID},
		}, nil)
		orderRepo.On("ListEarmarked", ctx, "vendor-1").Return([]domain.RestaurantOrder{
			{ID: "ord-9", VendorID: "vendor-1", TotalAmountCents: 25000,
				SettlementStatus: domain.ItemSettlementStatusIncluded, SettlementID: &goneID},
		}, nil)
		settlementRepo.On("GetByID", ctx, goneID).Return(nil, domain.NewNotFoundError("settlement", goneID))
		settlementRepo.On("SettleOrphanEarmarks", ctx, []string{"txn-9"}, []string{"ord-9"}, testInstant).Return(nil)
		notifier.On("Notify", ctx, "vendor-1", mock.Anything, mock.Anything, domain.NotificationSeveritySuccess, mock.Anything).Return()

		result, err := svc.CompleteSettlement(ctx, service.CompleteRequest{
			VendorID:         "vendor-1",
			Date:             "2026-03-15",
			PaymentReference: "UTR-RECOVERY",
		})
		assert.NoError(t, err)
		assert.True(t, result.Recovered)
		assert.Equal(t, 2, result.ItemCount)
		// 10000-500 fixed fee + 25000 order, no percentage fee anywhere
		assert.Equal(t, int64(34500), result.AmountCents)
		assert.Contains(t, result.SettlementID, "SETL-RECOVERED-")
	})

	t.Run("NothingResolves", func(t *testing.T) {
		settlementRepo, txnRepo, orderRepo, _, _, svc := newSettlementFixture()

		settlementRepo.On("FindActiveOverlapping", ctx, "vendor-1", start, end).Return(nil, nil)
		settlementRepo.On("FindLatestActiveByVendor", ctx, "vendor-1").Return(nil, nil)
		txnRepo.On("ListEarmarked", ctx, "vendor-1").Return([]domain.ChargingTransaction{}, nil)
		orderRepo.On("ListEarmarked", ctx, "vendor-1").Return([]domain.RestaurantOrder{}, nil)

		_, err := svc.CompleteSettlement(ctx, service.CompleteRequest{
			VendorID:         "vendor-1",
			Date:             "2026-03-15",
			PaymentReference: "UTR-X",
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("RejectsMissingPaymentReference", func(t *testing.T) {
		_, _, _, _, _, svc := newSettlementFixture()

		_, err := svc.CompleteSettlement(ctx, service.CompleteRequest{SettlementID: "SETL-1"})
		assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))

		_, err = svc.CompleteSettlement(ctx, service.CompleteRequest{PaymentReference: "UTR-1"})
		assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))
	})
}

func TestSettlementService_GetSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("ItemizesClaimedRevenue", func(t *testing.T) {
		settlementRepo, txnRepo, orderRepo, _, _, svc := newSettlementFixture()

		settlementRepo.On("GetByID", ctx, "SETL-1").Return(&domain.SettlementRecord{
			ID: "SETL-1", VendorID: "vendor-1", AmountCents: 34500,
			Status: domain.SettlementStatusCompleted,
		}, nil)
		txnRepo.On("ListBySettlement", ctx, "SETL-1").Return([]domain.ChargingTransaction{
			{ID: "txn-1", VendorID: "vendor-1", TotalAmountCents: 10000},
		}, nil)
		orderRepo.On("ListBySettlement", ctx, "SETL-1").Return([]domain.RestaurantOrder{
			{ID: "ord-1", VendorID: "vendor-1", TotalAmountCents: 25000},
		}, nil)

		detail, err := svc.GetSettlement(ctx, "SETL-1")
		assert.NoError(t, err)
		assert.Equal(t, "SETL-1", detail.Record.ID)
		assert.Len(t, detail.Transactions, 1)
		assert.Len(t, detail.Orders, 1)
	})

	t.Run("UnknownSettlement", func(t *testing.T) {
		settlementRepo, txnRepo, _, _, _, svc := newSettlementFixture()

		settlementRepo.On("GetByID", ctx, "SETL-GHOST").
			Return(nil, domain.NewNotFoundError("settlement", "SETL-GHOST"))

		_, err := svc.GetSettlement(ctx, "SETL-GHOST")
		assert.True(t, domain.IsNotFound(err))
		txnRepo.AssertNotCalled(t, "ListBySettlement", mock.Anything, mock.Anything)
	})
}

func TestSettlementService_ListVendorSettlements(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsHistoryWithDefaultLimit", func(t *testing.T) {
		settlementRepo, _, _, vendorRepo, _, svc := newSettlementFixture()

		vendorRepo.On("GetByID", ctx, "vendor-1").Return(testVendor(), nil)
		settlementRepo.On("ListByVendor", ctx, "vendor-1", int32(50)).Return([]domain.SettlementRecord{
			{ID: "SETL-2", VendorID: "vendor-1", Status: domain.SettlementStatusCompleted},
			{ID: "SETL-1", VendorID: "vendor-1", Status: domain.SettlementStatusCompleted},
		}, nil)

		records, err := svc.ListVendorSettlements(ctx, "vendor-1", 0)
		assert.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("UnknownVendor", func(t *testing.T) {
		settlementRepo, _, _, vendorRepo, _, svc := newSettlementFixture()

		vendorRepo.On("GetByID", ctx, "vendor-ghost").
			Return(nil, domain.NewNotFoundError("vendor", "vendor-ghost"))

		_, err := svc.ListVendorSettlements(ctx, "vendor-ghost", 10)
		assert.True(t, domain.IsNotFound(err))
		settlementRepo.AssertNotCalled(t, "ListByVendor", mock.Anything, mock.Anything, mock.Anything)
	})
}
