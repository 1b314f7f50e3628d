package service

import (
	"context"
	"fmt"
	"strconv"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/repository"
	"voltpark-backend/internal/utils"

	"github.com/google/uuid"
)

type settlementService struct {
	settlementRepo repository.SettlementRepository
	txnRepo        repository.TransactionRepository
	orderRepo      repository.OrderRepository
	vendorRepo     repository.VendorRepository
	aggregator     *Aggregator
	notifier       NotifierService
	clock          utils.Clock
	fixedFeeCents  int64
}

func NewSettlementService(
	settlementRepo repository.SettlementRepository,
	txnRepo repository.TransactionRepository,
	orderRepo repository.OrderRepository,
	vendorRepo repository.VendorRepository,
	aggregator *Aggregator,
	notifier NotifierService,
	clock utils.Clock,
	fixedFeeCents int64,
) SettlementService {
	return &settlementService{
		settlementRepo: settlementRepo,
		txnRepo:        txnRepo,
		orderRepo:      orderRepo,
		vendorRepo:     vendorRepo,
		aggregator:     aggregator,
		notifier:       notifier,
		clock:          clock,
		fixedFeeCents:  fixedFeeCents,
	}
}

func (s *settlementService) ListVendorsWithPendingSettlements(ctx context.Context, date string) ([]domain.VendorSettlementSummary, error) {
	if date == "" {
		return nil, domain.NewValidationError("date", "date is required")
	}
	return s.aggregator.RankVendors(ctx, date)
}

func (s *settlementService) GetVendorSettlementDetail(ctx context.Context, vendorID, date string) (*domain.VendorSettlementDetail, error) {
	if vendorID == "" {
		return nil, domain.NewValidationError("vendor_id", "vendor id is required")
	}
	if date == "" {
		return nil, domain.NewValidationError("date", "date is required")
	}

	detail, err := s.aggregator.VendorDay(ctx, vendorID, date)
	if err != nil {
		return nil, err
	}

	start, end, err := utils.DayWindow(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}
	active, err := s.settlementRepo.FindActiveOverlapping(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}
	detail.ActiveSettlement = active
	return detail, nil
}

// GetSettlement returns one settlement record itemized with the
// transactions and orders it claims.
func (s *settlementService) GetSettlement(ctx context.Context, settlementID string) (*SettlementWithItems, error) {
	if settlementID == "" {
		return nil, domain.NewValidationError("settlement_id", "settlement id is required")
	}

	rec, err := s.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListBySettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListBySettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	return &SettlementWithItems{Record: rec, Transactions: txns, Orders: orders}, nil
}

// ListVendorSettlements returns the vendor's payout history, most recent
// first.
func (s *settlementService) ListVendorSettlements(ctx context.Context, vendorID string, limit int32) ([]domain.SettlementRecord, error) {
	if vendorID == "" {
		return nil, domain.NewValidationError("vendor_id", "vendor id is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if _, err := s.vendorRepo.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.settlementRepo.ListByVendor(ctx, vendorID, limit)
}

// InitiateSettlement earmarks the vendor's unsettled revenue for the date
// under a new settlement record. The overlap check runs first so the caller
// gets the conflicting window by name; the partial unique index backs it up
// against a concurrent initiate racing past the check.
func (s *settlementService) InitiateSettlement(ctx context.Context, vendorID, date string, amountCents int64) (*InitiateResult, error) {
	logger.EnterMethod("settlementService.InitiateSettlement", "vendorID", vendorID, "date", date, "amountCents", amountCents)

	if vendorID == "" {
		return nil, domain.NewValidationError("vendor_id", "vendor id is required")
	}
	if date == "" {
		return nil, domain.NewValidationError("date", "date is required")
	}
	if amountCents <= 0 {
		return nil, domain.NewValidationError("amount_cents", "amount must be positive")
	}
	start, end, err := utils.DayWindow(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}

	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.InitiateSettlement", err, "vendorID", vendorID)
		return nil, err
	}

	existing, err := s.settlementRepo.FindActiveOverlapping(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		err := domain.NewWindowConflictError(existing.ID, existing.PeriodStart, existing.PeriodEnd)
		logger.ExitMethodWithError("settlementService.InitiateSettlement", err, "vendorID", vendorID)
		return nil, err
	}

	// Re-query: the aggregation the operator looked at may be stale.
	txns, err := s.txnRepo.ListUnsettledInWindow(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListUnsettledInWindow(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 && len(orders) == 0 {
		err := domain.NewNoPendingWorkError(vendorID, date)
		logger.ExitMethodWithError("settlementService.InitiateSettlement", err, "vendorID", vendorID)
		return nil, err
	}

	txnIDs := make([]string, 0, len(txns))
	var computedCents int64
	for i := range txns {
		txnIDs = append(txnIDs, txns[i].ID)
		computedCents += utils.MerchantReceivable(&txns[i], s.fixedFeeCents)
	}
	orderIDs := make([]string, 0, len(orders))
	for i := range orders {
		orderIDs = append(orderIDs, orders[i].ID)
		computedCents += utils.OrderReceivable(&orders[i])
	}

	now := s.clock.Now()
	rec := &domain.SettlementRecord{
		ID:             newSettlementID(now.Format("20060102")),
		VendorID:       vendorID,
		AmountCents:    amountCents,
		SettlementDate: date,
		TransactionIDs: txnIDs,
		OrderIDs:       orderIDs,
		Status:         domain.SettlementStatusProcessing,
		RequestType:    domain.SettlementRequestTypeManual,
		// Copy, not reference: later edits to the vendor's bank details must
		// not change this payout's destination.
		BankDetails: vendor.BankDetails,
		PeriodStart: start,
		PeriodEnd:   end,
		RequestedAt: now,
		Metadata: map[string]string{
			"initiated_via":          "admin_api",
			"computed_pending_cents": strconv.FormatInt(computedCents, 10),
		},
	}

	if err := s.settlementRepo.CreateWithEarmarks(ctx, rec, txnIDs, orderIDs); err != nil {
		logger.ExitMethodWithError("settlementService.InitiateSettlement", err, "vendorID", vendorID)
		return nil, err
	}

	logger.ExitMethod("settlementService.InitiateSettlement",
		"settlementID", rec.ID, "transactions", len(txnIDs), "orders", len(orderIDs))
	return &InitiateResult{
		SettlementID:     rec.ID,
		Status:           rec.Status,
		TransactionCount: rec.ItemCount(),
		AmountCents:      amountCents,
	}, nil
}

// CompleteSettlement settles the record resolved through the fallback chain
// and releases its earmarked items. Completing twice is rejected with the
// original payment evidence, never silently absorbed.
func (s *settlementService) CompleteSettlement(ctx context.Context, req CompleteRequest) (*CompleteResult, error) {
	logger.EnterMethod("settlementService.CompleteSettlement",
		"settlementID", req.SettlementID, "vendorID", req.VendorID, "date", req.Date)

	if req.PaymentReference == "" {
		return nil, domain.NewValidationError("payment_reference", "payment reference is required")
	}
	if req.SettlementID == "" && req.VendorID == "" {
		return nil, domain.NewValidationError("settlement_id", "settlement id or vendor id is required")
	}

	res, err := s.resolveSettlement(ctx, req)
	if err != nil {
		logger.ExitMethodWithError("settlementService.CompleteSettlement", err, "settlementID", req.SettlementID)
		return nil, err
	}

	now := s.clock.Now()

	if res.synthesized {
		if err := s.settlementRepo.SettleOrphanEarmarks(ctx, res.orphanTxnIDs, res.orphanOrderIDs, now); err != nil {
			logger.ExitMethodWithError("settlementService.CompleteSettlement", err, "vendorID", req.VendorID)
			return nil, err
		}
		result := &CompleteResult{
			SettlementID: newRecoveredSettlementID(now.Format("20060102150405")),
			Status:       domain.SettlementStatusCompleted,
			AmountCents:  res.orphanCents,
			ItemCount:    len(res.orphanTxnIDs) + len(res.orphanOrderIDs),
			Recovered:    true,
		}
		s.notifyVendor(ctx, req.VendorID, res.orphanCents, req.PaymentReference, req.Date)
		logger.ExitMethod("settlementService.CompleteSettlement",
			"settlementID", result.SettlementID, "recovered", true, "items", result.ItemCount)
		return result, nil
	}

	rec := res.record
	if rec.Status == domain.SettlementStatusCompleted {
		err := domain.NewAlreadyCompletedError(rec.ID, rec.PaymentReference, rec.ProcessedAt)
		logger.ExitMethodWithError("settlementService.CompleteSettlement", err, "settlementID", rec.ID)
		return nil, err
	}

	if err := s.settlementRepo.CompleteAndRelease(ctx, rec.ID, req.PaymentReference, req.Notes, now); err != nil {
		logger.ExitMethodWithError("settlementService.CompleteSettlement", err, "settlementID", rec.ID)
		return nil, err
	}

	s.notifyVendor(ctx, rec.VendorID, rec.AmountCents, req.PaymentReference, rec.SettlementDate)

	logger.ExitMethod("settlementService.CompleteSettlement", "settlementID", rec.ID, "strategy", res.strategy)
	return &CompleteResult{
		SettlementID: rec.ID,
		Status:       domain.SettlementStatusCompleted,
		AmountCents:  rec.AmountCents,
		ItemCount:    rec.ItemCount(),
	}, nil
}

// notifyVendor is fire-and-forget: the notifier logs its own failures and
// the settlement commit never depends on it.
func (s *settlementService) notifyVendor(ctx context.Context, vendorID string, amountCents int64, paymentReference, date string) {
	s.notifier.Notify(ctx, vendorID,
		"Settlement completed",
		fmt.Sprintf("Your payout of $%.2f for %s has been processed.", float64(amountCents)/100, date),
		domain.NotificationSeveritySuccess,
		map[string]string{
			"topic":             "settlement_completed",
			"payment_reference": paymentReference,
			"amount_cents":      strconv.FormatInt(amountCents, 10),
			"settlement_date":   date,
		},
	)
}

func newSettlementID(datePart string) string {
	return fmt.Sprintf("SETL-%s-%s", datePart, uuid.NewString()[:8])
}

func newRecoveredSettlementID(timePart string) string {
	return fmt.Sprintf("SETL-RECOVERED-%s-%s", timePart, uuid.NewString()[:8])
}
