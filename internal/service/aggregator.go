package service

import (
	"context"
	"sort"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/repository"
	"voltpark-backend/internal/utils"
)

// Aggregator groups a vendor's outstanding revenue per UTC day and
// classifies it by settlement state. It never mutates anything.
type Aggregator struct {
	txnRepo            repository.TransactionRepository
	orderRepo          repository.OrderRepository
	vendorRepo         repository.VendorRepository
	fixedFeeCents      int64
	platformFeePercent float64
}

func NewAggregator(
	txnRepo repository.TransactionRepository,
	orderRepo repository.OrderRepository,
	vendorRepo repository.VendorRepository,
	fixedFeeCents int64,
	platformFeePercent float64,
) *Aggregator {
	return &Aggregator{
		txnRepo:            txnRepo,
		orderRepo:          orderRepo,
		vendorRepo:         vendorRepo,
		fixedFeeCents:      fixedFeeCents,
		platformFeePercent: platformFeePercent,
	}
}

type bucketTotals struct {
	pendingCents       int64
	earmarkedCents     int64
	settledCents       int64
	pendingItemCount   int32
	earmarkedItemCount int32
	settledItemCount   int32
}

func (b *bucketTotals) add(status domain.ItemSettlementStatus, receivableCents int64) {
	switch status {
	case domain.ItemSettlementStatusSettled:
		b.settledCents += receivableCents
		b.settledItemCount++
	case domain.ItemSettlementStatusIncluded:
		b.earmarkedCents += receivableCents
		b.earmarkedItemCount++
	default:
		b.pendingCents += receivableCents
		b.pendingItemCount++
	}
}

// VendorDay builds the itemized settlement view for one vendor and date.
func (a *Aggregator) VendorDay(ctx context.Context, vendorID, date string) (*domain.VendorSettlementDetail, error) {
	logger.EnterMethod("Aggregator.VendorDay", "vendorID", vendorID, "date", date)

	start, end, err := utils.DayWindow(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}

	vendor, err := a.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		logger.ExitMethodWithError("Aggregator.VendorDay", err, "vendorID", vendorID)
		return nil, err
	}

	txns, err := a.txnRepo.ListCompletedInWindow(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}
	orders, err := a.orderRepo.ListCompletedInWindow(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}

	detail := &domain.VendorSettlementDetail{
		VendorID:   vendorID,
		VendorName: vendor.Name,
		Date:       date,
	}

	var totals bucketTotals
	var grossCents int64
	for i := range txns {
		txn := &txns[i]
		receivable := utils.MerchantReceivable(txn, a.fixedFeeCents)
		totals.add(txn.SettlementStatus, receivable)
		grossCents += txn.TotalAmountCents
		detail.Items = append(detail.Items, domain.SettlementLineItem{
			ItemID:           txn.ID,
			ItemType:         "charging_transaction",
			TotalAmountCents: txn.TotalAmountCents,
			ReceivableCents:  receivable,
			SettlementStatus: txn.SettlementStatus,
			SettlementID:     txn.SettlementID,
			CompletedAt:      txn.CompletionTime(),
		})
	}
	for i := range orders {
		order := &orders[i]
		receivable := utils.OrderReceivable(order)
		totals.add(order.SettlementStatus, receivable)
		detail.Items = append(detail.Items, domain.SettlementLineItem{
			ItemID:           order.ID,
			ItemType:         "restaurant_order",
			TotalAmountCents: order.TotalAmountCents,
			ReceivableCents:  receivable,
			SettlementStatus: order.SettlementStatus,
			SettlementID:     order.SettlementID,
			CompletedAt:      order.CompletionTime(),
		})
	}

	detail.PendingCents = totals.pendingCents
	detail.EarmarkedCents = totals.earmarkedCents
	detail.SettledCents = totals.settledCents
	// Reporting-only estimate; not the fee the receivable math uses.
	detail.EstimatedPlatformFeeCents = utils.PlatformFeeCents(grossCents, a.platformFeePercent)

	logger.ExitMethod("Aggregator.VendorDay", "vendorID", vendorID, "items", len(detail.Items))
	return detail, nil
}

// RankVendors lists vendors with outstanding work on the date: only vendors
// with pending or earmarked revenue, sorted by pending descending. Items
// whose vendor reference cannot be resolved are skipped with a warning,
// never failing the whole ranking.
func (a *Aggregator) RankVendors(ctx context.Context, date string) ([]domain.VendorSettlementSummary, error) {
	logger.EnterMethod("Aggregator.RankVendors", "date", date)

	start, end, err := utils.DayWindow(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}

	txns, err := a.txnRepo.ListCompletedInWindow(ctx, "", start, end)
	if err != nil {
		return nil, err
	}
	orders, err := a.orderRepo.ListCompletedInWindow(ctx, "", start, end)
	if err != nil {
		return nil, err
	}

	perVendor := make(map[string]*bucketTotals)
	bucketFor := func(vendorID string) *bucketTotals {
		b, ok := perVendor[vendorID]
		if !ok {
			b = &bucketTotals{}
			perVendor[vendorID] = b
		}
		return b
	}
	for i := range txns {
		txn := &txns[i]
		bucketFor(txn.VendorID).add(txn.SettlementStatus, utils.MerchantReceivable(txn, a.fixedFeeCents))
	}
	for i := range orders {
		order := &orders[i]
		bucketFor(order.VendorID).add(order.SettlementStatus, utils.OrderReceivable(order))
	}

	var summaries []domain.VendorSettlementSummary
	for vendorID, totals := range perVendor {
		if totals.pendingCents <= 0 && totals.earmarkedCents <= 0 {
			continue
		}
		vendor, err := a.vendorRepo.GetByID(ctx, vendorID)
		if err != nil {
			logger.Warn("Skipping revenue items with unresolvable vendor reference",
				"vendor_id", vendorID, "date", date, "error", err)
			continue
		}
		summaries = append(summaries, domain.VendorSettlementSummary{
			VendorID:           vendorID,
			VendorName:         vendor.Name,
			PendingCents:       totals.pendingCents,
			EarmarkedCents:     totals.earmarkedCents,
			SettledCents:       totals.settledCents,
			PendingItemCount:   totals.pendingItemCount,
			EarmarkedItemCount: totals.earmarkedItemCount,
			SettledItemCount:   totals.settledItemCount,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PendingCents > summaries[j].PendingCents
	})

	logger.ExitMethod("Aggregator.RankVendors", "date", date, "vendors", len(summaries))
	return summaries, nil
}
