package service

import (
	"context"
	"fmt"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/utils"
)

// resolution is the outcome of one resolver strategy. Either record is set
// (a real ledger row), or synthesized is true and the orphan fields carry
// earmarked items whose ledger row no longer resolves.
type resolution struct {
	record         *domain.SettlementRecord
	synthesized    bool
	orphanTxnIDs   []string
	orphanOrderIDs []string
	orphanCents    int64
	strategy       string
}

// resolverStrategy is one step of the ordered fallback chain used by
// CompleteSettlement for callers that lost the settlement id. A nil, nil
// return means "not mine, try the next strategy".
type resolverStrategy struct {
	name    string
	resolve func(ctx context.Context, req CompleteRequest) (*resolution, error)
}

func (s *settlementService) resolverChain() []resolverStrategy {
	return []resolverStrategy{
		{name: "exact_id", resolve: s.resolveByExactID},
		{name: "vendor_window", resolve: s.resolveByVendorWindow},
		{name: "latest_active", resolve: s.resolveByLatestActive},
		{name: "orphan_recovery", resolve: s.resolveByOrphanEarmarks},
	}
}

// resolveSettlement walks the strategies in order and returns the first hit.
func (s *settlementService) resolveSettlement(ctx context.Context, req CompleteRequest) (*resolution, error) {
	for _, strategy := range s.resolverChain() {
		res, err := strategy.resolve(ctx, req)
		if err != nil {
			return nil, err
		}
		if res != nil {
			res.strategy = strategy.name
			logger.Debug("Settlement resolved", "strategy", strategy.name,
				"settlement_id", req.SettlementID, "vendor_id", req.VendorID)
			return res, nil
		}
	}
	id := req.SettlementID
	if id == "" {
		id = fmt.Sprintf("vendor %s date %s", req.VendorID, req.Date)
	}
	return nil, domain.NewNotFoundError("settlement", id)
}

func (s *settlementService) resolveByExactID(ctx context.Context, req CompleteRequest) (*resolution, error) {
	if req.SettlementID == "" {
		return nil, nil
	}
	rec, err := s.settlementRepo.GetByID(ctx, req.SettlementID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resolution{record: rec}, nil
}

func (s *settlementService) resolveByVendorWindow(ctx context.Context, req CompleteRequest) (*resolution, error) {
	if req.VendorID == "" || req.Date == "" {
		return nil, nil
	}
	start, end, err := utils.DayWindow(req.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}
	rec, err := s.settlementRepo.FindActiveOverlapping(ctx, req.VendorID, start, end)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &resolution{record: rec}, nil
}

func (s *settlementService) resolveByLatestActive(ctx context.Context, req CompleteRequest) (*resolution, error) {
	if req.VendorID == "" {
		return nil, nil
	}
	rec, err := s.settlementRepo.FindLatestActiveByVendor(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &resolution{record: rec}, nil
}

// resolveByOrphanEarmarks recovers items stuck in INCLUDED_IN_SETTLEMENT
// whose settlement row cannot be resolved (an interrupted initiate that
// committed flags against a record deleted by hand, or a damaged id). The
// result carries no ledger row; the caller synthesizes an id for the
// response.
func (s *settlementService) resolveByOrphanEarmarks(ctx context.Context, req CompleteRequest) (*resolution, error) {
	if req.VendorID == "" {
		return nil, nil
	}

	txns, err := s.txnRepo.ListEarmarked(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListEarmarked(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}

	resolvable := make(map[string]bool)
	ledgerResolves := func(settlementID *string) bool {
		if settlementID == nil || *settlementID == "" {
			return false
		}
		if known, ok := resolvable[*settlementID]; ok {
			return known
		}
		_, err := s.settlementRepo.GetByID(ctx, *settlementID)
		known := err == nil
		resolvable[*settlementID] = known
		return known
	}

	res := &resolution{synthesized: true}
	for i := range txns {
		txn := &txns[i]
		if ledgerResolves(txn.SettlementID) {
			continue
		}
		res.orphanTxnIDs = append(res.orphanTxnIDs, txn.ID)
		res.orphanCents += utils.MerchantReceivable(txn, s.fixedFeeCents)
	}
	for i := range orders {
		order := &orders[i]
		if ledgerResolves(order.SettlementID) {
			continue
		}
		res.orphanOrderIDs = append(res.orphanOrderIDs, order.ID)
		res.orphanCents += utils.OrderReceivable(order)
	}

	if len(res.orphanTxnIDs) == 0 && len(res.orphanOrderIDs) == 0 {
		return nil, nil
	}
	logger.Warn("Recovering orphaned earmarked items with no resolvable settlement",
		"vendor_id", req.VendorID, "transactions", len(res.orphanTxnIDs), "orders", len(res.orphanOrderIDs))
	return res, nil
}
