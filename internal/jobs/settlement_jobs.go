package jobs

import (
	"context"
	"time"

	"voltpark-backend/internal/logger"
)

// SendPendingSettlementDigest mails the admin a ranked list of vendors
// whose previous-day revenue is still awaiting payout.
func (jr *JobRunner) SendPendingSettlementDigest() {
	jr.runWithRecovery("SendPendingSettlementDigest", func() {
		ctx := context.Background()
		date := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

		summaries, err := jr.services.Settlement.ListVendorsWithPendingSettlements(ctx, date)
		if err != nil {
			logger.Error("Failed to aggregate pending settlements", "date", date, "error", err)
			return
		}
		if len(summaries) == 0 {
			logger.Info("No pending settlements to report", "date", date)
			return
		}

		adminEmail := jr.config.Email.AdminEmail
		if adminEmail == "" {
			logger.Warn("Admin email not configured, skipping digest", "date", date)
			return
		}

		if err := jr.services.Email.SendPendingSettlementDigest(ctx, adminEmail, date, summaries); err != nil {
			logger.Error("Failed to send pending settlement digest",
				"date", date,
				"email", adminEmail,
				"error", err)
			return
		}

		logger.Info("Pending settlement digest sent", "date", date, "vendors", len(summaries))
	})
}

// AuditOrphanEarmarks reports revenue items stuck in the earmarked state
// whose claiming settlement is gone or already terminal. These need the
// orphan recovery path on the completion endpoint; the job only surfaces
// them, it never mutates.
func (jr *JobRunner) AuditOrphanEarmarks() {
	jr.runWithRecovery("AuditOrphanEarmarks", func() {
		ctx := context.Background()

		txns, err := jr.store.TransactionRepository.ListEarmarked(ctx, "")
		if err != nil {
			logger.Error("Failed to list earmarked transactions", "error", err)
			return
		}
		orders, err := jr.store.OrderRepository.ListEarmarked(ctx, "")
		if err != nil {
			logger.Error("Failed to list earmarked orders", "error", err)
			return
		}

		resolves := make(map[string]bool)
		claimResolves := func(settlementID *string) bool {
			if settlementID == nil || *settlementID == "" {
				return false
			}
			if ok, seen := resolves[*settlementID]; seen {
				return ok
			}
			rec, err := jr.store.SettlementRepository.GetByID(ctx, *settlementID)
			ok := err == nil && !rec.Status.IsTerminal()
			resolves[*settlementID] = ok
			return ok
		}

		orphans := 0
		for i := range txns {
			if !claimResolves(txns[i].SettlementID) {
				orphans++
				logger.Warn("Orphaned earmarked transaction",
					"transaction_id", txns[i].ID,
					"vendor_id", txns[i].VendorID,
					"settlement_id", stringOrEmpty(txns[i].SettlementID))
			}
		}
		for i := range orders {
			if !claimResolves(orders[i].SettlementID) {
				orphans++
				logger.Warn("Orphaned earmarked order",
					"order_id", orders[i].ID,
					"vendor_id", orders[i].VendorID,
					"settlement_id", stringOrEmpty(orders[i].SettlementID))
			}
		}

		logger.Info("Orphan earmark audit finished",
			"earmarked_transactions", len(txns),
			"earmarked_orders", len(orders),
			"orphans", orphans)
	})
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
