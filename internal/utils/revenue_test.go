package utils_test

import (
	"testing"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestMerchantReceivable(t *testing.T) {
	t.Run("FixedFeeFallbackWithAdjustments", func(t *testing.T) {
		txn := &domain.ChargingTransaction{
			TotalAmountCents: 10000,
			AdditionalCharges: []domain.Adjustment{
				{AmountCents: 2000, Status: domain.AdjustmentStatusProcessed},
				{AmountCents: 900, Status: domain.AdjustmentStatusPending},
			},
			Refunds: []domain.Adjustment{
				{AmountCents: 500, Status: domain.AdjustmentStatusProcessed},
				{AmountCents: 300, Status: domain.AdjustmentStatusRejected},
			},
		}
		// 10000 - 500 fee + 2000 charge - 500 refund
		assert.Equal(t, int64(11000), utils.MerchantReceivable(txn, 500))
	})

	t.Run("ExplicitShareWinsOverFee", func(t *testing.T) {
		share := int64(8200)
		txn := &domain.ChargingTransaction{TotalAmountCents: 10000, MerchantShare: &share}
		assert.Equal(t, int64(8200), utils.MerchantReceivable(txn, 500))
	})

	t.Run("FlooredAtZero", func(t *testing.T) {
		txn := &domain.ChargingTransaction{TotalAmountCents: 300}
		assert.Equal(t, int64(0), utils.MerchantReceivable(txn, 500))
	})

	t.Run("ExplicitZeroShareIsHonored", func(t *testing.T) {
		share := int64(0)
		txn := &domain.ChargingTransaction{TotalAmountCents: 10000, MerchantShare: &share}
		assert.Equal(t, int64(0), utils.MerchantReceivable(txn, 500))
	})
}

func TestOrderReceivable(t *testing.T) {
	order := &domain.RestaurantOrder{TotalAmountCents: 25000}
	assert.Equal(t, int64(25000), utils.OrderReceivable(order))
}

// The receivable math uses a flat fixed fee while reporting estimates a
// percentage fee. The two deliberately disagree; this pins the discrepancy
// down so a change to either side is a conscious one.
func TestFeeModelsDiverge(t *testing.T) {
	txn := &domain.ChargingTransaction{TotalAmountCents: 10000}

	receivable := utils.MerchantReceivable(txn, 500)
	percentFee := utils.PlatformFeeCents(txn.TotalAmountCents, 10)
	impliedReceivable := txn.TotalAmountCents - percentFee

	assert.Equal(t, int64(9500), receivable)
	assert.Equal(t, int64(1000), percentFee)
	assert.NotEqual(t, impliedReceivable, receivable)
}

func TestPlatformFeeCents(t *testing.T) {
	assert.Equal(t, int64(1000), utils.PlatformFeeCents(10000, 10))
	assert.Equal(t, int64(25), utils.PlatformFeeCents(333, 7.5))
	assert.Equal(t, int64(0), utils.PlatformFeeCents(0, 10))
}
