package repository

import (
	"context"
	"time"

	"voltpark-backend/internal/domain"
)

// VendorRepository is the vendor directory. Counter mutations happen inside
// the station repository's transactions, never through Update.
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	List(ctx context.Context) ([]domain.Vendor, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
}

// StationRepository owns stations and their image sets. The multi-row
// operations commit the station rows and the owning vendor's aggregate
// counters together or not at all.
type StationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Station, error)
	GetImages(ctx context.Context, stationID string) ([]domain.StationImage, error)

	// CreateWithImages inserts the station and its images and increments the
	// owning vendor's station_count by one and total_image_uploads by
	// len(images), atomically.
	CreateWithImages(ctx context.Context, station *domain.Station, images []domain.StationImage) error

	// UpdateImages adds and removes images for an existing station and
	// increments the owning vendor's total_image_uploads by len(add),
	// atomically.
	UpdateImages(ctx context.Context, stationID string, add []domain.StationImage, removeImageIDs []string) error
}

// TransactionRepository reads and flags charging transactions. All
// settlement-flag mutations go through SettlementRepository so the atomicity
// contract lives in one place.
type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ChargingTransaction, error)

	// ListCompletedInWindow returns completed transactions whose completion
	// time (fallback: updated_at) falls in [start, end). Empty vendorID
	// means all vendors.
	ListCompletedInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.ChargingTransaction, error)

	// ListUnsettledInWindow is ListCompletedInWindow restricted to items
	// whose settlement status is unset.
	ListUnsettledInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.ChargingTransaction, error)

	ListBySettlement(ctx context.Context, settlementID string) ([]domain.ChargingTransaction, error)

	// ListEarmarked returns items stuck in INCLUDED_IN_SETTLEMENT for the
	// vendor. Empty vendorID means all vendors (audit job).
	ListEarmarked(ctx context.Context, vendorID string) ([]domain.ChargingTransaction, error)
}

// OrderRepository mirrors TransactionRepository for restaurant orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.RestaurantOrder, error)
	ListCompletedInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.RestaurantOrder, error)
	ListUnsettledInWindow(ctx context.Context, vendorID string, start, end time.Time) ([]domain.RestaurantOrder, error)
	ListBySettlement(ctx context.Context, settlementID string) ([]domain.RestaurantOrder, error)
	ListEarmarked(ctx context.Context, vendorID string) ([]domain.RestaurantOrder, error)
}

// SettlementRepository owns settlement records and every settlement-flag
// mutation on revenue items.
type SettlementRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SettlementRecord, error)
	ListByVendor(ctx context.Context, vendorID string, limit int32) ([]domain.SettlementRecord, error)

	// FindActiveOverlapping returns the non-terminal record for the vendor
	// whose period overlaps [start, end), or nil when there is none.
	FindActiveOverlapping(ctx context.Context, vendorID string, start, end time.Time) (*domain.SettlementRecord, error)

	// FindLatestActiveByVendor returns the most recently requested
	// non-terminal record for the vendor, or nil when there is none.
	FindLatestActiveByVendor(ctx context.Context, vendorID string) (*domain.SettlementRecord, error)

	// CreateWithEarmarks inserts the settlement record and then flips every
	// referenced item to INCLUDED_IN_SETTLEMENT with a back-reference, in a
	// single transaction. The record insert precedes the flag writes. A
	// concurrent overlapping create surfaces as a ConflictError from the
	// partial unique index on (vendor_id, period_start).
	CreateWithEarmarks(ctx context.Context, rec *domain.SettlementRecord, txnIDs, orderIDs []string) error

	// CompleteAndRelease marks the settlement COMPLETED with the payment
	// reference and flips its earmarked items to SETTLED, in a single
	// transaction.
	CompleteAndRelease(ctx context.Context, settlementID, paymentReference, notes string, processedAt time.Time) error

	// SettleOrphanEarmarks flips earmarked items that have no surviving
	// settlement row directly to SETTLED, atomically. Used by the orphan
	// recovery path of complete.
	SettleOrphanEarmarks(ctx context.Context, txnIDs, orderIDs []string, processedAt time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, recipientID string) error
}
