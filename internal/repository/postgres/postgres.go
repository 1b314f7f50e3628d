package postgres

import (
	"database/sql"

	"voltpark-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VendorRepository
	repository.StationRepository
	repository.TransactionRepository
	repository.OrderRepository
	repository.SettlementRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		VendorRepository:       NewVendorRepository(db),
		StationRepository:      NewStationRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		OrderRepository:        NewOrderRepository(db),
		SettlementRepository:   NewSettlementRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
