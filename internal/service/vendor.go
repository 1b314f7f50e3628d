package service

import (
	"context"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/repository"
)

type vendorService struct {
	vendorRepo repository.VendorRepository
}

func NewVendorService(vendorRepo repository.VendorRepository) VendorService {
	return &vendorService{vendorRepo: vendorRepo}
}

func (s *vendorService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.vendorRepo.List(ctx)
}

// UpdateBankDetails replaces the vendor's payout destination. Settlements
// already created keep the snapshot they took; only future initiates see
// the new details.
func (s *vendorService) UpdateBankDetails(ctx context.Context, vendorID string, details domain.BankDetails) (*domain.Vendor, error) {
	logger.EnterMethod("vendorService.UpdateBankDetails", "vendorID", vendorID)

	if vendorID == "" {
		return nil, domain.NewValidationError("vendor_id", "vendor id is required")
	}
	if details.AccountHolder == "" {
		return nil, domain.NewValidationError("account_holder", "account holder is required")
	}
	if details.AccountNumber == "" {
		return nil, domain.NewValidationError("account_number", "account number is required")
	}
	if details.BankName == "" {
		return nil, domain.NewValidationError("bank_name", "bank name is required")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		logger.ExitMethodWithError("vendorService.UpdateBankDetails", err, "vendorID", vendorID)
		return nil, err
	}

	vendor.BankDetails = details
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		logger.ExitMethodWithError("vendorService.UpdateBankDetails", err, "vendorID", vendorID)
		return nil, err
	}

	logger.ExitMethod("vendorService.UpdateBankDetails", "vendorID", vendorID)
	return vendor, nil
}
