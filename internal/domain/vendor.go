package domain

type VendorStatus string

const (
	VendorStatusActive    VendorStatus = "ACTIVE"
	VendorStatusSuspended VendorStatus = "SUSPENDED"
)

// BankDetails is the payout destination for a vendor. Settlement records
// store a copy taken at creation, so editing these fields never changes an
// in-flight payout.
type BankDetails struct {
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	IFSCCode      string `json:"ifsc_code"`
	UPIHandle     string `json:"upi_handle,omitempty"`
}

type Vendor struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Status            VendorStatus `json:"status"`
	BankDetails       BankDetails  `json:"bank_details"`
	StationCount      int32        `json:"station_count"`
	TotalImageUploads int32        `json:"total_image_uploads"`
	CreatedOn         string       `json:"created_on"`
	UpdatedOn         string       `json:"updated_on"`
}
