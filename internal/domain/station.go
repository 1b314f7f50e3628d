package domain

import "time"

type StationStatus string

const (
	StationStatusActive      StationStatus = "ACTIVE"
	StationStatusInactive    StationStatus = "INACTIVE"
	StationStatusMaintenance StationStatus = "MAINTENANCE"
)

type ConnectorType string

const (
	ConnectorTypeCCS2    ConnectorType = "CCS2"
	ConnectorTypeCHAdeMO ConnectorType = "CHADEMO"
	ConnectorTypeType2   ConnectorType = "TYPE2"
)

type Station struct {
	ID             string        `json:"id"`
	VendorID       string        `json:"vendor_id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	City           string        `json:"city"`
	ConnectorTypes []string      `json:"connector_types"`
	PowerKW        int32         `json:"power_kw"`
	PricePerKWh    int64         `json:"price_per_kwh_cents"`
	HasRestaurant  bool          `json:"has_restaurant"`
	Status         StationStatus `json:"status"`
	CreatedOn      time.Time     `json:"created_on"`
	UpdatedOn      time.Time     `json:"updated_on"`
}

type StationImage struct {
	ID        string    `json:"id"`
	StationID string    `json:"station_id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	IsPrimary bool      `json:"is_primary"`
	CreatedOn time.Time `json:"created_on"`
}
