package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// SiteRequest is the full site metadata payload. Create and update both
// take the whole shape; all leaf values are free-form strings.
type SiteRequest struct {
	SiteID              string                     `json:"siteId"`
	SiteName            string                     `json:"siteName"`
	Location            domain.SiteLocation        `json:"location"`
	TransmissionMode    string                     `json:"transmissionMode"`
	PowerSystem         domain.PowerSystem         `json:"powerSystem"`
	Battery             domain.Battery             `json:"battery"`
	Services            []string                   `json:"services"`
	Antennas            []domain.Antenna           `json:"antennas"`
	Power               domain.PowerSupply         `json:"power"`
	TransmissionType    string                     `json:"transmissionType"`
	FiberDetails        domain.FiberDetails        `json:"fiberDetails"`
	LandlordInformation domain.LandlordInformation `json:"landlordInformation"`
	MaintenanceInfo     domain.MaintenanceInfo     `json:"maintenanceInfo"`
	ImageURL            string                     `json:"imageUrl,omitempty"`
}

// SiteResponse is the site record representation.
type SiteResponse struct {
	ID                  string                     `json:"id"`
	SiteID              string                     `json:"siteId"`
	SiteName            string                     `json:"siteName"`
	Location            domain.SiteLocation        `json:"location"`
	TransmissionMode    string                     `json:"transmissionMode"`
	PowerSystem         domain.PowerSystem         `json:"powerSystem"`
	Battery             domain.Battery             `json:"battery"`
	Services            []string                   `json:"services"`
	Antennas            []domain.Antenna           `json:"antennas"`
	Power               domain.PowerSupply         `json:"power"`
	TransmissionType    string                     `json:"transmissionType"`
	FiberDetails        domain.FiberDetails        `json:"fiberDetails"`
	LandlordInformation domain.LandlordInformation `json:"landlordInformation"`
	MaintenanceInfo     domain.MaintenanceInfo     `json:"maintenanceInfo"`
	ImageURL            string                     `json:"imageUrl,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}
