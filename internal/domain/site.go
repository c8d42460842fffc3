package domain

import "time"

// Site captures the technical metadata sheet for a transmission site.
// All leaf values are free-form strings; field validation belongs to the
// dashboard layer, not the registry.
type Site struct {
	ID                  string
	SiteID              string
	SiteName            string
	Location            SiteLocation
	TransmissionMode    string
	PowerSystem         PowerSystem
	Battery             Battery
	Services            []string
	Antennas            []Antenna
	Power               PowerSupply
	TransmissionType    string
	FiberDetails        FiberDetails
	LandlordInformation LandlordInformation
	MaintenanceInfo     MaintenanceInfo
	ImageURL            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SiteLocation places the site geographically.
type SiteLocation struct {
	LocalArea string `json:"localArea"`
	District  string `json:"district"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// PowerSystem describes the electrical installation at the site.
type PowerSystem struct {
	Transformer  string `json:"transformer"`
	Phase        string `json:"phase"`
	MeterReading string `json:"meterReading"`
	Rectifier    string `json:"rectifier"`
	LoadCurrent  string `json:"loadCurrent"`
	Router       string `json:"router"`
}

// Battery describes the backup battery bank.
type Battery struct {
	Type     string `json:"type"`
	Capacity string `json:"capacity"`
}

// Antenna describes one mounted antenna.
type Antenna struct {
	Type   string `json:"type"`
	Height string `json:"height"`
}

// PowerSupply describes primary and backup power sources.
type PowerSupply struct {
	Source string `json:"source"`
	Backup string `json:"backup"`
}

// FiberDetails describes the fiber uplink.
type FiberDetails struct {
	Provider string `json:"provider"`
	Capacity string `json:"capacity"`
}

// LandlordInformation holds the site landlord contact.
type LandlordInformation struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// MaintenanceInfo tracks the maintenance schedule.
type MaintenanceInfo struct {
	LastMaintenanceDate string `json:"lastMaintenanceDate"`
	NextMaintenanceDate string `json:"nextMaintenanceDate"`
}
