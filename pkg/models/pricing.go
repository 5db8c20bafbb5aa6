package models

// Tier represents a GKE cluster operating mode.
type Tier string

const (
	TierAutopilot Tier = "autopilot"
	TierStandard  Tier = "standard"
)

// StorageClass represents a persistent disk class.
type StorageClass string

const (
	StoragePDStandard StorageClass = "pd-standard"
	StoragePDSSD      StorageClass = "pd-ssd"
)

// RateCard represents the unit prices used for cost projection.
// Compute and memory rates are hourly; storage is priced per month.
// A zero StoragePerGBMonth means storage pricing is absent and
// storage contributes nothing to totals.
type RateCard struct {
	CPUPerCoreHour    float64      `json:"cpuPerCoreHour" yaml:"cpuPerCoreHour"`
	MemoryPerGBHour   float64      `json:"memoryPerGBHour" yaml:"memoryPerGBHour"`
	StoragePerGBMonth float64      `json:"storagePerGBMonth" yaml:"storagePerGBMonth"`
	// Flat hourly fee charged per cluster, not per resource unit.
	// Never part of a CostBreakdown; billed separately.
	ManagementFeePerHour float64      `json:"managementFeePerHour,omitempty" yaml:"managementFeePerHour,omitempty"`
	Currency             string       `json:"currency" yaml:"currency"`
	Tier                 Tier         `json:"tier,omitempty" yaml:"tier,omitempty"`
	Region               string       `json:"region,omitempty" yaml:"region,omitempty"`
	StorageClass         StorageClass `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
}
