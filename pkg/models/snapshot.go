package models

import "time"

// CostSnapshot represents a persisted cost estimate. Namespace is
// empty for cluster-wide snapshots.
type CostSnapshot struct {
	ID          string        `json:"id" yaml:"id"`
	ClusterName string        `json:"clusterName" yaml:"clusterName"`
	Namespace   string        `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Tier        Tier          `json:"tier" yaml:"tier"`
	Region      string        `json:"region,omitempty" yaml:"region,omitempty"`
	Currency    string        `json:"currency" yaml:"currency"`
	Usage       ResourceUsage `json:"usage" yaml:"usage"`
	Breakdown   CostBreakdown `json:"breakdown" yaml:"breakdown"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
}

// TrendPoint represents one day of aggregated cluster cost history.
type TrendPoint struct {
	Date          time.Time `json:"date" yaml:"date"`
	SnapshotCount int       `json:"snapshotCount" yaml:"snapshotCount"`
	AvgMonthly    float64   `json:"avgMonthly" yaml:"avgMonthly"`
	MaxMonthly    float64   `json:"maxMonthly" yaml:"maxMonthly"`
}
