// Package storage persists cost snapshots so spend can be tracked
// over time. Saving is optional; the CLI works without a database.
package storage

import (
	"context"
	"errors"

	"github.com/costpilot/cost-copilot/pkg/models"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for snapshot persistence.
type Store interface {
	SaveSnapshot(ctx context.Context, snapshot *models.CostSnapshot) error
	GetSnapshot(ctx context.Context, id string) (*models.CostSnapshot, error)
	// ListSnapshots returns the newest snapshots first. namespace ""
	// means cluster-wide snapshots.
	ListSnapshots(ctx context.Context, namespace string, limit int) ([]*models.CostSnapshot, error)
	// ClusterTrend aggregates cluster-wide snapshots per day over the
	// last days.
	ClusterTrend(ctx context.Context, clusterName string, days int) ([]models.TrendPoint, error)

	Ping(ctx context.Context) error
	Close() error
}

// Config holds storage configuration.
type Config struct {
	URL string
}
