package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/costpilot/cost-copilot/pkg/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	schema, err := migrationsFS.ReadFile("migrations/001_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// SaveSnapshot persists a snapshot, assigning an ID and timestamp when
// missing.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snapshot *models.CostSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO cost_snapshots (
			id, cluster_name, namespace, tier, region, currency,
			cpu_cores, memory_gb, storage_gb, pod_count,
			compute_cost, memory_cost, storage_cost, total_monthly_cost,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := s.db.ExecContext(ctx, query,
		snapshot.ID, snapshot.ClusterName, snapshot.Namespace,
		string(snapshot.Tier), snapshot.Region, snapshot.Currency,
		snapshot.Usage.CPUCores, snapshot.Usage.MemoryGB,
		snapshot.Usage.StorageGB, snapshot.Usage.PodCount,
		snapshot.Breakdown.ComputeCost, snapshot.Breakdown.MemoryCost,
		snapshot.Breakdown.StorageCost, snapshot.Breakdown.TotalMonthlyCost,
		snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

const snapshotColumns = `
	id, cluster_name, namespace, tier, region, currency,
	cpu_cores, memory_gb, storage_gb, pod_count,
	compute_cost, memory_cost, storage_cost, total_monthly_cost,
	created_at
`

func scanSnapshot(row interface {
	Scan(dest ...interface{}) error
}) (*models.CostSnapshot, error) {
	var snapshot models.CostSnapshot
	var tier string

	err := row.Scan(
		&snapshot.ID, &snapshot.ClusterName, &snapshot.Namespace,
		&tier, &snapshot.Region, &snapshot.Currency,
		&snapshot.Usage.CPUCores, &snapshot.Usage.MemoryGB,
		&snapshot.Usage.StorageGB, &snapshot.Usage.PodCount,
		&snapshot.Breakdown.ComputeCost, &snapshot.Breakdown.MemoryCost,
		&snapshot.Breakdown.StorageCost, &snapshot.Breakdown.TotalMonthlyCost,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	snapshot.Tier = models.Tier(tier)
	return &snapshot, nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*models.CostSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM cost_snapshots WHERE id = $1`

	snapshot, err := scanSnapshot(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snapshot, nil
}

// ListSnapshots returns the newest snapshots for a namespace, or the
// cluster-wide ones when namespace is empty.
func (s *PostgresStore) ListSnapshots(ctx context.Context, namespace string, limit int) ([]*models.CostSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM cost_snapshots
		WHERE namespace = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, namespace, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.CostSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// ClusterTrend aggregates cluster-wide snapshots per day.
func (s *PostgresStore) ClusterTrend(ctx context.Context, clusterName string, days int) ([]models.TrendPoint, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day,
			count(*),
			avg(total_monthly_cost),
			max(total_monthly_cost)
		FROM cost_snapshots
		WHERE cluster_name = $1
			AND namespace = ''
			AND created_at > now() - make_interval(days => $2)
		GROUP BY day
		ORDER BY day
	`

	rows, err := s.db.QueryContext(ctx, query, clusterName, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query trend: %w", err)
	}
	defer rows.Close()

	var points []models.TrendPoint
	for rows.Next() {
		var point models.TrendPoint
		if err := rows.Scan(&point.Date, &point.SnapshotCount, &point.AvgMonthly, &point.MaxMonthly); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
