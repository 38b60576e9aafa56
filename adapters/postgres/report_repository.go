package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fairlens/domain/audit"
	"fairlens/domain/core"
	"fairlens/ports"
)

// reportRepository implements ports.ReportRepositoryPort on Postgres
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepositoryPort {
	return &reportRepository{db: db}
}

// Migrate creates the audit_reports table if it does not exist
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS audit_reports (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		dataset_rows INTEGER NOT NULL,
		label_column TEXT NOT NULL,
		threshold DOUBLE PRECISION NOT NULL,
		fingerprint TEXT NOT NULL,
		payload JSONB NOT NULL,
		rendered TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate audit_reports: %w", err)
	}
	return nil
}

// Save inserts a report and its rendered text
func (r *reportRepository) Save(ctx context.Context, stored ports.StoredReport) error {
	payload, err := json.Marshal(stored.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `INSERT INTO audit_reports (
		id, created_at, dataset_rows, label_column, threshold, fingerprint, payload, rendered
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		stored.Report.ID.String(),
		stored.Report.CreatedAt.Time(),
		stored.Report.Metadata.DatasetRows,
		stored.Report.Metadata.LabelColumn,
		stored.Report.Metadata.Threshold,
		stored.Report.Fingerprint().String(),
		payload,
		stored.Rendered,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get retrieves a stored report by ID
func (r *reportRepository) Get(ctx context.Context, id core.ReportID) (*ports.StoredReport, error) {
	query := `SELECT payload, rendered FROM audit_reports WHERE id = $1`

	var payload []byte
	var rendered string
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&payload, &rendered)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("report not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report audit.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &ports.StoredReport{Report: &report, Rendered: rendered}, nil
}

// List returns stored reports newest first
func (r *reportRepository) List(ctx context.Context, limit int) ([]ports.StoredReport, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT payload, rendered FROM audit_reports ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var stored []ports.StoredReport
	for rows.Next() {
		var payload []byte
		var rendered string
		if err := rows.Scan(&payload, &rendered); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		var report audit.Report
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
		stored = append(stored, ports.StoredReport{Report: &report, Rendered: rendered})
	}
	return stored, rows.Err()
}
