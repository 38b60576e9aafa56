package ports

import (
	"context"

	"fairlens/domain/audit"
	"fairlens/domain/core"
)

// StoredReport pairs a report with its rendered text for persistence
type StoredReport struct {
	Report   *audit.Report
	Rendered string
}

// ReportRepositoryPort persists audit reports. Persistence is a caller
// concern: the engine produces values, a repository stores them.
type ReportRepositoryPort interface {
	Save(ctx context.Context, stored StoredReport) error
	Get(ctx context.Context, id core.ReportID) (*StoredReport, error)
	List(ctx context.Context, limit int) ([]StoredReport, error)
}
