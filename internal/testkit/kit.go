package testkit

import (
	"context"
	"sort"
	"sync"

	"fairlens/domain/core"
	"fairlens/internal/errors"
	"fairlens/ports"
)

// InMemoryReportRepository is a ReportRepositoryPort backed by a map, used in
// tests and when no database is configured.
type InMemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[core.ReportID]ports.StoredReport
}

// NewInMemoryReportRepository creates an empty in-memory repository
func NewInMemoryReportRepository() *InMemoryReportRepository {
	return &InMemoryReportRepository{
		reports: make(map[core.ReportID]ports.StoredReport),
	}
}

// Save stores a report keyed by its ID
func (r *InMemoryReportRepository) Save(ctx context.Context, stored ports.StoredReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[stored.Report.ID] = stored
	return nil
}

// Get returns the stored report or a not-found error
func (r *InMemoryReportRepository) Get(ctx context.Context, id core.ReportID) (*ports.StoredReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.reports[id]
	if !ok {
		return nil, errors.NotFound("report")
	}
	return &stored, nil
}

// List returns stored reports newest first, up to limit
func (r *InMemoryReportRepository) List(ctx context.Context, limit int) ([]ports.StoredReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]ports.StoredReport, 0, len(r.reports))
	for _, stored := range r.reports {
		all = append(all, stored)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[j].Report.CreatedAt.Before(all[i].Report.CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
