package repository

import (
	"context"
	"sort"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// ReportRepository defines data access for moderation reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report)
	GetByID(ctx context.Context, id string) (*models.Report, error)
	ListOpen(ctx context.Context) []*models.Report
	Update(ctx context.Context, report *models.Report)
}

type reportRepository struct {
	kv store.KV
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(kv store.KV) ReportRepository {
	return &reportRepository{kv: kv}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) {
	store.SaveRecord(ctx, r.kv, store.KeyReports, report.ID, report)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	report, ok := store.LoadRecord[models.Report](ctx, r.kv, store.KeyReports, id)
	if !ok {
		return nil, models.NewNotFoundError("report", id)
	}
	return report, nil
}

// ListOpen returns unresolved reports, oldest first, so admins work the
// queue in arrival order.
func (r *reportRepository) ListOpen(ctx context.Context) []*models.Report {
	var out []*models.Report
	reports := store.LoadAll[models.Report](ctx, r.kv, store.KeyReports)
	for i := range reports {
		if reports[i].Open() {
			out = append(out, &reports[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) {
	store.SaveRecord(ctx, r.kv, store.KeyReports, report.ID, report)
}
