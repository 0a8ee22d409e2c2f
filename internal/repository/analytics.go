package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) service.AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Overview(ctx context.Context, dr models.DateRange) (*models.OverviewStats, error) {
	const op = "repository.analytics.Overview"
	query, args := buildOverviewQuery(dr)

	s := &models.OverviewStats{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.TotalIncidents,
		&s.ResolvedIncidents,
		&s.CriticalIncidents,
		&s.EmergencyIncidents,
		&s.AIDetectedIncidents,
		&s.AvgResponseTimeMs,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return s, nil
}

func (r *AnalyticsRepository) CategoryStats(ctx context.Context, dr models.DateRange) ([]*models.CategoryStats, error) {
	const op = "repository.analytics.CategoryStats"
	query, args := buildCategoryStatsQuery(dr)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	stats := make([]*models.CategoryStats, 0)
	for rows.Next() {
		s := &models.CategoryStats{}
		if err := rows.Scan(&s.Category, &s.Count, &s.AvgResponseTimeMs); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return stats, nil
}

func (r *AnalyticsRepository) SectorStats(ctx context.Context, dr models.DateRange) ([]*models.SectorStats, error) {
	const op = "repository.analytics.SectorStats"
	query, args := buildSectorStatsQuery(dr)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	stats := make([]*models.SectorStats, 0)
	for rows.Next() {
		s := &models.SectorStats{}
		if err := rows.Scan(&s.Sector, &s.Count, &s.CriticalCount); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return stats, nil
}

func (r *AnalyticsRepository) StatusCountsByBucket(ctx context.Context, since time.Time, granularity models.Granularity) ([]models.StatusCountRow, error) {
	const op = "repository.analytics.StatusCountsByBucket"
	query, args, err := buildStatusSeriesQuery(since, granularity)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]models.StatusCountRow, 0)
	for rows.Next() {
		var row models.StatusCountRow
		if err := rows.Scan(&row.Bucket, &row.Status, &row.Count); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (r *AnalyticsRepository) AIComparison(ctx context.Context) ([]*models.AIComparison, error) {
	const op = "repository.analytics.AIComparison"

	rows, err := r.db.Query(ctx, aiComparisonQuery)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*models.AIComparison, 0, 2)
	for rows.Next() {
		c := &models.AIComparison{}
		if err := rows.Scan(&c.AIDetected, &c.Count, &c.AvgResponseTimeMs, &c.ResolutionRate); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
