package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

const healthDataColumns = `id, sector, date, metrics, ai_predictions, created_at`

type HealthRepository struct {
	db *pgxpool.Pool
}

func NewHealthRepository(db *pgxpool.Pool) service.HealthRepository {
	return &HealthRepository{db: db}
}

// Create сохраняет срез метрик и его оповещения в одной транзакции.
// Ключевые показатели дублируются в колонки для агрегатов и трендов.
func (r *HealthRepository) Create(ctx context.Context, data *models.HealthData) error {
	const op = "repository.health.Create"

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m := data.Metrics
	if m.DiseaseOutbreaks == nil {
		m.DiseaseOutbreaks = []models.DiseaseOutbreak{}
	}
	if m.HygieneAlerts == nil {
		m.HygieneAlerts = []models.HygieneAlert{}
	}
	data.Metrics = m

	err = tx.QueryRow(ctx, `
		INSERT INTO health_data (
			sector, date, metrics, public_health_score, infection_rate, sanitation_score, ai_predictions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at;`,
		data.Sector, data.Date, m, m.PublicHealthScore, m.InfectionRate, m.SanitationScore, data.AIPredictions,
	).Scan(&data.ID, &data.CreatedAt)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}

	for i := range data.Alerts {
		a := &data.Alerts[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO health_alerts (health_data_id, type, severity, message, created_at, is_resolved)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
			data.ID, a.Type, a.Severity, a.Message, a.Timestamp, a.IsResolved,
		).Scan(&a.ID)
		if err != nil {
			return e.WrapError(ctx, op, fmt.Errorf("alert %d: %w", i, err))
		}
	}
	if data.Alerts == nil {
		data.Alerts = []models.HealthAlert{}
	}

	if err := tx.Commit(ctx); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// Latest возвращает самую свежую запись; пустой sector - по всем секторам
func (r *HealthRepository) Latest(ctx context.Context, sector string) (*models.HealthData, error) {
	const op = "repository.health.Latest"
	query := `SELECT ` + healthDataColumns + ` FROM health_data
		WHERE ($1::text IS NULL OR sector = $1)
		ORDER BY created_at DESC, id
		LIMIT 1;`

	data := &models.HealthData{}
	err := r.db.QueryRow(ctx, query, nullIfEmpty(sector)).Scan(
		&data.ID, &data.Sector, &data.Date, &data.Metrics, &data.AIPredictions, &data.CreatedAt,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	alerts, err := r.alertsFor(ctx, data.ID)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	data.Alerts = alerts
	return data, nil
}

// SectorData агрегирует показатели по каждому сектору
func (r *HealthRepository) SectorData(ctx context.Context, sector string) ([]*models.SectorHealth, error) {
	const op = "repository.health.SectorData"
	query := `
		SELECT
			d.sector,
			(array_agg(d.public_health_score ORDER BY d.created_at DESC))[1],
			AVG(d.public_health_score)::float8,
			COALESCE(SUM(a.total), 0)::int,
			COALESCE(SUM(a.active), 0)::int
		FROM health_data d
		LEFT JOIN (
			SELECT health_data_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE NOT is_resolved) AS active
			FROM health_alerts
			GROUP BY health_data_id
		) a ON a.health_data_id = d.id
		WHERE ($1::text IS NULL OR d.sector = $1)
		GROUP BY d.sector
		ORDER BY d.sector;
	`
	rows, err := r.db.Query(ctx, query, nullIfEmpty(sector))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*models.SectorHealth, 0)
	for rows.Next() {
		s := &models.SectorHealth{}
		if err := rows.Scan(&s.Sector, &s.LatestScore, &s.AvgScore, &s.TotalAlerts, &s.ActiveAlerts); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// Trends возвращает ключевые показатели с момента since в хронологическом порядке
func (r *HealthRepository) Trends(ctx context.Context, since time.Time, sector string) ([]*models.HealthTrendPoint, error) {
	const op = "repository.health.Trends"
	query := `
		SELECT id, sector, created_at, public_health_score, infection_rate, sanitation_score
		FROM health_data
		WHERE created_at >= $1 AND ($2::text IS NULL OR sector = $2)
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, since, nullIfEmpty(sector))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*models.HealthTrendPoint, 0)
	for rows.Next() {
		p := &models.HealthTrendPoint{}
		if err := rows.Scan(&p.ID, &p.Sector, &p.CreatedAt, &p.PublicHealthScore, &p.InfectionRate, &p.SanitationScore); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// ActiveAlerts возвращает неразрешённые оповещения, новые первыми
func (r *HealthRepository) ActiveAlerts(ctx context.Context) ([]*models.ActiveHealthAlert, error) {
	const op = "repository.health.ActiveAlerts"
	query := `
		SELECT a.id, a.type, a.severity, a.message, a.created_at, a.is_resolved,
			d.id, d.sector, d.created_at
		FROM health_alerts a
		JOIN health_data d ON d.id = a.health_data_id
		WHERE NOT a.is_resolved
		ORDER BY a.created_at DESC, a.id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*models.ActiveHealthAlert, 0)
	for rows.Next() {
		v := &models.ActiveHealthAlert{}
		if err := rows.Scan(
			&v.Alert.ID, &v.Alert.Type, &v.Alert.Severity, &v.Alert.Message, &v.Alert.Timestamp, &v.Alert.IsResolved,
			&v.HealthDataID, &v.Sector, &v.CreatedAt,
		); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// ResolveAlert идемпотентно закрывает оповещение
func (r *HealthRepository) ResolveAlert(ctx context.Context, alertID uuid.UUID) (*models.HealthAlert, error) {
	const op = "repository.health.ResolveAlert"
	query := `
		UPDATE health_alerts SET is_resolved = true
		WHERE id = $1
		RETURNING id, type, severity, message, created_at, is_resolved;
	`
	a := &models.HealthAlert{}
	err := r.db.QueryRow(ctx, query, alertID).Scan(&a.ID, &a.Type, &a.Severity, &a.Message, &a.Timestamp, &a.IsResolved)
	if err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("alert %s: %w", alertID, err))
	}
	return a, nil
}

func (r *HealthRepository) alertsFor(ctx context.Context, healthDataID uuid.UUID) ([]models.HealthAlert, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, severity, message, created_at, is_resolved
		FROM health_alerts WHERE health_data_id = $1
		ORDER BY created_at, id;`, healthDataID)
	if err != nil {
		return nil, fmt.Errorf("failed to query health alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]models.HealthAlert, 0)
	for rows.Next() {
		var a models.HealthAlert
		if err := rows.Scan(&a.ID, &a.Type, &a.Severity, &a.Message, &a.Timestamp, &a.IsResolved); err != nil {
			return nil, fmt.Errorf("failed to scan health alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
