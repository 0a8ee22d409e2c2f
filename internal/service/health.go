package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
)

var (
	waterQualities = map[string]struct{}{"excellent": {}, "good": {}, "fair": {}, "poor": {}}
	alertTypes     = map[string]struct{}{"outbreak": {}, "sanitation": {}, "water": {}, "medical": {}, "hygiene": {}}
)

type HealthRepository interface {
	Create(ctx context.Context, data *models.HealthData) error
	Latest(ctx context.Context, sector string) (*models.HealthData, error)
	SectorData(ctx context.Context, sector string) ([]*models.SectorHealth, error)
	Trends(ctx context.Context, since time.Time, sector string) ([]*models.HealthTrendPoint, error)
	ActiveAlerts(ctx context.Context) ([]*models.ActiveHealthAlert, error)
	ResolveAlert(ctx context.Context, alertID uuid.UUID) (*models.HealthAlert, error)
}

type HealthService interface {
	Create(ctx context.Context, data *models.HealthData) (*models.HealthData, error)
	Dashboard(ctx context.Context, sector string) (*models.HealthDashboard, error)
	Trends(ctx context.Context, days int, sector string) ([]*models.HealthTrendPoint, error)
	ActiveAlerts(ctx context.Context) ([]*models.ActiveHealthAlert, error)
	ResolveAlert(ctx context.Context, alertID uuid.UUID) (*models.HealthAlert, error)
}

type healthService struct {
	repo   HealthRepository
	logger *logrus.Logger
	clock  clock
}

func NewHealthService(repo HealthRepository, logger *logrus.Logger) HealthService {
	return &healthService{
		repo:   repo,
		logger: logger,
	}
}

// Create сохраняет очередной срез метрик сектора
func (s *healthService) Create(ctx context.Context, data *models.HealthData) (*models.HealthData, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "health",
		"method":  "Create",
	})

	data.Sector = strings.TrimSpace(data.Sector)
	if err := validateHealthData(data); err != nil {
		return nil, err
	}

	now := s.clock.now()
	if data.Date.IsZero() {
		data.Date = now
	}
	for i := range data.Alerts {
		if data.Alerts[i].Timestamp.IsZero() {
			data.Alerts[i].Timestamp = now
		}
	}

	if err := s.repo.Create(ctx, data); err != nil {
		log.WithError(err).Error("Failed to create health data")
		return nil, fmt.Errorf("service: could not create health data: %w", err)
	}
	log.WithFields(logrus.Fields{
		"health_data_id": data.ID,
		"sector":         data.Sector,
	}).Info("Health data created successfully")
	return data, nil
}

// Dashboard: последняя запись (или nil) и агрегаты по секторам
func (s *healthService) Dashboard(ctx context.Context, sector string) (*models.HealthDashboard, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "health",
		"method":  "Dashboard",
		"sector":  sector,
	})

	latest, err := s.repo.Latest(ctx, sector)
	if err != nil && !errors.Is(err, e.ErrNotFound) {
		log.WithError(err).Error("Failed to load latest health data")
		return nil, fmt.Errorf("service: could not load latest health data: %w", err)
	}
	sectors, err := s.repo.SectorData(ctx, sector)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate sector health")
		return nil, fmt.Errorf("service: could not aggregate sector health: %w", err)
	}
	return &models.HealthDashboard{Latest: latest, SectorData: nonNil(sectors)}, nil
}

func (s *healthService) Trends(ctx context.Context, days int, sector string) ([]*models.HealthTrendPoint, error) {
	if days == 0 {
		days = defaultSeriesDays
	}
	if days < 1 || days > maxSeriesDays {
		return nil, e.NewValidationError("days", fmt.Sprintf("must be between 1 and %d", maxSeriesDays))
	}

	points, err := s.repo.Trends(ctx, s.clock.now().AddDate(0, 0, -days), sector)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "health",
			"method":  "Trends",
		}).WithError(err).Error("Failed to load health trends")
		return nil, fmt.Errorf("service: could not load health trends: %w", err)
	}
	return nonNil(points), nil
}

func (s *healthService) ActiveAlerts(ctx context.Context) ([]*models.ActiveHealthAlert, error) {
	alerts, err := s.repo.ActiveAlerts(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "health",
			"method":  "ActiveAlerts",
		}).WithError(err).Error("Failed to load active health alerts")
		return nil, fmt.Errorf("service: could not load active alerts: %w", err)
	}
	return nonNil(alerts), nil
}

func (s *healthService) ResolveAlert(ctx context.Context, alertID uuid.UUID) (*models.HealthAlert, error) {
	alert, err := s.repo.ResolveAlert(ctx, alertID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":  "health",
			"method":   "ResolveAlert",
			"alert_id": alertID,
		}).WithError(err).Warn("Failed to resolve health alert")
		return nil, fmt.Errorf("service: could not resolve alert: %w", err)
	}
	return alert, nil
}

func validateHealthData(d *models.HealthData) error {
	verr := &e.ValidationError{}
	if d.Sector == "" {
		verr.Add("sector", "is required")
	}
	m := d.Metrics
	if m.TotalPeople < 0 {
		verr.Add("metrics.totalPeople", "must be greater than or equal to 0")
	}
	if m.HealthComplaints < 0 {
		verr.Add("metrics.healthComplaints", "must be greater than or equal to 0")
	}
	checkPercent(verr, "metrics.infectionRate", m.InfectionRate)
	checkPercent(verr, "metrics.sanitationScore", m.SanitationScore)
	checkPercent(verr, "metrics.publicHealthScore", m.PublicHealthScore)
	if m.WaterQuality != "" {
		if _, ok := waterQualities[m.WaterQuality]; !ok {
			verr.Add("metrics.waterQuality", "must be one of [excellent good fair poor]")
		}
	}
	for i, a := range d.Alerts {
		if _, ok := alertTypes[a.Type]; !ok {
			verr.Add(fmt.Sprintf("alerts[%d].type", i), "must be one of [outbreak sanitation water medical hygiene]")
		}
		if !a.Severity.Valid() {
			verr.Add(fmt.Sprintf("alerts[%d].severity", i), "must be one of [low medium high critical]")
		}
	}
	if p := d.AIPredictions; p != nil {
		checkPercent(verr, "aiPredictions.nextOutbreakRisk", p.NextOutbreakRisk)
	}
	return verr.OrNil()
}

func checkPercent(verr *e.ValidationError, field string, v float64) {
	if v < 0 || v > 100 {
		verr.Add(field, "must be between 0 and 100")
	}
}
