package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
)

const (
	defaultSeriesDays = 7
	maxSeriesDays     = 366
)

// AnalyticsRepository - типизированные агрегаты по инцидентам
type AnalyticsRepository interface {
	Overview(ctx context.Context, dr models.DateRange) (*models.OverviewStats, error)
	CategoryStats(ctx context.Context, dr models.DateRange) ([]*models.CategoryStats, error)
	SectorStats(ctx context.Context, dr models.DateRange) ([]*models.SectorStats, error)
	StatusCountsByBucket(ctx context.Context, since time.Time, granularity models.Granularity) ([]models.StatusCountRow, error)
	AIComparison(ctx context.Context) ([]*models.AIComparison, error)
}

// AnalyticsService пересчитывает сводки при каждом вызове, без кеша
type AnalyticsService interface {
	Overview(ctx context.Context, dr models.DateRange) (*models.AnalyticsOverview, error)
	TimeSeries(ctx context.Context, days int, granularity models.Granularity) ([]models.TimeSeriesBucket, error)
	AIComparison(ctx context.Context) ([]*models.AIComparison, error)
}

type analyticsService struct {
	repo   AnalyticsRepository
	logger *logrus.Logger
	clock  clock
}

func NewAnalyticsService(repo AnalyticsRepository, logger *logrus.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *analyticsService) Overview(ctx context.Context, dr models.DateRange) (*models.AnalyticsOverview, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Overview",
	})

	if dr.Start != nil && dr.End != nil && dr.End.Before(*dr.Start) {
		return nil, e.NewValidationError("endDate", "must not be before startDate")
	}

	overview, err := s.repo.Overview(ctx, dr)
	if err != nil {
		log.WithError(err).Error("Failed to compute overview")
		return nil, fmt.Errorf("service: could not compute overview: %w", err)
	}
	categories, err := s.repo.CategoryStats(ctx, dr)
	if err != nil {
		log.WithError(err).Error("Failed to compute category stats")
		return nil, fmt.Errorf("service: could not compute category stats: %w", err)
	}
	sectors, err := s.repo.SectorStats(ctx, dr)
	if err != nil {
		log.WithError(err).Error("Failed to compute sector stats")
		return nil, fmt.Errorf("service: could not compute sector stats: %w", err)
	}

	return &models.AnalyticsOverview{
		Overview:      *overview,
		CategoryStats: nonNil(categories),
		SectorStats:   nonNil(sectors),
	}, nil
}

func (s *analyticsService) TimeSeries(ctx context.Context, days int, granularity models.Granularity) ([]models.TimeSeriesBucket, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "analytics",
		"method":      "TimeSeries",
		"days":        days,
		"granularity": granularity,
	})

	if days == 0 {
		days = defaultSeriesDays
	}
	if granularity == "" {
		granularity = models.GranularityDay
	}
	verr := &e.ValidationError{}
	if days < 1 || days > maxSeriesDays {
		verr.Add("days", fmt.Sprintf("must be between 1 and %d", maxSeriesDays))
	}
	if !granularity.Valid() {
		verr.Add("groupBy", "must be one of [hour day week]")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	since := s.clock.now().AddDate(0, 0, -days)
	rows, err := s.repo.StatusCountsByBucket(ctx, since, granularity)
	if err != nil {
		log.WithError(err).Error("Failed to compute time series")
		return nil, fmt.Errorf("service: could not compute time series: %w", err)
	}
	return FoldTimeSeries(rows), nil
}

func (s *analyticsService) AIComparison(ctx context.Context) ([]*models.AIComparison, error) {
	groups, err := s.repo.AIComparison(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "analytics",
			"method":  "AIComparison",
		}).WithError(err).Error("Failed to compute AI comparison")
		return nil, fmt.Errorf("service: could not compute AI comparison: %w", err)
	}
	return FillAIComparison(groups), nil
}

var statusOrder = map[models.IncidentStatus]int{
	models.StatusOpen:       0,
	models.StatusInProgress: 1,
	models.StatusResolved:   2,
	models.StatusClosed:     3,
}

// FoldTimeSeries собирает строки (корзина, статус, количество) в корзины по возрастанию.
// Внутри корзины статусы идут в порядке жизненного цикла.
func FoldTimeSeries(rows []models.StatusCountRow) []models.TimeSeriesBucket {
	index := make(map[string]int)
	buckets := make([]models.TimeSeriesBucket, 0)

	for _, row := range rows {
		i, ok := index[row.Bucket]
		if !ok {
			i = len(buckets)
			index[row.Bucket] = i
			buckets = append(buckets, models.TimeSeriesBucket{Bucket: row.Bucket})
		}
		buckets[i].Data = append(buckets[i].Data, models.StatusCount{Status: row.Status, Count: row.Count})
	}

	sort.Slice(buckets, func(a, b int) bool { return buckets[a].Bucket < buckets[b].Bucket })
	for _, b := range buckets {
		sort.SliceStable(b.Data, func(x, y int) bool {
			return statusOrder[b.Data[x].Status] < statusOrder[b.Data[y].Status]
		})
	}
	return buckets
}

// FillAIComparison всегда возвращает обе группы: сначала aiDetected=true, затем false.
// Отсутствующая группа получает нулевой счётчик и null вместо средних.
func FillAIComparison(groups []*models.AIComparison) []*models.AIComparison {
	out := []*models.AIComparison{{AIDetected: true}, {AIDetected: false}}
	for _, g := range groups {
		if g == nil {
			continue
		}
		if g.AIDetected {
			out[0] = g
		} else {
			out[1] = g
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
