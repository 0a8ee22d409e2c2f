package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service/mocks"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAnalyticsService(t *testing.T) (*analyticsService, *mocks.MockAnalyticsRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAnalyticsRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	svc := NewAnalyticsService(repoMock, logger).(*analyticsService)
	svc.clock = func() time.Time { return t0 }
	return svc, repoMock
}

func TestFoldTimeSeries(t *testing.T) {
	rows := []models.StatusCountRow{
		{Bucket: "2025-01-14", Status: models.StatusResolved, Count: 2},
		{Bucket: "2025-01-12", Status: models.StatusOpen, Count: 4},
		{Bucket: "2025-01-14", Status: models.StatusOpen, Count: 1},
		{Bucket: "2025-01-13", Status: models.StatusClosed, Count: 3},
	}

	got := FoldTimeSeries(rows)

	require.Len(t, got, 3)
	assert.Equal(t, "2025-01-12", got[0].Bucket)
	assert.Equal(t, "2025-01-13", got[1].Bucket)
	assert.Equal(t, "2025-01-14", got[2].Bucket)
	assert.Equal(t, []models.StatusCount{
		{Status: models.StatusOpen, Count: 1},
		{Status: models.StatusResolved, Count: 2},
	}, got[2].Data)
}

func TestFoldTimeSeries_Empty(t *testing.T) {
	got := FoldTimeSeries(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFillAIComparison(t *testing.T) {
	rate := 0.5
	manual := &models.AIComparison{AIDetected: false, Count: 4, ResolutionRate: &rate}

	got := FillAIComparison([]*models.AIComparison{manual})

	require.Len(t, got, 2)
	assert.True(t, got[0].AIDetected)
	assert.Zero(t, got[0].Count)
	assert.Nil(t, got[0].AvgResponseTimeMs)
	assert.Nil(t, got[0].ResolutionRate)
	assert.Same(t, manual, got[1])
}

func TestOverview_CombinesAggregates(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()
	start := t0.AddDate(0, 0, -1)
	dr := models.DateRange{Start: &start}
	avg := float64(5 * time.Minute / time.Millisecond)

	repoMock.EXPECT().Overview(ctx, dr).Return(&models.OverviewStats{TotalIncidents: 2, AvgResponseTimeMs: &avg}, nil)
	repoMock.EXPECT().CategoryStats(ctx, dr).Return(nil, nil)
	repoMock.EXPECT().SectorStats(ctx, dr).Return([]*models.SectorStats{{Sector: "A", Count: 2}}, nil)

	// Действие
	got, err := svc.Overview(ctx, dr)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, got.Overview.TotalIncidents)
	assert.Equal(t, 300000.0, *got.Overview.AvgResponseTimeMs)
	assert.NotNil(t, got.CategoryStats)
	assert.Len(t, got.SectorStats, 1)
}

func TestOverview_InvertedRange(t *testing.T) {
	svc, _ := newTestAnalyticsService(t)
	start, end := t0, t0.Add(-time.Hour)

	_, err := svc.Overview(context.Background(), models.DateRange{Start: &start, End: &end})

	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestTimeSeries_Defaults(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		StatusCountsByBucket(ctx, t0.AddDate(0, 0, -7), models.GranularityDay).
		Return([]models.StatusCountRow{{Bucket: "2025-01-13", Status: models.StatusOpen, Count: 1}}, nil)

	// Действие
	got, err := svc.TimeSeries(ctx, 0, "")

	// Проверки
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-13", got[0].Bucket)
}

func TestTimeSeries_Validation(t *testing.T) {
	svc, _ := newTestAnalyticsService(t)

	_, err := svc.TimeSeries(context.Background(), -3, "month")

	var verr *e.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}
