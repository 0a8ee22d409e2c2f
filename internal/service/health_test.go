package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service/mocks"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHealthService(t *testing.T) (*healthService, *mocks.MockHealthRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockHealthRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	svc := NewHealthService(repoMock, logger).(*healthService)
	svc.clock = func() time.Time { return t0 }
	return svc, repoMock
}

func TestCreateHealthData_StampsAlerts(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestHealthService(t)
	ctx := context.Background()
	input := &models.HealthData{
		Sector: " C ",
		Metrics: models.HealthMetrics{
			TotalPeople:       12000,
			InfectionRate:     2.5,
			SanitationScore:   71,
			WaterQuality:      "good",
			PublicHealthScore: 78,
		},
		Alerts: []models.HealthAlert{{Type: "water", Severity: models.PriorityHigh, Message: "Low chlorine"}},
	}

	repoMock.EXPECT().Create(ctx, input).Return(nil)

	// Действие
	data, err := svc.Create(ctx, input)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "C", data.Sector)
	assert.Equal(t, t0, data.Date)
	assert.Equal(t, t0, data.Alerts[0].Timestamp)
}

func TestCreateHealthData_Validation(t *testing.T) {
	svc, _ := newTestHealthService(t)

	_, err := svc.Create(context.Background(), &models.HealthData{
		Metrics: models.HealthMetrics{InfectionRate: 140, WaterQuality: "murky"},
		Alerts:  []models.HealthAlert{{Type: "noise", Severity: models.PriorityLow}},
	})

	var verr *e.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"sector", "metrics.infectionRate", "metrics.waterQuality", "alerts[0].type"}, fields)
}

func TestDashboard_NoDataYet(t *testing.T) {
	svc, repoMock := newTestHealthService(t)
	ctx := context.Background()

	repoMock.EXPECT().Latest(ctx, "").Return(nil, fmt.Errorf("latest: %w", e.ErrNotFound))
	repoMock.EXPECT().SectorData(ctx, "").Return(nil, nil)

	dashboard, err := svc.Dashboard(ctx, "")

	require.NoError(t, err)
	assert.Nil(t, dashboard.Latest)
	assert.NotNil(t, dashboard.SectorData)
}

func TestTrends_Window(t *testing.T) {
	svc, repoMock := newTestHealthService(t)
	ctx := context.Background()

	repoMock.EXPECT().Trends(ctx, t0.AddDate(0, 0, -14), "A").Return([]*models.HealthTrendPoint{{Sector: "A"}}, nil)

	points, err := svc.Trends(ctx, 14, "A")

	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestResolveAlert_NotFound(t *testing.T) {
	svc, repoMock := newTestHealthService(t)
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().ResolveAlert(ctx, id).Return(nil, fmt.Errorf("resolve: %w", e.ErrNotFound))

	_, err := svc.ResolveAlert(ctx, id)

	assert.ErrorIs(t, err, e.ErrNotFound)
}
