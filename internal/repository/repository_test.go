//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/shenikar/pilgrim_path/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "pilgrimpath"

	req := testcontainers.ContainerRequest{
		Image:        "postgis/postgis:16-3.4-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	if err := postgres.Migrate(dsn, "file://../../migrations"); err != nil {
		fmt.Println("migrate:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	testPool, err = postgres.NewPostgresDB(ctx, dsn, 5, 1)
	if err != nil {
		fmt.Println("postgres:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `
		TRUNCATE TABLE incident_notes, incidents, notifications, room_reviews, rooms,
			bookings, health_alerts, health_data, users CASCADE`)
	require.NoError(t, err)
}

func newIncident(reporter uuid.UUID, lng, lat float64, reported time.Time) *models.Incident {
	return &models.Incident{
		Title:        "Crowd near gate",
		Description:  "Heavy crowd building up at the main gate",
		Category:     models.CategoryCrowding,
		Priority:     models.PriorityHigh,
		Status:       models.StatusOpen,
		Reporter:     models.UserRef{ID: reporter},
		Location:     models.Location{Type: "Point", Coordinates: models.Point{lng, lat}, Sector: "A"},
		Tags:         []string{"gate"},
		ResponseTime: models.ResponseTime{Reported: reported},
	}
}

func TestIncidentRepository_CreateGetAndNotes(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewIncidentRepository(testPool, nil, time.Minute)

	reporter := uuid.New()
	_, err := testPool.Exec(ctx, `INSERT INTO users (id, name, email) VALUES ($1, 'Asha', 'asha@example.com')`, reporter)
	require.NoError(t, err)

	inc := newIncident(reporter, 78.16, 29.94, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, inc))
	require.NotEqual(t, uuid.Nil, inc.ID)

	note := &models.Note{Text: "Volunteers dispatched", Author: models.UserRef{ID: reporter}, Timestamp: time.Now().UTC()}
	require.NoError(t, repo.AddNote(ctx, inc.ID, note))
	assert.NotEqual(t, uuid.Nil, note.ID)

	got, err := repo.GetByID(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Reporter.Name)
	assert.Equal(t, "A", got.Location.Sector)
	assert.InDelta(t, 78.16, got.Location.Coordinates.Lng(), 1e-9)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "Volunteers dispatched", got.Notes[0].Text)
	assert.Equal(t, "Asha", got.Notes[0].Author.Name)
}

func TestIncidentRepository_AddNoteToMissingIncident(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepository(testPool, nil, time.Minute)

	err := repo.AddNote(context.Background(), uuid.New(), &models.Note{Text: "nobody home", Author: models.UserRef{ID: uuid.New()}, Timestamp: time.Now()})
	assert.True(t, errors.Is(err, e.ErrNotFound))

	var notes int
	require.NoError(t, testPool.QueryRow(context.Background(), `SELECT COUNT(*) FROM incident_notes`).Scan(&notes))
	assert.Zero(t, notes)
}

func TestIncidentRepository_FindNearby(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewIncidentRepository(testPool, nil, time.Minute)

	near := newIncident(uuid.New(), 78.1600, 29.9400, time.Now().UTC())
	nearer := newIncident(uuid.New(), 78.1601, 29.9401, time.Now().UTC())
	far := newIncident(uuid.New(), 78.3000, 30.1000, time.Now().UTC())
	for _, inc := range []*models.Incident{near, nearer, far} {
		require.NoError(t, repo.Create(ctx, inc))
	}

	found, err := repo.FindNearby(ctx, 78.16005, 29.94005, 1000)
	require.NoError(t, err)
	require.Len(t, found, 2)
	ids := []uuid.UUID{found[0].ID, found[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{near.ID, nearer.ID}, ids)
	assert.NotContains(t, ids, far.ID)
}

func TestAnalyticsRepository_OverviewAverageIgnoresUnanswered(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	incidents := NewIncidentRepository(testPool, nil, time.Minute)
	analytics := NewAnalyticsRepository(testPool)

	reported := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	answered := newIncident(uuid.New(), 78.16, 29.94, reported)
	unanswered := newIncident(uuid.New(), 78.16, 29.94, reported)
	require.NoError(t, incidents.Create(ctx, answered))
	require.NoError(t, incidents.Create(ctx, unanswered))

	answered.ApplyStatus(models.StatusInProgress, reported.Add(5*time.Minute))
	require.NoError(t, incidents.UpdateStatus(ctx, answered))

	stats, err := analytics.Overview(ctx, models.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalIncidents)
	require.NotNil(t, stats.AvgResponseTimeMs)
	assert.InDelta(t, 300000.0, *stats.AvgResponseTimeMs, 1)

	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	empty, err := analytics.Overview(ctx, models.DateRange{End: &past})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalIncidents)
	assert.Nil(t, empty.AvgResponseTimeMs)
}

func TestNotificationRepository_MarkAllReadIsIdempotent(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewNotificationRepository(testPool)

	for i := 0; i < 3; i++ {
		n := &models.Notification{
			Title:     fmt.Sprintf("Notice %d", i),
			Message:   "Gate 3 closed",
			Type:      models.NotificationAlert,
			Priority:  models.PriorityMedium,
			Timestamp: time.Now().UTC(),
		}
		require.NoError(t, repo.Create(ctx, n))
	}

	first, err := repo.MarkAllRead(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 3, first.Updated)
	assert.Zero(t, first.UnreadCount)

	second, err := repo.MarkAllRead(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, second.Updated)
	assert.Equal(t, first.UnreadCount, second.UnreadCount)

	page, err := repo.List(ctx, models.NotificationFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Zero(t, page.UnreadCount)
}

func TestRoomRepository_ReviewsRecomputeRating(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewRoomRepository(testPool)

	room := &models.Room{
		Title:              "Riverside room",
		Description:        "Quiet room five minutes from the ghat",
		Owner:              models.UserRef{ID: uuid.New()},
		Location:           models.RoomLocation{Type: "Point", Coordinates: models.Point{78.16, 29.94}, Sector: "B"},
		Type:               models.RoomDouble,
		Capacity:           models.Capacity{Adults: 2},
		Price:              models.Price{PerNight: 1500, Currency: "INR"},
		Amenities:          []string{"wifi"},
		IsActive:           true,
		VerificationStatus: models.VerificationPending,
	}
	require.NoError(t, repo.Create(ctx, room))

	rooms, total, err := repo.List(ctx, models.RoomFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rooms)

	require.NoError(t, repo.SetVerification(ctx, room.ID, models.VerificationVerified))

	for _, rating := range []int{5, 3} {
		_, err := repo.AddReview(ctx, room.ID, &models.Review{User: models.UserRef{ID: uuid.New()}, Rating: rating, Comment: "Good stay", CreatedAt: time.Now().UTC()})
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.Rating.Average, 1e-9)
	assert.Equal(t, 2, got.Rating.Count)
	assert.Len(t, got.Reviews, 2)

	rooms, total, err = repo.List(ctx, models.RoomFilter{Amenities: []string{"wifi"}, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.ID, rooms[0].ID)

	_, err = repo.AddReview(ctx, uuid.New(), &models.Review{User: models.UserRef{ID: uuid.New()}, Rating: 4, Comment: "Nice", CreatedAt: time.Now()})
	assert.True(t, errors.Is(err, e.ErrNotFound))
}

func TestBookingRepository_OwnerScope(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewBookingRepository(testPool)

	owner := uuid.New()
	b := &models.Booking{
		UserID:           owner,
		Type:             models.BookingTransport,
		TransportDetails: &models.TransportDetails{VehicleType: "bus", Route: models.Route{From: models.RoutePoint{Name: "Station"}, To: models.RoutePoint{Name: "Ghat"}}},
		Status:           models.BookingPending,
		Payment:          models.Payment{Amount: 200, Status: "pending"},
	}
	require.NoError(t, repo.Create(ctx, b))

	_, err := repo.GetByID(ctx, b.ID, &[]uuid.UUID{uuid.New()}[0])
	assert.True(t, errors.Is(err, e.ErrNotFound))

	got, err := repo.GetByID(ctx, b.ID, &owner)
	require.NoError(t, err)
	require.NotNil(t, got.TransportDetails)
	assert.Equal(t, "bus", got.TransportDetails.VehicleType)
	assert.Nil(t, got.AccommodationDetails)

	updated, err := repo.UpdateStatus(ctx, b.ID, nil, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
}

func TestHealthRepository_SectorDataAndAlerts(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewHealthRepository(testPool)

	first := &models.HealthData{
		Sector:  "A",
		Date:    time.Now().UTC(),
		Metrics: models.HealthMetrics{PublicHealthScore: 60},
		Alerts:  []models.HealthAlert{{Type: "water", Severity: models.PriorityHigh, Message: "Low chlorine", Timestamp: time.Now().UTC()}},
	}
	require.NoError(t, repo.Create(ctx, first))
	second := &models.HealthData{Sector: "A", Date: time.Now().UTC(), Metrics: models.HealthMetrics{PublicHealthScore: 80}}
	require.NoError(t, repo.Create(ctx, second))

	sectors, err := repo.SectorData(ctx, "")
	require.NoError(t, err)
	require.Len(t, sectors, 1)
	assert.Equal(t, 80.0, sectors[0].LatestScore)
	assert.InDelta(t, 70.0, sectors[0].AvgScore, 1e-9)
	assert.Equal(t, 1, sectors[0].TotalAlerts)
	assert.Equal(t, 1, sectors[0].ActiveAlerts)

	active, err := repo.ActiveAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "A", active[0].Sector)

	resolved, err := repo.ResolveAlert(ctx, active[0].Alert.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)

	active, err = repo.ActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	latest, err := repo.Latest(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	_, err = repo.Latest(ctx, "Z")
	assert.True(t, errors.Is(err, e.ErrNotFound))
}
