package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/config"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service/mocks"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

type testMocks struct {
	incidents     *mocks.MockIncidentService
	analytics     *mocks.MockAnalyticsService
	notifications *mocks.MockNotificationService
	rooms         *mocks.MockRoomService
	bookings      *mocks.MockBookingService
	health        *mocks.MockHealthService
}

// newTestHandler создает Handler с мокированными сервисами и роутер
func newTestHandler(t *testing.T) (*testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		incidents:     mocks.NewMockIncidentService(ctrl),
		analytics:     mocks.NewMockAnalyticsService(ctrl),
		notifications: mocks.NewMockNotificationService(ctrl),
		rooms:         mocks.NewMockRoomService(ctrl),
		bookings:      mocks.NewMockBookingService(ctrl),
		health:        mocks.NewMockHealthService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{JWTSecret: testSecret}
	handler := NewHandler(Services{
		Incidents:     m.incidents,
		Analytics:     m.analytics,
		Notifications: m.notifications,
		Rooms:         m.rooms,
		Bookings:      m.bookings,
		Health:        m.health,
	}, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func bearer(t *testing.T, id uuid.UUID, role models.Role) map[string]string {
	t.Helper()
	token, err := NewToken([]byte(testSecret), id, role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func fieldNames(resp ErrorResponse) []string {
	names := make([]string, 0, len(resp.Errors))
	for _, f := range resp.Errors {
		names = append(names, f.Field)
	}
	return names
}

func validIncidentRequest() CreateIncidentRequest {
	return CreateIncidentRequest{
		Title:       "Crowd surge",
		Description: "Crowd building up near gate 4",
		Category:    "crowding",
		Location:    LocationRequest{Coordinates: []float64{78.16, 29.94}, Sector: "A"},
	}
}

func TestCreateIncident_Success(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	reporterID := uuid.New()
	incidentID := uuid.New()

	// Ожидания
	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), reporterID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, inc *models.Incident) (*models.Incident, error) {
			assert.Equal(t, models.Point{78.16, 29.94}, inc.Location.Coordinates)
			assert.Empty(t, inc.Priority)
			out := *inc
			out.ID = incidentID
			out.Priority = models.PriorityMedium
			out.Status = models.StatusOpen
			out.Reporter = models.UserRef{ID: reporterID}
			return &out, nil
		})

	// Действие
	w := makeRequest(router, http.MethodPost, "/api/incidents", jsonBody(t, validIncidentRequest()), bearer(t, reporterID, models.RoleUser))

	// Проверки
	assert.Equal(t, http.StatusCreated, w.Code)
	var resp models.Incident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, models.PriorityMedium, resp.Priority)
	assert.Equal(t, models.StatusOpen, resp.Status)
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/incidents", bytes.NewBufferString(`{"title": "test"`), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationErrorListsFields(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req := validIncidentRequest()
	req.Title = ""
	req.Category = "party"
	req.Location.Coordinates = []float64{78.16}

	w := makeRequest(router, http.MethodPost, "/api/incidents", jsonBody(t, req), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "validation failed", resp.Error)
	assert.ElementsMatch(t, []string{"title", "category", "location.coordinates"}, fieldNames(resp))
}

func TestCreateIncident_RejectsAudioMedia(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req := validIncidentRequest()
	req.Media = []MediaRequest{
		{Type: "image", URL: "https://cdn.example.com/gate4.jpg"},
		{Type: "audio", URL: "https://cdn.example.com/gate4.mp3"},
	}

	w := makeRequest(router, http.MethodPost, "/api/incidents", jsonBody(t, req), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"media[1].type"}, fieldNames(decodeError(t, w)))
}

func TestCreateIncident_ServiceValidationError(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, e.NewValidationError("title", "must be at least 5 characters"))

	w := makeRequest(router, http.MethodPost, "/api/incidents", jsonBody(t, validIncidentRequest()), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "title", resp.Errors[0].Field)
}

func TestCreateIncident_ServiceError(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: could not create incident: %w", e.ErrInternal))

	w := makeRequest(router, http.MethodPost, "/api/incidents", jsonBody(t, validIncidentRequest()), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w).Error)
}

func TestAuth_MissingInvalidAndExpiredToken(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/incidents", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/incidents", nil, map[string]string{"Authorization": "Bearer not-a-jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	otherKey, err := NewToken([]byte("other-secret"), uuid.New(), models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	w = makeRequest(router, http.MethodGet, "/api/incidents", nil, map[string]string{"Authorization": "Bearer " + otherKey})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired, err := NewToken([]byte(testSecret), uuid.New(), models.RoleAdmin, -time.Minute)
	require.NoError(t, err)
	w = makeRequest(router, http.MethodGet, "/api/incidents", nil, map[string]string{"Authorization": "Bearer " + expired})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token expired", decodeError(t, w).Error)
}

func TestGetIncident_Success(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.incidents.EXPECT().GetIncident(gomock.Any(), id).Return(&models.Incident{ID: id, Title: "Lost child"}, nil)

	w := makeRequest(router, http.MethodGet, "/api/incidents/"+id.String(), nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.Incident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
}

func TestGetIncident_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/incidents/not-a-uuid", nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncident_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.incidents.EXPECT().GetIncident(gomock.Any(), id).
		Return(nil, fmt.Errorf("service: incident with id %s not found: %w", id, e.ErrNotFound))

	w := makeRequest(router, http.MethodGet, "/api/incidents/"+id.String(), nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListIncidents_PassesFilter(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{
			Status:    models.StatusOpen,
			Priority:  models.PriorityCritical,
			Sector:    "B",
			Page:      2,
			Limit:     5,
			SortBy:    "priority",
			SortOrder: "asc",
		}).
		Return(&models.IncidentPage{Incidents: []*models.Incident{}, TotalPages: 3, CurrentPage: 2, Total: 11}, nil)

	w := makeRequest(router, http.MethodGet, "/api/incidents?status=open&priority=critical&sector=B&page=2&limit=5&sortBy=priority&sortOrder=asc",
		nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.IncidentPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestUpdateIncidentStatus_ForbiddenForUser(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, "/api/incidents/"+uuid.NewString()+"/status",
		jsonBody(t, UpdateStatusRequest{Status: "resolved"}), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateIncidentStatus_Moderator(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	assignee := uuid.New()
	assigneeRaw := assignee.String()

	m.incidents.EXPECT().
		UpdateStatus(gomock.Any(), id, models.StatusInProgress, &assignee).
		Return(&models.Incident{ID: id, Status: models.StatusInProgress, AssignedTo: &models.UserRef{ID: assignee}}, nil)

	w := makeRequest(router, http.MethodPut, "/api/incidents/"+id.String()+"/status",
		jsonBody(t, UpdateStatusRequest{Status: "in_progress", AssignedTo: &assigneeRaw}), bearer(t, uuid.New(), models.RoleModerator))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.Incident
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusInProgress, resp.Status)
}

func TestUpdateIncidentStatus_InvalidStatus(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, "/api/incidents/"+uuid.NewString()+"/status",
		jsonBody(t, UpdateStatusRequest{Status: "archived"}), bearer(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"status"}, fieldNames(decodeError(t, w)))
}

func TestUpdateIncidentStatus_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), models.StatusClosed, nil).
		Return(nil, fmt.Errorf("service: incident not found for update: %w", e.ErrNotFound))

	w := makeRequest(router, http.MethodPut, "/api/incidents/"+uuid.NewString()+"/status",
		jsonBody(t, UpdateStatusRequest{Status: "closed"}), bearer(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddIncidentNote_UsesCallerAsAuthor(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	author := uuid.New()
	m.incidents.EXPECT().
		AddNote(gomock.Any(), id, author, "Medical team on site").
		Return(&models.Incident{ID: id, Notes: []models.Note{{Text: "Medical team on site", Author: models.UserRef{ID: author}}}}, nil)

	w := makeRequest(router, http.MethodPost, "/api/incidents/"+id.String()+"/notes",
		jsonBody(t, AddNoteRequest{Text: "Medical team on site"}), bearer(t, author, models.RoleUser))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNearbyIncidents(t *testing.T) {
	m, router := newTestHandler(t)
	radius := 500.0
	zero := 0.0
	gomock.InOrder(
		m.incidents.EXPECT().FindNearby(gomock.Any(), 78.16, 29.94, &radius).Return([]*models.Incident{}, nil),
		m.incidents.EXPECT().FindNearby(gomock.Any(), 78.16, 29.94, &zero).Return([]*models.Incident{}, nil),
		m.incidents.EXPECT().FindNearby(gomock.Any(), 78.16, 29.94, gomock.Nil()).Return([]*models.Incident{}, nil),
	)

	w := makeRequest(router, http.MethodGet, "/api/incidents/nearby/78.16/29.94?radius=500", nil, bearer(t, uuid.New(), models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Явный radius=0 не подменяется радиусом по умолчанию
	w = makeRequest(router, http.MethodGet, "/api/incidents/nearby/78.16/29.94?radius=0", nil, bearer(t, uuid.New(), models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/incidents/nearby/78.16/29.94", nil, bearer(t, uuid.New(), models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/incidents/nearby/east/29.94", nil, bearer(t, uuid.New(), models.RoleUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"lng"}, fieldNames(decodeError(t, w)))
}

func TestIncidentStatusSummary(t *testing.T) {
	m, router := newTestHandler(t)
	m.incidents.EXPECT().StatusSummary(gomock.Any()).Return(&models.IncidentStatusSummary{Total: 4, Open: 4}, nil)

	w := makeRequest(router, http.MethodGet, "/api/incidents/stats/overview", nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"avgResolutionTime":null`)
}

func TestAnalytics_AdminOnly(t *testing.T) {
	m, router := newTestHandler(t)
	m.analytics.EXPECT().AIComparison(gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/analytics/ai-comparison", nil, bearer(t, uuid.New(), models.RoleModerator))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnalyticsOverview_DateRange(t *testing.T) {
	m, router := newTestHandler(t)
	m.analytics.EXPECT().
		Overview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dr models.DateRange) (*models.AnalyticsOverview, error) {
			require.NotNil(t, dr.Start)
			require.NotNil(t, dr.End)
			assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *dr.Start)
			assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *dr.End)
			return &models.AnalyticsOverview{CategoryStats: []*models.CategoryStats{}, SectorStats: []*models.SectorStats{}}, nil
		})

	w := makeRequest(router, http.MethodGet, "/api/analytics/overview?startDate=2024-01-01&endDate=2024-01-31", nil, bearer(t, uuid.New(), models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/analytics/overview?startDate=yesterday", nil, bearer(t, uuid.New(), models.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"startDate"}, fieldNames(decodeError(t, w)))
}

func TestAnalyticsTimeSeries_PassesParams(t *testing.T) {
	m, router := newTestHandler(t)
	m.analytics.EXPECT().TimeSeries(gomock.Any(), 30, models.GranularityWeek).Return([]models.TimeSeriesBucket{}, nil)

	w := makeRequest(router, http.MethodGet, "/api/analytics/timeseries?days=30&groupBy=week", nil, bearer(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	m, router := newTestHandler(t)
	gomock.InOrder(
		m.notifications.EXPECT().MarkAllRead(gomock.Any()).Return(&models.ReadAllResult{UnreadCount: 0, Updated: 2}, nil),
		m.notifications.EXPECT().MarkAllRead(gomock.Any()).Return(&models.ReadAllResult{UnreadCount: 0, Updated: 0}, nil),
	)

	first := makeRequest(router, http.MethodPut, "/api/notifications/read-all", nil, bearer(t, uuid.New(), models.RoleUser))
	second := makeRequest(router, http.MethodPut, "/api/notifications/read-all", nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"unreadCount":0}`, first.Body.String())
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestNotifications_MarkReadNotFound(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.notifications.EXPECT().MarkRead(gomock.Any(), id).Return(nil, fmt.Errorf("service: %w", e.ErrNotFound))

	w := makeRequest(router, http.MethodPut, "/api/notifications/"+id.String()+"/read", nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotifications_CreateRequiresAdmin(t *testing.T) {
	m, router := newTestHandler(t)
	body := CreateNotificationRequest{Title: "Gate closed", Message: "Gate 3 closed until noon", Type: "alert", Priority: "high"}

	w := makeRequest(router, http.MethodPost, "/api/notifications", jsonBody(t, body), bearer(t, uuid.New(), models.RoleModerator))
	assert.Equal(t, http.StatusForbidden, w.Code)

	m.notifications.EXPECT().
		Create(gomock.Any(), &models.Notification{Title: body.Title, Message: body.Message, Type: models.NotificationAlert, Priority: models.PriorityHigh}).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) {
			n.ID = uuid.New()
			return n, nil
		})
	w = makeRequest(router, http.MethodPost, "/api/notifications", jsonBody(t, body), bearer(t, uuid.New(), models.RoleAdmin))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRooms_ListIsPublic(t *testing.T) {
	m, router := newTestHandler(t)
	m.rooms.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.RoomFilter) (*models.RoomPage, error) {
			assert.Equal(t, []string{"wifi", "parking", "ac"}, f.Amenities)
			require.NotNil(t, f.Near)
			assert.Equal(t, models.Point{78.16, 29.94}, *f.Near)
			require.NotNil(t, f.RadiusMeters)
			assert.Equal(t, 2000.0, *f.RadiusMeters)
			require.NotNil(t, f.MaxPrice)
			assert.Equal(t, 2500.0, *f.MaxPrice)
			return &models.RoomPage{Rooms: []*models.Room{}, CurrentPage: 1}, nil
		})

	w := makeRequest(router, http.MethodGet, "/api/rooms?amenities=wifi,parking&amenities=ac&coordinates=78.16,29.94&radius=2000&maxPrice=2500", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRooms_InvalidCoordinates(t *testing.T) {
	m, router := newTestHandler(t)
	m.rooms.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/rooms?coordinates=78.16", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRooms_CreateRequiresAuth(t *testing.T) {
	m, router := newTestHandler(t)
	m.rooms.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/rooms", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRooms_AddReviewValidation(t *testing.T) {
	m, router := newTestHandler(t)
	m.rooms.EXPECT().AddReview(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/rooms/"+uuid.NewString()+"/reviews",
		jsonBody(t, AddReviewRequest{Rating: 6, Comment: "Great stay"}), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"rating"}, fieldNames(decodeError(t, w)))
}

func TestRooms_SetVerificationAdmin(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.rooms.EXPECT().SetVerification(gomock.Any(), id, models.VerificationVerified).
		Return(&models.Room{ID: id, VerificationStatus: models.VerificationVerified}, nil)

	w := makeRequest(router, http.MethodPut, "/api/rooms/"+id.String()+"/verification",
		jsonBody(t, VerificationRequest{Status: "verified"}), bearer(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookings_CreateRequiresMatchingDetails(t *testing.T) {
	m, router := newTestHandler(t)
	m.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/bookings",
		jsonBody(t, CreateBookingRequest{Type: "transport"}), bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"transportDetails"}, fieldNames(decodeError(t, w)))
}

func TestBookings_GetPassesCaller(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	id := uuid.New()
	m.bookings.EXPECT().
		Get(gomock.Any(), models.Caller{ID: userID, Role: models.RoleUser}, id).
		Return(nil, fmt.Errorf("service: %w", e.ErrNotFound))

	w := makeRequest(router, http.MethodGet, "/api/bookings/"+id.String(), nil, bearer(t, userID, models.RoleUser))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth_DashboardAdminOnly(t *testing.T) {
	m, router := newTestHandler(t)
	m.health.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/health/dashboard", nil, bearer(t, uuid.New(), models.RoleUser))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth_DashboardWithoutData(t *testing.T) {
	m, router := newTestHandler(t)
	m.health.EXPECT().Dashboard(gomock.Any(), "A").Return(&models.HealthDashboard{SectorData: []*models.SectorHealth{}}, nil)

	w := makeRequest(router, http.MethodGet, "/api/health/dashboard?sector=A", nil, bearer(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"latest":null,"sectorData":[]}`, w.Body.String())
}

func TestHealth_ResolveAlert(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.health.EXPECT().ResolveAlert(gomock.Any(), id).Return(&models.HealthAlert{ID: id, IsResolved: true}, nil)

	w := makeRequest(router, http.MethodPut, "/api/health/alerts/"+id.String()+"/resolve", nil, bearer(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck_Success(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
