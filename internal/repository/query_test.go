package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditions_PlaceholdersAreSequential(t *testing.T) {
	c := &conditions{}
	c.where("a = " + c.arg(1))
	c.where("b = " + c.arg("x"))
	tail := c.paginate(3, 20)

	assert.Equal(t, " WHERE a = $1 AND b = $2", c.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", tail)
	assert.Equal(t, []any{1, "x", 20, 40}, c.args)
}

func TestConditions_EmptyHasNoWhere(t *testing.T) {
	c := &conditions{}
	assert.Equal(t, "", c.sql())
}

func TestBuildIncidentListQuery_SortWhitelist(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		order    string
		expected string
	}{
		{"default", "", "", "ORDER BY i.created_at DESC, i.id"},
		{"title asc", "title", "asc", "ORDER BY i.title ASC, i.id"},
		{"unknown column falls back", "reporter_id; DROP TABLE incidents", "asc", "ORDER BY i.created_at ASC, i.id"},
		{"unknown order is desc", "status", "sideways", "ORDER BY i.status DESC, i.id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := buildIncidentListQuery(models.IncidentFilter{SortBy: tt.sortBy, SortOrder: tt.order, Page: 1, Limit: 10})
			assert.Contains(t, query, tt.expected)
			assert.NotContains(t, query, "DROP TABLE")
		})
	}
}

func TestBuildIncidentListQuery_Filters(t *testing.T) {
	query, args := buildIncidentListQuery(models.IncidentFilter{
		Status:   models.StatusOpen,
		Priority: models.PriorityHigh,
		Sector:   "A",
		Page:     2,
		Limit:    10,
	})

	assert.Contains(t, query, "i.status = $1 AND i.priority = $2 AND i.sector = $3")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{models.StatusOpen, models.PriorityHigh, "A", 10, 10}, args)

	countQuery, countArgs := buildIncidentCountQuery(models.IncidentFilter{Category: models.CategoryHealth})
	assert.Equal(t, "SELECT COUNT(*) FROM incidents i WHERE i.category = $1", countQuery)
	assert.Equal(t, []any{models.CategoryHealth}, countArgs)
}

func TestBuildRoomQueries_AlwaysPublicOnly(t *testing.T) {
	countQuery, args := buildRoomCountQuery(models.RoomFilter{})
	assert.Equal(t, "SELECT COUNT(*) FROM rooms r WHERE r.is_active AND r.verification_status = 'verified'", countQuery)
	assert.Empty(t, args)

	minPrice := 100.0
	radius := 5000.0
	query, args := buildRoomListQuery(models.RoomFilter{
		Type:         models.RoomFamily,
		MinPrice:     &minPrice,
		Amenities:    []string{"wifi", "parking"},
		Near:         &models.Point{78.16, 29.94},
		RadiusMeters: &radius,
		Page:         1,
		Limit:        10,
	})
	assert.Contains(t, query, "r.is_active AND r.verification_status = 'verified'")
	assert.Contains(t, query, "r.amenities && $3")
	assert.Contains(t, query, "ST_DWithin(r.location, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6)")
	assert.Contains(t, query, "ORDER BY r.rating_average DESC, r.created_at DESC")
	assert.Equal(t, []any{models.RoomFamily, 100.0, []string{"wifi", "parking"}, 78.16, 29.94, 5000.0, 10, 0}, args)
}

func TestBuildBookingQueries_ScopedToUser(t *testing.T) {
	userID := uuid.New()
	query, args := buildBookingListQuery(models.BookingFilter{UserID: userID, Status: models.BookingPending, Page: 1, Limit: 5})

	assert.Contains(t, query, "WHERE user_id = $1 AND status = $2")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	require.Len(t, args, 4)
	assert.Equal(t, userID, args[0])
}

func TestBuildNotificationCountQuery_CountsUnreadWithinFilter(t *testing.T) {
	query, args := buildNotificationCountQuery(models.NotificationFilter{Type: models.NotificationAlert})
	assert.Equal(t, "SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read) FROM notifications WHERE type = $1", query)
	assert.Equal(t, []any{models.NotificationAlert}, args)
}

func TestAnalyticsQueries_DateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args := buildOverviewQuery(models.DateRange{Start: &start, End: &end})
	assert.Contains(t, query, "WHERE created_at >= $1 AND created_at <= $2")
	assert.Equal(t, []any{start, end}, args)

	query, args = buildOverviewQuery(models.DateRange{})
	assert.NotContains(t, query, "created_at")
	assert.True(t, strings.HasSuffix(query, "FROM incidents"))
	assert.Empty(t, args)
}

func TestBuildSectorStatsQuery_ExcludesEmptySector(t *testing.T) {
	query, _ := buildSectorStatsQuery(models.DateRange{})
	assert.Contains(t, query, "sector IS NOT NULL AND sector <> ''")
}

func TestBuildStatusSeriesQuery_Buckets(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildStatusSeriesQuery(since, models.GranularityWeek)
	require.NoError(t, err)
	assert.Contains(t, query, `'IYYY-"W"IW'`)
	assert.Equal(t, []any{since}, args)

	query, _, err = buildStatusSeriesQuery(since, models.GranularityHour)
	require.NoError(t, err)
	assert.Contains(t, query, "'YYYY-MM-DD HH24:00'")

	_, _, err = buildStatusSeriesQuery(since, models.Granularity("month"))
	assert.Error(t, err)
}
