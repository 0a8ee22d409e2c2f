package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

const incidentColumns = `
	i.id, i.title, i.description, i.category, i.priority, i.status,
	i.reporter_id, COALESCE(r.name, ''), COALESCE(r.email, ''), COALESCE(r.phone, ''),
	i.assigned_to, COALESCE(a.name, ''), COALESCE(a.email, ''), COALESCE(a.phone, ''),
	ST_X(i.location::geometry), ST_Y(i.location::geometry), i.address, COALESCE(i.sector, ''),
	i.media, i.tags, i.estimated_crowd_size,
	i.reported_at, i.first_response_at, i.resolved_at,
	i.is_emergency, i.ai_detected, i.created_at, i.updated_at`

const incidentFrom = `
	FROM incidents i
	LEFT JOIN users r ON r.id = i.reporter_id
	LEFT JOIN users a ON a.id = i.assigned_to`

// incidentSortColumns - допустимые поля сортировки списка
var incidentSortColumns = map[string]string{
	"createdAt": "i.created_at",
	"updatedAt": "i.updated_at",
	"title":     "i.title",
	"status":    "i.status",
	"category":  "i.category",
	"priority":  "CASE i.priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 ELSE 3 END",
}

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	const op = "repository.incident.Create"
	query := `
		INSERT INTO incidents (
			title, description, category, priority, status, reporter_id,
			location, address, sector, media, tags, estimated_crowd_size,
			reported_at, is_emergency, ai_detected
		)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography,
			$9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at;
	`
	media := incident.Media
	if media == nil {
		media = []models.Media{}
	}
	tags := incident.Tags
	if tags == nil {
		tags = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Category,
		incident.Priority,
		incident.Status,
		incident.Reporter.ID,
		incident.Location.Coordinates.Lng(),
		incident.Location.Coordinates.Lat(),
		incident.Location.Address,
		nullIfEmpty(incident.Location.Sector),
		media,
		tags,
		incident.EstimatedCrowdSize,
		incident.ResponseTime.Reported,
		incident.IsEmergency,
		incident.AIDetected,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// GetByID возвращает инцидент с заметками и подставленными пользователями
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	const op = "repository.incident.GetByID"
	query := `SELECT ` + incidentColumns + incidentFrom + ` WHERE i.id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("incident %s: %w", id, err))
	}
	if err := r.attachNotes(ctx, []*models.Incident{incident}); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return incident, nil
}

// List возвращает страницу инцидентов и общее число подходящих под фильтр
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, int, error) {
	const op = "repository.incident.List"

	countQuery, countArgs := buildIncidentCountQuery(filter)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	query, args := buildIncidentListQuery(filter)
	incidents, err := r.queryIncidents(ctx, query, args...)
	if err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return incidents, total, nil
}

// UpdateStatus записывает статус, исполнителя и отметки времени реакции
func (r *IncidentRepository) UpdateStatus(ctx context.Context, incident *models.Incident) error {
	const op = "repository.incident.UpdateStatus"
	query := `
		UPDATE incidents SET
			status = $1,
			assigned_to = $2,
			first_response_at = $3,
			resolved_at = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at;
	`
	var assignedTo *uuid.UUID
	if incident.AssignedTo != nil {
		assignedTo = &incident.AssignedTo.ID
	}
	err := r.db.QueryRow(ctx, query,
		incident.Status,
		assignedTo,
		incident.ResponseTime.FirstResponse,
		incident.ResponseTime.Resolved,
		incident.ID,
	).Scan(&incident.UpdatedAt)
	if err != nil {
		return e.WrapError(ctx, op, fmt.Errorf("incident %s: %w", incident.ID, err))
	}
	return nil
}

// AddNote атомарно добавляет заметку одной вставкой; если инцидента нет, ничего не пишется
func (r *IncidentRepository) AddNote(ctx context.Context, incidentID uuid.UUID, note *models.Note) error {
	const op = "repository.incident.AddNote"
	query := `
		WITH ins AS (
			INSERT INTO incident_notes (incident_id, author_id, text, created_at)
			SELECT id, $2, $3, $4 FROM incidents WHERE id = $1
			RETURNING id
		), touch AS (
			UPDATE incidents SET updated_at = NOW()
			WHERE id = $1 AND EXISTS (SELECT 1 FROM ins)
		)
		SELECT id FROM ins;
	`
	err := r.db.QueryRow(ctx, query, incidentID, note.Author.ID, note.Text, note.Timestamp).Scan(&note.ID)
	if err != nil {
		return e.WrapError(ctx, op, fmt.Errorf("incident %s: %w", incidentID, err))
	}
	return nil
}

// FindNearby находит инциденты любого статуса в радиусе от точки, ближайшие первыми
func (r *IncidentRepository) FindNearby(ctx context.Context, lng, lat, radiusMeters float64) ([]*models.Incident, error) {
	const op = "repository.incident.FindNearby"
	query := `SELECT ` + incidentColumns + incidentFrom + `
		WHERE ST_DWithin(i.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY ST_Distance(i.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) ASC, i.id;
	`
	incidents, err := r.queryIncidents(ctx, query, lng, lat, radiusMeters)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return incidents, nil
}

// StatusSummary считает инциденты по статусам; среднее время решения только по решённым
func (r *IncidentRepository) StatusSummary(ctx context.Context) (*models.IncidentStatusSummary, error) {
	const op = "repository.incident.StatusSummary"
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'open'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'resolved'),
			COUNT(*) FILTER (WHERE status = 'closed'),
			COUNT(*) FILTER (WHERE priority = 'critical'),
			COUNT(*) FILTER (WHERE is_emergency),
			AVG(EXTRACT(EPOCH FROM (resolved_at - reported_at)) * 1000)::float8
		FROM incidents;
	`
	s := &models.IncidentStatusSummary{}
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Total, &s.Open, &s.InProgress, &s.Resolved, &s.Closed,
		&s.Critical, &s.Emergency, &s.AvgResolutionTimeMs,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return s, nil
}

func (r *IncidentRepository) queryIncidents(ctx context.Context, query string, args ...any) ([]*models.Incident, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}

	if err := r.attachNotes(ctx, incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// attachNotes загружает заметки одним запросом для всех переданных инцидентов
func (r *IncidentRepository) attachNotes(ctx context.Context, incidents []*models.Incident) error {
	if len(incidents) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(incidents))
	byID := make(map[uuid.UUID]*models.Incident, len(incidents))
	for _, inc := range incidents {
		ids = append(ids, inc.ID)
		byID[inc.ID] = inc
	}

	query := `
		SELECT n.incident_id, n.id, n.text, n.author_id,
			COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.phone, ''), n.created_at
		FROM incident_notes n
		LEFT JOIN users u ON u.id = n.author_id
		WHERE n.incident_id = ANY($1)
		ORDER BY n.created_at, n.id;
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query incident notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var incidentID uuid.UUID
		var n models.Note
		if err := rows.Scan(&incidentID, &n.ID, &n.Text, &n.Author.ID,
			&n.Author.Name, &n.Author.Email, &n.Author.Phone, &n.Timestamp); err != nil {
			return fmt.Errorf("failed to scan incident note: %w", err)
		}
		if inc, ok := byID[incidentID]; ok {
			inc.Notes = append(inc.Notes, n)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*models.Incident, error) {
	inc := &models.Incident{Location: models.Location{Type: "Point"}, Notes: []models.Note{}}
	var (
		assignedID                              *uuid.UUID
		assignedName, assignedEmail, assignedPh string
		lng, lat                                float64
	)
	err := row.Scan(
		&inc.ID, &inc.Title, &inc.Description, &inc.Category, &inc.Priority, &inc.Status,
		&inc.Reporter.ID, &inc.Reporter.Name, &inc.Reporter.Email, &inc.Reporter.Phone,
		&assignedID, &assignedName, &assignedEmail, &assignedPh,
		&lng, &lat, &inc.Location.Address, &inc.Location.Sector,
		&inc.Media, &inc.Tags, &inc.EstimatedCrowdSize,
		&inc.ResponseTime.Reported, &inc.ResponseTime.FirstResponse, &inc.ResponseTime.Resolved,
		&inc.IsEmergency, &inc.AIDetected, &inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inc.Location.Coordinates = models.Point{lng, lat}
	if assignedID != nil {
		inc.AssignedTo = &models.UserRef{ID: *assignedID, Name: assignedName, Email: assignedEmail, Phone: assignedPh}
	}
	if inc.Media == nil {
		inc.Media = []models.Media{}
	}
	if inc.Tags == nil {
		inc.Tags = []string{}
	}
	return inc, nil
}

func incidentFilterConditions(filter models.IncidentFilter) *conditions {
	c := &conditions{}
	if filter.Status != "" {
		c.where("i.status = " + c.arg(filter.Status))
	}
	if filter.Priority != "" {
		c.where("i.priority = " + c.arg(filter.Priority))
	}
	if filter.Category != "" {
		c.where("i.category = " + c.arg(filter.Category))
	}
	if filter.Sector != "" {
		c.where("i.sector = " + c.arg(filter.Sector))
	}
	return c
}

func buildIncidentCountQuery(filter models.IncidentFilter) (string, []any) {
	c := incidentFilterConditions(filter)
	return "SELECT COUNT(*) FROM incidents i" + c.sql(), c.args
}

// buildIncidentListQuery сортирует только по полям из белого списка; id - стабильный тай-брейк
func buildIncidentListQuery(filter models.IncidentFilter) (string, []any) {
	c := incidentFilterConditions(filter)
	column, ok := incidentSortColumns[filter.SortBy]
	if !ok {
		column = incidentSortColumns["createdAt"]
	}
	query := "SELECT " + incidentColumns + incidentFrom + c.sql() +
		fmt.Sprintf(" ORDER BY %s %s, i.id", column, sortDirection(filter.SortOrder)) +
		c.paginate(filter.Page, filter.Limit)
	return query, c.args
}

func incidentCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, incidentCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
