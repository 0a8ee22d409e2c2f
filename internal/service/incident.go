package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/realtime"
	"github.com/shenikar/pilgrim_path/internal/webhook"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
)

const (
	minTitleLen         = 5
	minDescriptionLen   = 10
	DefaultNearbyRadius = 1000.0
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, int, error)
	UpdateStatus(ctx context.Context, incident *models.Incident) error
	AddNote(ctx context.Context, incidentID uuid.UUID, note *models.Note) error
	FindNearby(ctx context.Context, lng, lat, radiusMeters float64) ([]*models.Incident, error)
	StatusSummary(ctx context.Context) (*models.IncidentStatusSummary, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// IncidentService определяет контракт для бизнес-логики жизненного цикла инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, reporterID uuid.UUID, incident *models.Incident) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter) (*models.IncidentPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus, assignedTo *uuid.UUID) (*models.Incident, error)
	AddNote(ctx context.Context, id, authorID uuid.UUID, text string) (*models.Incident, error)
	FindNearby(ctx context.Context, lng, lat float64, radiusMeters *float64) ([]*models.Incident, error)
	StatusSummary(ctx context.Context) (*models.IncidentStatusSummary, error)
}

type incidentService struct {
	repo        IncidentRepository
	events      realtime.Publisher
	escalations webhook.Publisher
	logger      *logrus.Logger
	clock       clock
}

func NewIncidentService(repo IncidentRepository, events realtime.Publisher, escalations webhook.Publisher, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:        repo,
		events:      events,
		escalations: escalations,
		logger:      logger,
	}
}

// CreateIncident проверяет и сохраняет новый инцидент, затем оповещает подписчиков
func (s *incidentService) CreateIncident(ctx context.Context, reporterID uuid.UUID, incident *models.Incident) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"reporter": reporterID,
	})
	log.Info("Attempting to create a new incident")

	incident.Title = strings.TrimSpace(incident.Title)
	incident.Description = strings.TrimSpace(incident.Description)
	if incident.Priority == "" {
		incident.Priority = models.PriorityMedium
	}
	if err := validateIncident(incident); err != nil {
		log.WithError(err).Warn("Incident validation failed")
		return nil, err
	}

	now := s.clock.now()
	incident.Reporter = models.UserRef{ID: reporterID}
	incident.Status = models.StatusOpen
	incident.Location.Type = "Point"
	incident.Tags = dedupeTags(incident.Tags)
	incident.ResponseTime = models.ResponseTime{Reported: now}
	incident.Notes = nil
	incident.AssignedTo = nil

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	created, err := s.repo.GetByID(ctx, incident.ID)
	if err != nil {
		log.WithError(err).Error("Failed to reload created incident")
		return nil, fmt.Errorf("service: could not load created incident: %w", err)
	}
	log = log.WithField("incident_id", created.ID)

	publish(ctx, s.events, log, realtime.EventNewIncident, created)
	if created.IsEmergency || created.Priority == models.PriorityCritical {
		if err := s.escalations.Publish(ctx, webhook.NewEscalationEvent(created)); err != nil {
			log.WithError(err).Warn("Failed to queue incident escalation")
		}
	}

	log.Info("Incident created successfully")
	return created, nil
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Debug("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает страницу инцидентов по фильтрам
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) (*models.IncidentPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
	log.Debug("Listing incidents")

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, e.NewValidationError("status", "must be one of [open in_progress resolved closed]")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, e.NewValidationError("priority", "must be one of [low medium high critical]")
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, e.NewValidationError("category", "is not a known category")
	}

	incidents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return &models.IncidentPage{
		Incidents:   incidents,
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: filter.Page,
		Total:       total,
	}, nil
}

// UpdateStatus меняет статус инцидента. Таблицы переходов нет; при одновременных
// обновлениях побеждает последняя запись.
func (s *incidentService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus, assignedTo *uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateStatus",
		"incident_id": id,
		"status":      status,
	})
	log.Info("Attempting to update incident status")

	if !status.Valid() {
		return nil, e.NewValidationError("status", "must be one of [open in_progress resolved closed]")
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return nil, fmt.Errorf("service: incident with id %s not found for update: %w", id, err)
	}

	incident.ApplyStatus(status, s.clock.now())
	if assignedTo != nil {
		incident.AssignedTo = &models.UserRef{ID: *assignedTo}
	}

	if err := s.repo.UpdateStatus(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to update incident status in repository")
		return nil, fmt.Errorf("service: could not update incident status: %w", err)
	}
	s.invalidate(ctx, log, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to reload updated incident")
		return nil, fmt.Errorf("service: could not load updated incident: %w", err)
	}

	publish(ctx, s.events, log, realtime.EventIncidentUpdated, updated)
	log.Info("Incident status updated successfully")
	return updated, nil
}

// AddNote добавляет заметку к инциденту; статус не меняется
func (s *incidentService) AddNote(ctx context.Context, id, authorID uuid.UUID, text string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AddNote",
		"incident_id": id,
	})

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, e.NewValidationError("text", "is required")
	}

	note := &models.Note{
		Text:      text,
		Author:    models.UserRef{ID: authorID},
		Timestamp: s.clock.now(),
	}
	if err := s.repo.AddNote(ctx, id, note); err != nil {
		log.WithError(err).Warn("Failed to add note to incident")
		return nil, fmt.Errorf("service: could not add note: %w", err)
	}
	s.invalidate(ctx, log, id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to reload incident after note")
		return nil, fmt.Errorf("service: could not load incident: %w", err)
	}

	payload := models.NotePayload{IncidentID: id, Note: *note}
	for _, n := range updated.Notes {
		if n.ID == note.ID {
			payload.Note = n
			break
		}
	}
	publish(ctx, s.events, log, realtime.EventIncidentNoteAdded, payload)

	log.WithField("note_id", note.ID).Info("Note added successfully")
	return updated, nil
}

// FindNearby возвращает инциденты в радиусе от точки, ближайшие первыми.
// Радиус по умолчанию подставляется только если он не передан; явный 0 остаётся нулём.
func (s *incidentService) FindNearby(ctx context.Context, lng, lat float64, radiusMeters *float64) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "FindNearby",
		"lng":     lng,
		"lat":     lat,
	})

	verr := &e.ValidationError{}
	if lng < -180 || lng > 180 {
		verr.Add("lng", "must be a valid longitude")
	}
	if lat < -90 || lat > 90 {
		verr.Add("lat", "must be a valid latitude")
	}
	radius := DefaultNearbyRadius
	if radiusMeters != nil {
		radius = *radiusMeters
	}
	if radius < 0 {
		verr.Add("radius", "must be greater than or equal to 0")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	incidents, err := s.repo.FindNearby(ctx, lng, lat, radius)
	if err != nil {
		log.WithError(err).Error("Failed to find nearby incidents")
		return nil, fmt.Errorf("service: failed to find nearby incidents: %w", err)
	}
	log.WithField("count", len(incidents)).Debug("Nearby incidents found")
	return incidents, nil
}

// StatusSummary возвращает счётчики по статусам и среднее время до решения
func (s *incidentService) StatusSummary(ctx context.Context) (*models.IncidentStatusSummary, error) {
	summary, err := s.repo.StatusSummary(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "incident",
			"method":  "StatusSummary",
		}).WithError(err).Error("Failed to compute incident status summary")
		return nil, fmt.Errorf("service: could not compute status summary: %w", err)
	}
	return summary, nil
}

func (s *incidentService) invalidate(ctx context.Context, log *logrus.Entry, id uuid.UUID) {
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

func validateIncident(incident *models.Incident) error {
	verr := &e.ValidationError{}
	if utf8.RuneCountInString(incident.Title) < minTitleLen {
		verr.Add("title", fmt.Sprintf("must be at least %d characters", minTitleLen))
	}
	if utf8.RuneCountInString(incident.Description) < minDescriptionLen {
		verr.Add("description", fmt.Sprintf("must be at least %d characters", minDescriptionLen))
	}
	if !incident.Category.Valid() {
		verr.Add("category", "is not a known category")
	}
	if !incident.Priority.Valid() {
		verr.Add("priority", "must be one of [low medium high critical]")
	}
	c := incident.Location.Coordinates
	if c.Lng() < -180 || c.Lng() > 180 || c.Lat() < -90 || c.Lat() > 90 {
		verr.Add("location.coordinates", "coordinates must be [longitude, latitude]")
	}
	if incident.EstimatedCrowdSize != nil && *incident.EstimatedCrowdSize < 0 {
		verr.Add("estimatedCrowdSize", "must be greater than or equal to 0")
	}
	for i, m := range incident.Media {
		if m.Type != "image" && m.Type != "video" {
			verr.Add(fmt.Sprintf("media[%d].type", i), "must be one of [image video]")
		}
	}
	return verr.OrNil()
}

// dedupeTags убирает пустые и повторяющиеся теги, сохраняя порядок
func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
