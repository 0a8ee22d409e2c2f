package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
)

const (
	defaultCurrency    = "INR"
	defaultRoomRadius  = 5000.0
	minRoomDescription = 20
	minReviewComment   = 5
)

var roomAmenities = map[string]struct{}{
	"wifi": {}, "ac": {}, "fan": {}, "bathroom": {}, "kitchen": {},
	"parking": {}, "security": {}, "laundry": {}, "food": {}, "water": {},
}

type RoomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]*models.Room, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	AddReview(ctx context.Context, roomID uuid.UUID, review *models.Review) (*models.Rating, error)
	SetVerification(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error
}

type RoomService interface {
	List(ctx context.Context, filter models.RoomFilter) (*models.RoomPage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Room, error)
	Create(ctx context.Context, ownerID uuid.UUID, room *models.Room) (*models.Room, error)
	AddReview(ctx context.Context, roomID, userID uuid.UUID, rating int, comment string) (*models.Room, error)
	SetVerification(ctx context.Context, id uuid.UUID, status models.VerificationStatus) (*models.Room, error)
}

type roomService struct {
	repo   RoomRepository
	logger *logrus.Logger
	clock  clock
}

func NewRoomService(repo RoomRepository, logger *logrus.Logger) RoomService {
	return &roomService{
		repo:   repo,
		logger: logger,
	}
}

// List выдаёт только подтверждённые активные комнаты; это условие добавляет репозиторий
func (s *roomService) List(ctx context.Context, filter models.RoomFilter) (*models.RoomPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	verr := &e.ValidationError{}
	if filter.Type != "" && !validRoomType(filter.Type) {
		verr.Add("type", "must be one of [single double family dormitory tent]")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MaxPrice < *filter.MinPrice {
		verr.Add("maxPrice", "must not be less than minPrice")
	}
	if filter.Near != nil {
		if !validPoint(*filter.Near) {
			verr.Add("coordinates", "coordinates must be [longitude, latitude]")
		}
		switch {
		case filter.RadiusMeters == nil:
			radius := defaultRoomRadius
			filter.RadiusMeters = &radius
		case *filter.RadiusMeters < 0:
			verr.Add("radius", "must be greater than or equal to 0")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	rooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "room",
			"method":  "List",
		}).WithError(err).Error("Failed to list rooms")
		return nil, fmt.Errorf("service: could not list rooms: %w", err)
	}
	return &models.RoomPage{
		Rooms:       nonNil(rooms),
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: filter.Page,
		Total:       total,
	}, nil
}

func (s *roomService) Get(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get room: %w", err)
	}
	return room, nil
}

// Create сохраняет объявление в статусе pending; в публичный список оно попадёт после проверки
func (s *roomService) Create(ctx context.Context, ownerID uuid.UUID, room *models.Room) (*models.Room, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "room",
		"method":  "Create",
		"owner":   ownerID,
	})

	room.Title = strings.TrimSpace(room.Title)
	room.Description = strings.TrimSpace(room.Description)
	if room.Price.Currency == "" {
		room.Price.Currency = defaultCurrency
	}
	if err := validateRoom(room); err != nil {
		return nil, err
	}

	room.Owner = models.UserRef{ID: ownerID}
	room.Location.Type = "Point"
	room.Amenities = dedupeTags(room.Amenities)
	room.Rating = models.Rating{}
	room.Reviews = nil
	room.IsActive = true
	room.VerificationStatus = models.VerificationPending

	if err := s.repo.Create(ctx, room); err != nil {
		log.WithError(err).Error("Failed to create room")
		return nil, fmt.Errorf("service: could not create room: %w", err)
	}
	log.WithField("room_id", room.ID).Info("Room listing created successfully")
	return room, nil
}

// AddReview добавляет отзыв и пересчитывает рейтинг как среднее всех оценок
func (s *roomService) AddReview(ctx context.Context, roomID, userID uuid.UUID, rating int, comment string) (*models.Room, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "room",
		"method":  "AddReview",
		"room_id": roomID,
	})

	comment = strings.TrimSpace(comment)
	verr := &e.ValidationError{}
	if rating < 1 || rating > 5 {
		verr.Add("rating", "must be between 1 and 5")
	}
	if utf8.RuneCountInString(comment) < minReviewComment {
		verr.Add("comment", fmt.Sprintf("must be at least %d characters", minReviewComment))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, roomID); err != nil {
		log.WithError(err).Warn("Attempted to review a non-existent room")
		return nil, fmt.Errorf("service: could not get room for review: %w", err)
	}

	review := models.Review{
		User:      models.UserRef{ID: userID},
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.clock.now(),
	}
	stored, err := s.repo.AddReview(ctx, roomID, &review)
	if err != nil {
		log.WithError(err).Error("Failed to add review")
		return nil, fmt.Errorf("service: could not add review: %w", err)
	}

	// Перечитываем после коммита: отзывы и rating.count из одного снимка,
	// включая отзывы, добавленные параллельно
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		log.WithError(err).Error("Failed to reload room after review")
		return nil, fmt.Errorf("service: could not reload room after review: %w", err)
	}

	log.WithFields(logrus.Fields{
		"rating":  stored.Average,
		"reviews": stored.Count,
	}).Info("Review added successfully")
	return room, nil
}

func (s *roomService) SetVerification(ctx context.Context, id uuid.UUID, status models.VerificationStatus) (*models.Room, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "room",
		"method":  "SetVerification",
		"room_id": id,
		"status":  status,
	})

	if !status.Valid() {
		return nil, e.NewValidationError("verificationStatus", "must be one of [pending verified rejected]")
	}
	if err := s.repo.SetVerification(ctx, id, status); err != nil {
		log.WithError(err).Warn("Failed to update room verification")
		return nil, fmt.Errorf("service: could not update verification: %w", err)
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not load room: %w", err)
	}
	log.Info("Room verification updated")
	return room, nil
}

func validateRoom(room *models.Room) error {
	verr := &e.ValidationError{}
	if utf8.RuneCountInString(room.Title) < minTitleLen {
		verr.Add("title", fmt.Sprintf("must be at least %d characters", minTitleLen))
	}
	if utf8.RuneCountInString(room.Description) < minRoomDescription {
		verr.Add("description", fmt.Sprintf("must be at least %d characters", minRoomDescription))
	}
	if !validRoomType(room.Type) {
		verr.Add("type", "must be one of [single double family dormitory tent]")
	}
	if room.Capacity.Adults < 1 {
		verr.Add("capacity.adults", "must be at least 1")
	}
	if room.Capacity.Children < 0 {
		verr.Add("capacity.children", "must be greater than or equal to 0")
	}
	if room.Price.PerNight < 0 {
		verr.Add("price.perNight", "must be greater than or equal to 0")
	}
	if !validPoint(room.Location.Coordinates) {
		verr.Add("location.coordinates", "coordinates must be [longitude, latitude]")
	}
	for _, a := range room.Amenities {
		if _, ok := roomAmenities[a]; !ok {
			verr.Add("amenities", fmt.Sprintf("unknown amenity %q", a))
			break
		}
	}
	return verr.OrNil()
}

func validRoomType(t models.RoomType) bool {
	switch t {
	case models.RoomSingle, models.RoomDouble, models.RoomFamily, models.RoomDormitory, models.RoomTent:
		return true
	}
	return false
}

func validPoint(p models.Point) bool {
	return p.Lng() >= -180 && p.Lng() <= 180 && p.Lat() >= -90 && p.Lat() <= 90
}
