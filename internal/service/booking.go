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

var paymentMethods = map[string]struct{}{"cash": {}, "card": {}, "upi": {}, "wallet": {}}

type BookingRepository interface {
	List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, int, error)
	// GetByID с owner != nil находит бронь только этого пользователя
	GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, owner *uuid.UUID, status models.BookingStatus) (*models.Booking, error)
}

type BookingService interface {
	List(ctx context.Context, caller models.Caller, filter models.BookingFilter) (*models.BookingPage, error)
	Get(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Booking, error)
	Create(ctx context.Context, caller models.Caller, booking *models.Booking) (*models.Booking, error)
	UpdateStatus(ctx context.Context, caller models.Caller, id uuid.UUID, status models.BookingStatus) (*models.Booking, error)
}

type bookingService struct {
	repo   BookingRepository
	logger *logrus.Logger
}

func NewBookingService(repo BookingRepository, logger *logrus.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает брони вызывающего пользователя
func (s *bookingService) List(ctx context.Context, caller models.Caller, filter models.BookingFilter) (*models.BookingPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	filter.UserID = caller.ID

	if filter.Type != "" && !filter.Type.Valid() {
		return nil, e.NewValidationError("type", "must be one of [transport accommodation]")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, e.NewValidationError("status", "must be one of [pending confirmed cancelled completed]")
	}

	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "booking",
			"method":  "List",
			"user_id": caller.ID,
		}).WithError(err).Error("Failed to list bookings")
		return nil, fmt.Errorf("service: could not list bookings: %w", err)
	}
	return &models.BookingPage{
		Bookings:    nonNil(bookings),
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: filter.Page,
		Total:       total,
	}, nil
}

// Get: чужая бронь для не-админа неотличима от несуществующей
func (s *bookingService) Get(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id, ownerScope(caller))
	if err != nil {
		return nil, fmt.Errorf("service: could not get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) Create(ctx context.Context, caller models.Caller, booking *models.Booking) (*models.Booking, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "booking",
		"method":  "Create",
		"user_id": caller.ID,
	})

	booking.ContactInfo.Name = strings.TrimSpace(booking.ContactInfo.Name)
	booking.SpecialRequests = strings.TrimSpace(booking.SpecialRequests)
	if err := validateBooking(booking); err != nil {
		return nil, err
	}

	booking.UserID = caller.ID
	booking.Status = models.BookingPending
	booking.Normalize()

	if err := s.repo.Create(ctx, booking); err != nil {
		log.WithError(err).Error("Failed to create booking")
		return nil, fmt.Errorf("service: could not create booking: %w", err)
	}
	log.WithField("booking_id", booking.ID).Info("Booking created successfully")
	return booking, nil
}

// UpdateStatus доступен владельцу брони или администратору
func (s *bookingService) UpdateStatus(ctx context.Context, caller models.Caller, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "booking",
		"method":     "UpdateStatus",
		"booking_id": id,
		"status":     status,
	})

	if !status.Valid() {
		return nil, e.NewValidationError("status", "must be one of [pending confirmed cancelled completed]")
	}

	booking, err := s.repo.UpdateStatus(ctx, id, ownerScope(caller), status)
	if err != nil {
		log.WithError(err).Warn("Failed to update booking status")
		return nil, fmt.Errorf("service: could not update booking status: %w", err)
	}
	log.Info("Booking status updated successfully")
	return booking, nil
}

func ownerScope(caller models.Caller) *uuid.UUID {
	if caller.IsAdmin() {
		return nil
	}
	id := caller.ID
	return &id
}

func validateBooking(b *models.Booking) error {
	verr := &e.ValidationError{}
	switch b.Type {
	case models.BookingTransport:
		if b.TransportDetails == nil {
			verr.Add("transportDetails", "is required")
		}
	case models.BookingAccommodation:
		if b.AccommodationDetails == nil || b.AccommodationDetails.RoomID == uuid.Nil {
			verr.Add("accommodationDetails.roomId", "is required")
		} else if d := b.AccommodationDetails; d.CheckIn != nil && d.CheckOut != nil && !d.CheckOut.After(*d.CheckIn) {
			verr.Add("accommodationDetails.checkOut", "must be after checkIn")
		}
	default:
		verr.Add("type", "must be one of [transport accommodation]")
	}
	if utf8.RuneCountInString(b.ContactInfo.Name) < 2 {
		verr.Add("contactInfo.name", "must be at least 2 characters")
	}
	if b.ContactInfo.Phone == "" {
		verr.Add("contactInfo.phone", "is required")
	}
	if b.Payment.Method != "" {
		if _, ok := paymentMethods[b.Payment.Method]; !ok {
			verr.Add("payment.method", "must be one of [cash card upi wallet]")
		}
	}
	if b.Payment.Amount < 0 {
		verr.Add("payment.amount", "must be greater than or equal to 0")
	}
	return verr.OrNil()
}
