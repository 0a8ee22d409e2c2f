package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingTransport     BookingType = "transport"
	BookingAccommodation BookingType = "accommodation"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (t BookingType) Valid() bool {
	return t == BookingTransport || t == BookingAccommodation
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type RoutePoint struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type Route struct {
	From RoutePoint `json:"from"`
	To   RoutePoint `json:"to"`
}

type TransportDetails struct {
	VehicleType       string     `json:"vehicleType"`
	Route             Route      `json:"route"`
	ScheduledTime     *time.Time `json:"scheduledTime,omitempty"`
	EstimatedDuration int        `json:"estimatedDuration,omitempty"`
	Capacity          int        `json:"capacity,omitempty"`
	Price             float64    `json:"price,omitempty"`
}

type AccommodationDetails struct {
	RoomID    uuid.UUID  `json:"roomId"`
	CheckIn   *time.Time `json:"checkIn,omitempty"`
	CheckOut  *time.Time `json:"checkOut,omitempty"`
	Guests    int        `json:"guests,omitempty"`
	Price     float64    `json:"price,omitempty"`
	Amenities []string   `json:"amenities,omitempty"`
}

type Payment struct {
	Method        string  `json:"method,omitempty"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId,omitempty"`
}

type Booking struct {
	ID                   uuid.UUID             `json:"id"`
	UserID               uuid.UUID             `json:"user"`
	Type                 BookingType           `json:"type"`
	TransportDetails     *TransportDetails     `json:"transportDetails,omitempty"`
	AccommodationDetails *AccommodationDetails `json:"accommodationDetails,omitempty"`
	Status               BookingStatus         `json:"status"`
	Payment              Payment               `json:"payment"`
	SpecialRequests      string                `json:"specialRequests,omitempty"`
	ContactInfo          ContactInfo           `json:"contactInfo"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// Normalize оставляет только детали, соответствующие типу брони
func (b *Booking) Normalize() {
	switch b.Type {
	case BookingTransport:
		b.AccommodationDetails = nil
	case BookingAccommodation:
		b.TransportDetails = nil
	}
	if b.Payment.Status == "" {
		b.Payment.Status = "pending"
	}
}

type BookingFilter struct {
	UserID uuid.UUID
	Type   BookingType
	Status BookingStatus
	Page   int
	Limit  int
}

type BookingPage struct {
	Bookings    []*Booking `json:"bookings"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	Total       int        `json:"total"`
}
