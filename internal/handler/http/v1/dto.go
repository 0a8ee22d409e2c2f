package v1

import (
	"time"

	"github.com/shenikar/pilgrim_path/internal/models"
)

// LocationRequest - точка [долгота, широта] с адресом
// @Description Точка инцидента
type LocationRequest struct {
	Coordinates []float64 `json:"coordinates" validate:"required,lnglat"`
	Address     string    `json:"address,omitempty" validate:"max=500"`
	Sector      string    `json:"sector,omitempty" validate:"max=100"`
}

type MediaRequest struct {
	Type     string `json:"type" validate:"required,oneof=image video"`
	URL      string `json:"url" validate:"required,url"`
	Filename string `json:"filename,omitempty"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title              string          `json:"title" validate:"required,max=200"`
	Description        string          `json:"description" validate:"required,max=5000"`
	Category           string          `json:"category" validate:"required,oneof=crowding health lost_item safety sanitation transport other"`
	Priority           string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Location           LocationRequest `json:"location" validate:"required"`
	Media              []MediaRequest  `json:"media,omitempty" validate:"omitempty,dive"`
	Tags               []string        `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	EstimatedCrowdSize *int            `json:"estimatedCrowdSize,omitempty" validate:"omitempty,gte=0"`
	IsEmergency        bool            `json:"isEmergency"`
	AIDetected         bool            `json:"aiDetected"`
}

// UpdateStatusRequest DTO для смены статуса инцидента
// @Description DTO для смены статуса инцидента
type UpdateStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,uuid"`
}

// AddNoteRequest DTO для добавления заметки
// @Description DTO для добавления заметки
type AddNoteRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CreateNotificationRequest DTO для создания уведомления
// @Description DTO для создания уведомления
type CreateNotificationRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=2000"`
	Type     string `json:"type" validate:"required,oneof=alert emergency info update"`
	Priority string `json:"priority" validate:"required,oneof=low medium high critical"`
	Sector   string `json:"sector,omitempty" validate:"max=100"`
}

type RoomLocationRequest struct {
	Coordinates []float64          `json:"coordinates" validate:"required,lnglat"`
	Address     models.RoomAddress `json:"address"`
	Sector      string             `json:"sector,omitempty" validate:"max=100"`
}

type ContactInfoRequest struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	WhatsApp string `json:"whatsapp,omitempty" validate:"omitempty,phone"`
}

// CreateRoomRequest DTO для размещения объявления о комнате
// @Description DTO для размещения объявления о комнате
type CreateRoomRequest struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"required,max=5000"`
	Location    RoomLocationRequest `json:"location" validate:"required"`
	Type        string              `json:"type" validate:"required,oneof=single double family dormitory tent"`
	Capacity    struct {
		Adults   int `json:"adults" validate:"gte=1"`
		Children int `json:"children" validate:"gte=0"`
	} `json:"capacity"`
	Price struct {
		PerNight float64 `json:"perNight" validate:"gte=0"`
		Currency string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	} `json:"price"`
	Amenities    []string            `json:"amenities,omitempty"`
	Images       []models.RoomImage  `json:"images,omitempty"`
	Availability models.Availability `json:"availability"`
	Rules        []string            `json:"rules,omitempty"`
	ContactInfo  ContactInfoRequest  `json:"contactInfo"`
}

// AddReviewRequest DTO для отзыва о комнате
// @Description DTO для отзыва о комнате
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

// VerificationRequest DTO для модерации объявления
// @Description DTO для модерации объявления
type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified rejected"`
}

// CreateBookingRequest DTO для бронирования; заполняются только детали выбранного типа
// @Description DTO для бронирования
type CreateBookingRequest struct {
	Type                 string                       `json:"type" validate:"required,oneof=transport accommodation"`
	TransportDetails     *models.TransportDetails     `json:"transportDetails,omitempty" validate:"required_if=Type transport"`
	AccommodationDetails *models.AccommodationDetails `json:"accommodationDetails,omitempty" validate:"required_if=Type accommodation"`
	Payment              PaymentRequest               `json:"payment"`
	SpecialRequests      string                       `json:"specialRequests,omitempty" validate:"max=1000"`
	ContactInfo          ContactInfoRequest           `json:"contactInfo"`
}

type PaymentRequest struct {
	Method        string  `json:"method,omitempty"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	TransactionID string  `json:"transactionId,omitempty"`
}

// UpdateBookingStatusRequest DTO для смены статуса брони
// @Description DTO для смены статуса брони
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type HealthAlertRequest struct {
	Type     string `json:"type" validate:"required,oneof=outbreak sanitation water medical hygiene"`
	Severity string `json:"severity" validate:"required,oneof=low medium high critical"`
	Message  string `json:"message" validate:"required,max=1000"`
}

// CreateHealthDataRequest DTO для среза санитарных метрик сектора
// @Description DTO для среза санитарных метрик сектора
type CreateHealthDataRequest struct {
	Sector        string                `json:"sector" validate:"required,max=100"`
	Date          *time.Time            `json:"date,omitempty"`
	Metrics       models.HealthMetrics  `json:"metrics"`
	Alerts        []HealthAlertRequest  `json:"alerts,omitempty" validate:"omitempty,dive"`
	AIPredictions *models.AIPredictions `json:"aiPredictions,omitempty"`
}
