package v1

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
)

// DTOToIncidentModel преобразует DTO создания в доменную модель
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	media := make([]models.Media, 0, len(dto.Media))
	for _, m := range dto.Media {
		media = append(media, models.Media{Type: m.Type, URL: m.URL, Filename: m.Filename})
	}
	return &models.Incident{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    models.IncidentCategory(dto.Category),
		Priority:    models.Priority(dto.Priority),
		Location: models.Location{
			Coordinates: toPoint(dto.Location.Coordinates),
			Address:     dto.Location.Address,
			Sector:      dto.Location.Sector,
		},
		Media:              media,
		Tags:               dto.Tags,
		EstimatedCrowdSize: dto.EstimatedCrowdSize,
		IsEmergency:        dto.IsEmergency,
		AIDetected:         dto.AIDetected,
	}
}

func DTOToNotificationModel(dto CreateNotificationRequest) *models.Notification {
	return &models.Notification{
		Title:    dto.Title,
		Message:  dto.Message,
		Type:     models.NotificationType(dto.Type),
		Priority: models.Priority(dto.Priority),
		Sector:   dto.Sector,
	}
}

func DTOToRoomModel(dto CreateRoomRequest) *models.Room {
	return &models.Room{
		Title:       dto.Title,
		Description: dto.Description,
		Location: models.RoomLocation{
			Coordinates: toPoint(dto.Location.Coordinates),
			Address:     dto.Location.Address,
			Sector:      dto.Location.Sector,
		},
		Type:         models.RoomType(dto.Type),
		Capacity:     models.Capacity{Adults: dto.Capacity.Adults, Children: dto.Capacity.Children},
		Price:        models.Price{PerNight: dto.Price.PerNight, Currency: strings.ToUpper(dto.Price.Currency)},
		Amenities:    dto.Amenities,
		Images:       dto.Images,
		Availability: dto.Availability,
		Rules:        dto.Rules,
		ContactInfo:  toContactInfo(dto.ContactInfo),
	}
}

func DTOToBookingModel(dto CreateBookingRequest) *models.Booking {
	return &models.Booking{
		Type:                 models.BookingType(dto.Type),
		TransportDetails:     dto.TransportDetails,
		AccommodationDetails: dto.AccommodationDetails,
		Payment: models.Payment{
			Method:        dto.Payment.Method,
			Amount:        dto.Payment.Amount,
			TransactionID: dto.Payment.TransactionID,
		},
		SpecialRequests: dto.SpecialRequests,
		ContactInfo:     toContactInfo(dto.ContactInfo),
	}
}

func DTOToHealthDataModel(dto CreateHealthDataRequest) *models.HealthData {
	data := &models.HealthData{
		Sector:        dto.Sector,
		Metrics:       dto.Metrics,
		Alerts:        make([]models.HealthAlert, 0, len(dto.Alerts)),
		AIPredictions: dto.AIPredictions,
	}
	if dto.Date != nil {
		data.Date = dto.Date.UTC()
	}
	for _, a := range dto.Alerts {
		data.Alerts = append(data.Alerts, models.HealthAlert{
			Type:     a.Type,
			Severity: models.Priority(a.Severity),
			Message:  a.Message,
		})
	}
	return data
}

func toContactInfo(dto ContactInfoRequest) models.ContactInfo {
	return models.ContactInfo{Name: dto.Name, Phone: dto.Phone, Email: dto.Email, WhatsApp: dto.WhatsApp}
}

// toPoint вызывается только после проверки lnglat
func toPoint(coords []float64) models.Point {
	var p models.Point
	copy(p[:], coords)
	return p
}

func parseAssignee(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

// parseCoordinates разбирает "lng,lat" из query-параметра
func parseCoordinates(raw string) (*models.Point, bool) {
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, false
	}
	return &models.Point{lng, lat}, true
}

// splitList разбирает "a,b,c" и повторяющиеся параметры
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
