package models

import (
	"time"

	"github.com/google/uuid"
)

type IncidentCategory string

const (
	CategoryCrowding   IncidentCategory = "crowding"
	CategoryHealth     IncidentCategory = "health"
	CategoryLostItem   IncidentCategory = "lost_item"
	CategorySafety     IncidentCategory = "safety"
	CategorySanitation IncidentCategory = "sanitation"
	CategoryTransport  IncidentCategory = "transport"
	CategoryOther      IncidentCategory = "other"
)

func (c IncidentCategory) Valid() bool {
	switch c {
	case CategoryCrowding, CategoryHealth, CategoryLostItem, CategorySafety,
		CategorySanitation, CategoryTransport, CategoryOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type IncidentStatus string

const (
	StatusOpen       IncidentStatus = "open"
	StatusInProgress IncidentStatus = "in_progress"
	StatusResolved   IncidentStatus = "resolved"
	StatusClosed     IncidentStatus = "closed"
)

// Valid сообщает, входит ли статус в перечисление. Таблицы переходов нет:
// из любого статуса можно перейти в любой.
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Point - координаты в порядке GeoJSON: [долгота, широта]
type Point [2]float64

func (p Point) Lng() float64 { return p[0] }
func (p Point) Lat() float64 { return p[1] }

type Location struct {
	Type        string `json:"type"`
	Coordinates Point  `json:"coordinates"`
	Address     string `json:"address,omitempty"`
	Sector      string `json:"sector,omitempty"`
}

type Media struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

type ResponseTime struct {
	Reported      time.Time  `json:"reported"`
	FirstResponse *time.Time `json:"firstResponse,omitempty"`
	Resolved      *time.Time `json:"resolved,omitempty"`
}

type Note struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Author    UserRef   `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

type Incident struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Category           IncidentCategory `json:"category"`
	Priority           Priority         `json:"priority"`
	Status             IncidentStatus   `json:"status"`
	Reporter           UserRef          `json:"reporter"`
	AssignedTo         *UserRef         `json:"assignedTo,omitempty"`
	Location           Location         `json:"location"`
	Media              []Media          `json:"media"`
	Tags               []string         `json:"tags"`
	EstimatedCrowdSize *int             `json:"estimatedCrowdSize,omitempty"`
	ResponseTime       ResponseTime     `json:"responseTime"`
	Notes              []Note           `json:"notes"`
	IsEmergency        bool             `json:"isEmergency"`
	AIDetected         bool             `json:"aiDetected"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// ApplyStatus переводит инцидент в новый статус и проставляет отметки времени реакции.
// firstResponse ставится только при первом входе в in_progress; resolved перезаписывается
// при каждом переходе в resolved. Прямой переход open -> resolved/closed разрешён и
// оставляет firstResponse пустым.
func (i *Incident) ApplyStatus(status IncidentStatus, now time.Time) {
	i.Status = status
	switch status {
	case StatusInProgress:
		if i.ResponseTime.FirstResponse == nil {
			t := now
			i.ResponseTime.FirstResponse = &t
		}
	case StatusResolved:
		t := now
		i.ResponseTime.Resolved = &t
	}
}

// IncidentFilter - фильтры и пагинация для списка инцидентов
type IncidentFilter struct {
	Status    IncidentStatus
	Priority  Priority
	Category  IncidentCategory
	Sector    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// IncidentPage - страница списка инцидентов
type IncidentPage struct {
	Incidents   []*Incident `json:"incidents"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int         `json:"total"`
}

// NotePayload - облегчённое событие incident-note-added: только заметка, без документа
type NotePayload struct {
	IncidentID uuid.UUID `json:"incidentId"`
	Note       Note      `json:"note"`
}
