package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomSingle    RoomType = "single"
	RoomDouble    RoomType = "double"
	RoomFamily    RoomType = "family"
	RoomDormitory RoomType = "dormitory"
	RoomTent      RoomType = "tent"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) Valid() bool {
	return v == VerificationPending || v == VerificationVerified || v == VerificationRejected
}

type RoomAddress struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
	FullAddress string `json:"fullAddress,omitempty"`
}

type RoomLocation struct {
	Type        string      `json:"type"`
	Coordinates Point       `json:"coordinates"`
	Address     RoomAddress `json:"address"`
	Sector      string      `json:"sector,omitempty"`
}

type Capacity struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type Price struct {
	PerNight float64 `json:"perNight"`
	Currency string  `json:"currency"`
}

type RoomImage struct {
	URL       string `json:"url"`
	Filename  string `json:"filename,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

type Availability struct {
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsAvailable bool       `json:"isAvailable"`
}

type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	User      UserRef   `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Room struct {
	ID                 uuid.UUID          `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Owner              UserRef            `json:"owner"`
	Location           RoomLocation       `json:"location"`
	Type               RoomType           `json:"type"`
	Capacity           Capacity           `json:"capacity"`
	Price              Price              `json:"price"`
	Amenities          []string           `json:"amenities"`
	Images             []RoomImage        `json:"images"`
	Availability       Availability       `json:"availability"`
	Rules              []string           `json:"rules"`
	ContactInfo        ContactInfo        `json:"contactInfo"`
	Rating             Rating             `json:"rating"`
	Reviews            []Review           `json:"reviews"`
	IsActive           bool               `json:"isActive"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// RoomPage - страница публичного списка комнат
type RoomPage struct {
	Rooms       []*Room `json:"rooms"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Total       int     `json:"total"`
}

// RoomFilter - фильтры публичного списка; неподтверждённые и неактивные комнаты не выдаются никогда
type RoomFilter struct {
	Sector       string
	Type         RoomType
	MinPrice     *float64
	MaxPrice     *float64
	Amenities    []string
	Near         *Point
	RadiusMeters *float64 // nil - радиус по умолчанию
	Page         int
	Limit        int
}
