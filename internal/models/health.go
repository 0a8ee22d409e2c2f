package models

import (
	"time"

	"github.com/google/uuid"
)

type DiseaseOutbreak struct {
	Disease  string   `json:"disease"`
	Cases    int      `json:"cases"`
	Severity Priority `json:"severity"`
}

type MedicalFacilities struct {
	Available       int     `json:"available"`
	Occupied        int     `json:"occupied"`
	UtilizationRate float64 `json:"utilizationRate"`
}

type HygieneAlert struct {
	Type        string     `json:"type"`
	Severity    Priority   `json:"severity"`
	Description string     `json:"description"`
	Coordinates []float64  `json:"coordinates,omitempty"`
	ReportedAt  *time.Time `json:"reportedAt,omitempty"`
	Status      string     `json:"status"`
}

type HealthMetrics struct {
	TotalPeople       int               `json:"totalPeople"`
	HealthComplaints  int               `json:"healthComplaints"`
	DiseaseOutbreaks  []DiseaseOutbreak `json:"diseaseOutbreaks"`
	InfectionRate     float64           `json:"infectionRate"`
	SanitationScore   float64           `json:"sanitationScore"`
	WaterQuality      string            `json:"waterQuality"`
	MedicalFacilities MedicalFacilities `json:"medicalFacilities"`
	HygieneAlerts     []HygieneAlert    `json:"hygieneAlerts"`
	PublicHealthScore float64           `json:"publicHealthScore"`
}

type HealthAlert struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Severity   Priority  `json:"severity"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	IsResolved bool      `json:"isResolved"`
}

type AIPredictions struct {
	NextOutbreakRisk   float64  `json:"nextOutbreakRisk"`
	RecommendedActions []string `json:"recommendedActions"`
	Confidence         float64  `json:"confidence"`
}

type HealthData struct {
	ID            uuid.UUID      `json:"id"`
	Sector        string         `json:"sector"`
	Date          time.Time      `json:"date"`
	Metrics       HealthMetrics  `json:"metrics"`
	Alerts        []HealthAlert  `json:"alerts"`
	AIPredictions *AIPredictions `json:"aiPredictions,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// SectorHealth - агрегат по сектору для дашборда
type SectorHealth struct {
	Sector       string  `json:"sector"`
	LatestScore  float64 `json:"latestScore"`
	AvgScore     float64 `json:"avgScore"`
	TotalAlerts  int     `json:"totalAlerts"`
	ActiveAlerts int     `json:"activeAlerts"`
}

type HealthDashboard struct {
	Latest     *HealthData     `json:"latest"`
	SectorData []*SectorHealth `json:"sectorData"`
}

type HealthTrendPoint struct {
	ID                uuid.UUID `json:"id"`
	Sector            string    `json:"sector"`
	CreatedAt         time.Time `json:"createdAt"`
	PublicHealthScore float64   `json:"publicHealthScore"`
	InfectionRate     float64   `json:"infectionRate"`
	SanitationScore   float64   `json:"sanitationScore"`
}

// ActiveHealthAlert - неразрешённое оповещение вместе с сектором записи
type ActiveHealthAlert struct {
	HealthDataID uuid.UUID   `json:"healthDataId"`
	Sector       string      `json:"sector"`
	Alert        HealthAlert `json:"alert"`
	CreatedAt    time.Time   `json:"createdAt"`
}
