package models

import "time"

// DateRange - необязательный диапазон по времени создания инцидента
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type Granularity string

const (
	GranularityHour Granularity = "hour"
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

func (g Granularity) Valid() bool {
	return g == GranularityHour || g == GranularityDay || g == GranularityWeek
}

// Средние значения - указатели: nil означает, что ни один инцидент не попал в выборку.

type OverviewStats struct {
	TotalIncidents      int      `json:"totalIncidents"`
	ResolvedIncidents   int      `json:"resolvedIncidents"`
	CriticalIncidents   int      `json:"criticalIncidents"`
	EmergencyIncidents  int      `json:"emergencyIncidents"`
	AIDetectedIncidents int      `json:"aiDetectedIncidents"`
	AvgResponseTimeMs   *float64 `json:"avgResponseTime"`
}

type CategoryStats struct {
	Category          IncidentCategory `json:"category"`
	Count             int              `json:"count"`
	AvgResponseTimeMs *float64         `json:"avgResponseTime"`
}

type SectorStats struct {
	Sector        string `json:"sector"`
	Count         int    `json:"count"`
	CriticalCount int    `json:"criticalCount"`
}

type AnalyticsOverview struct {
	Overview      OverviewStats    `json:"overview"`
	CategoryStats []*CategoryStats `json:"categoryStats"`
	SectorStats   []*SectorStats   `json:"sectorStats"`
}

// StatusCountRow - строка агрегата (корзина, статус, количество)
type StatusCountRow struct {
	Bucket string
	Status IncidentStatus
	Count  int
}

type StatusCount struct {
	Status IncidentStatus `json:"status"`
	Count  int            `json:"count"`
}

type TimeSeriesBucket struct {
	Bucket string        `json:"bucket"`
	Data   []StatusCount `json:"data"`
}

type AIComparison struct {
	AIDetected        bool     `json:"aiDetected"`
	Count             int      `json:"count"`
	AvgResponseTimeMs *float64 `json:"avgResponseTime"`
	ResolutionRate    *float64 `json:"resolutionRate"`
}

// IncidentStatusSummary - сводка по статусам для /incidents/stats/overview
type IncidentStatusSummary struct {
	Total               int      `json:"total"`
	Open                int      `json:"open"`
	InProgress          int      `json:"inProgress"`
	Resolved            int      `json:"resolved"`
	Closed              int      `json:"closed"`
	Critical            int      `json:"critical"`
	Emergency           int      `json:"emergency"`
	AvgResolutionTimeMs *float64 `json:"avgResolutionTime"`
}
