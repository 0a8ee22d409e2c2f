package repository

import (
	"fmt"
	"time"

	"github.com/shenikar/pilgrim_path/internal/models"
)

// responseTimeMs - время первой реакции в миллисекундах. Для инцидентов без
// first_response_at выражение даёт NULL, и AVG такие строки пропускает.
const responseTimeMs = `EXTRACT(EPOCH FROM (first_response_at - reported_at)) * 1000`

// bucketFormats - формат корзины временного ряда по времени создания (UTC)
var bucketFormats = map[models.Granularity]string{
	models.GranularityHour: `to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:00')`,
	models.GranularityDay:  `to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')`,
	models.GranularityWeek: `to_char(created_at AT TIME ZONE 'UTC', 'IYYY-"W"IW')`,
}

func dateRangeConditions(dr models.DateRange) *conditions {
	c := &conditions{}
	if dr.Start != nil {
		c.where("created_at >= " + c.arg(*dr.Start))
	}
	if dr.End != nil {
		c.where("created_at <= " + c.arg(*dr.End))
	}
	return c
}

func buildOverviewQuery(dr models.DateRange) (string, []any) {
	c := dateRangeConditions(dr)
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'resolved'),
			COUNT(*) FILTER (WHERE priority = 'critical'),
			COUNT(*) FILTER (WHERE is_emergency),
			COUNT(*) FILTER (WHERE ai_detected),
			AVG(` + responseTimeMs + `)::float8
		FROM incidents` + c.sql()
	return query, c.args
}

func buildCategoryStatsQuery(dr models.DateRange) (string, []any) {
	c := dateRangeConditions(dr)
	query := `
		SELECT category, COUNT(*), AVG(` + responseTimeMs + `)::float8
		FROM incidents` + c.sql() + `
		GROUP BY category
		ORDER BY COUNT(*) DESC, category`
	return query, c.args
}

// buildSectorStatsQuery исключает инциденты без сектора
func buildSectorStatsQuery(dr models.DateRange) (string, []any) {
	c := dateRangeConditions(dr)
	c.where("sector IS NOT NULL")
	c.where("sector <> ''")
	query := `
		SELECT sector, COUNT(*), COUNT(*) FILTER (WHERE priority = 'critical')
		FROM incidents` + c.sql() + `
		GROUP BY sector
		ORDER BY COUNT(*) DESC, sector`
	return query, c.args
}

func buildStatusSeriesQuery(since time.Time, g models.Granularity) (string, []any, error) {
	bucket, ok := bucketFormats[g]
	if !ok {
		return "", nil, fmt.Errorf("unsupported granularity %q", g)
	}
	c := &conditions{}
	c.where("created_at >= " + c.arg(since))
	query := `
		SELECT ` + bucket + ` AS bucket, status, COUNT(*)
		FROM incidents` + c.sql() + `
		GROUP BY bucket, status
		ORDER BY bucket, status`
	return query, c.args, nil
}

// aiComparisonQuery: доля решённых считается по всей группе, среднее - только по строкам с реакцией
const aiComparisonQuery = `
	SELECT
		ai_detected,
		COUNT(*),
		AVG(` + responseTimeMs + `)::float8,
		AVG(CASE WHEN status = 'resolved' THEN 1.0 ELSE 0.0 END)::float8
	FROM incidents
	GROUP BY ai_detected
	ORDER BY ai_detected DESC`
