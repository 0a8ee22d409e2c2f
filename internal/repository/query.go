package repository

import (
	"fmt"
	"strings"
)

// conditions накапливает условия WHERE и позиционные аргументы для pgx
type conditions struct {
	clauses []string
	args    []any
}

// arg добавляет аргумент и возвращает его плейсхолдер
func (c *conditions) arg(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *conditions) where(clause string) {
	c.clauses = append(c.clauses, clause)
}

func (c *conditions) sql() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// paginate дописывает LIMIT/OFFSET к запросу
func (c *conditions) paginate(page, limit int) string {
	return fmt.Sprintf(" LIMIT %s OFFSET %s", c.arg(limit), c.arg((page-1)*limit))
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
