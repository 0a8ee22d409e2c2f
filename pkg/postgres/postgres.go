package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "pilgrimpath"

// NewPostgresDB создает пул соединений PostgreSQL.
// Сессии работают в UTC: на этом построены корзины временных рядов аналитики.
func NewPostgresDB(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	if maxConns > 0 {
		cfgPool.MaxConns = maxConns
	}
	if minConns > 0 && minConns <= cfgPool.MaxConns {
		cfgPool.MinConns = minConns
	}
	cfgPool.ConnConfig.RuntimeParams["timezone"] = "UTC"
	cfgPool.ConnConfig.RuntimeParams["application_name"] = applicationName

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	return dbpool, nil
}
