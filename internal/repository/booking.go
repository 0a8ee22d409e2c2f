package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

const bookingColumns = `
	id, user_id, type, transport_details, accommodation_details, status,
	payment, special_requests, contact_info, created_at, updated_at`

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) service.BookingRepository {
	return &BookingRepository{db: db}
}

// List возвращает брони одного пользователя, новые первыми
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, int, error) {
	const op = "repository.booking.List"

	countQuery, countArgs := buildBookingCountQuery(filter)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	query, args := buildBookingListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	bookings := make([]*models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return bookings, total, nil
}

// GetByID с owner == nil ищет среди всех броней
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Booking, error) {
	const op = "repository.booking.GetByID"
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2);`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("booking %s: %w", id, err))
	}
	return b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	const op = "repository.booking.Create"
	query := `
		INSERT INTO bookings (
			user_id, type, transport_details, accommodation_details, status,
			payment, special_requests, contact_info
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		b.UserID,
		b.Type,
		b.TransportDetails,
		b.AccommodationDetails,
		b.Status,
		b.Payment,
		b.SpecialRequests,
		b.ContactInfo,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// UpdateStatus меняет статус только у брони, видимой вызывающему
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, owner *uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	const op = "repository.booking.UpdateStatus"
	query := `
		UPDATE bookings SET status = $3, updated_at = NOW()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING ` + bookingColumns + `;`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id, owner, status))
	if err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("booking %s: %w", id, err))
	}
	return b, nil
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.Type, &b.TransportDetails, &b.AccommodationDetails, &b.Status,
		&b.Payment, &b.SpecialRequests, &b.ContactInfo, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func bookingFilterConditions(filter models.BookingFilter) *conditions {
	c := &conditions{}
	c.where("user_id = " + c.arg(filter.UserID))
	if filter.Type != "" {
		c.where("type = " + c.arg(filter.Type))
	}
	if filter.Status != "" {
		c.where("status = " + c.arg(filter.Status))
	}
	return c
}

func buildBookingCountQuery(filter models.BookingFilter) (string, []any) {
	c := bookingFilterConditions(filter)
	return "SELECT COUNT(*) FROM bookings" + c.sql(), c.args
}

func buildBookingListQuery(filter models.BookingFilter) (string, []any) {
	c := bookingFilterConditions(filter)
	query := "SELECT " + bookingColumns + " FROM bookings" + c.sql() +
		" ORDER BY created_at DESC, id" + c.paginate(filter.Page, filter.Limit)
	return query, c.args
}
