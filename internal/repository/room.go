package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

const roomColumns = `
	r.id, r.title, r.description,
	r.owner_id, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.phone, ''),
	ST_X(r.location::geometry), ST_Y(r.location::geometry), r.address, COALESCE(r.sector, ''),
	r.type, r.capacity_adults, r.capacity_children, r.price_per_night, r.currency,
	r.amenities, r.images, r.availability, r.rules, r.contact_info,
	r.rating_average, r.rating_count, r.is_active, r.verification_status,
	r.created_at, r.updated_at`

const roomFrom = `
	FROM rooms r
	LEFT JOIN users u ON u.id = r.owner_id`

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) service.RoomRepository {
	return &RoomRepository{db: db}
}

// List возвращает страницу подтверждённых активных комнат, лучшие по рейтингу первыми
func (r *RoomRepository) List(ctx context.Context, filter models.RoomFilter) ([]*models.Room, int, error) {
	const op = "repository.room.List"

	countQuery, countArgs := buildRoomCountQuery(filter)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	query, args := buildRoomListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	rooms := make([]*models.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, e.WrapError(ctx, op, fmt.Errorf("scan: %w", err))
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return rooms, total, nil
}

// GetByID возвращает комнату с владельцем и отзывами независимо от статуса проверки
func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	const op = "repository.room.GetByID"
	query := `SELECT ` + roomColumns + roomFrom + ` WHERE r.id = $1;`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("room %s: %w", id, err))
	}

	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.phone, ''),
			v.rating, v.comment, v.created_at
		FROM room_reviews v
		LEFT JOIN users u ON u.id = v.user_id
		WHERE v.room_id = $1
		ORDER BY v.created_at, v.id;`, id)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.User.ID, &rv.User.Name, &rv.User.Email, &rv.User.Phone,
			&rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, e.WrapError(ctx, op, fmt.Errorf("scan review: %w", err))
		}
		room.Reviews = append(room.Reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	const op = "repository.room.Create"
	query := `
		INSERT INTO rooms (
			title, description, owner_id, location, address, sector, type,
			capacity_adults, capacity_children, price_per_night, currency,
			amenities, images, availability, rules, contact_info,
			is_active, verification_status
		)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, rating_average, rating_count, created_at, updated_at;
	`
	amenities, images, rules := room.Amenities, room.Images, room.Rules
	if amenities == nil {
		amenities = []string{}
	}
	if images == nil {
		images = []models.RoomImage{}
	}
	if rules == nil {
		rules = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		room.Title,
		room.Description,
		room.Owner.ID,
		room.Location.Coordinates.Lng(),
		room.Location.Coordinates.Lat(),
		room.Location.Address,
		nullIfEmpty(room.Location.Sector),
		room.Type,
		room.Capacity.Adults,
		room.Capacity.Children,
		room.Price.PerNight,
		room.Price.Currency,
		amenities,
		images,
		room.Availability,
		rules,
		room.ContactInfo,
		room.IsActive,
		room.VerificationStatus,
	).Scan(&room.ID, &room.Rating.Average, &room.Rating.Count, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	room.Amenities, room.Images, room.Rules = amenities, images, rules
	if room.Reviews == nil {
		room.Reviews = []models.Review{}
	}
	return nil
}

// AddReview в одной транзакции вставляет отзыв и пересчитывает рейтинг по всем отзывам комнаты.
// Строка комнаты блокируется, поэтому параллельные отзывы не теряют обновление рейтинга.
func (r *RoomRepository) AddReview(ctx context.Context, roomID uuid.UUID, review *models.Review) (*models.Rating, error) {
	const op = "repository.room.AddReview"

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE;`, roomID).Scan(&locked); err != nil {
		return nil, e.WrapError(ctx, op, fmt.Errorf("room %s: %w", roomID, err))
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO room_reviews (room_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		roomID, review.User.ID, review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	rating := &models.Rating{}
	err = tx.QueryRow(ctx, `
		UPDATE rooms SET
			rating_average = s.avg,
			rating_count = s.cnt,
			updated_at = NOW()
		FROM (
			SELECT AVG(rating)::float8 AS avg, COUNT(*)::int AS cnt
			FROM room_reviews WHERE room_id = $1
		) s
		WHERE rooms.id = $1
		RETURNING rooms.rating_average, rooms.rating_count;`, roomID,
	).Scan(&rating.Average, &rating.Count)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return rating, nil
}

func (r *RoomRepository) SetVerification(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error {
	const op = "repository.room.SetVerification"
	tag, err := r.db.Exec(ctx,
		`UPDATE rooms SET verification_status = $1, updated_at = NOW() WHERE id = $2;`, status, id)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: room %s: %w", op, id, e.ErrNotFound)
	}
	return nil
}

func scanRoom(row rowScanner) (*models.Room, error) {
	room := &models.Room{Location: models.RoomLocation{Type: "Point"}, Reviews: []models.Review{}}
	var lng, lat float64
	err := row.Scan(
		&room.ID, &room.Title, &room.Description,
		&room.Owner.ID, &room.Owner.Name, &room.Owner.Email, &room.Owner.Phone,
		&lng, &lat, &room.Location.Address, &room.Location.Sector,
		&room.Type, &room.Capacity.Adults, &room.Capacity.Children, &room.Price.PerNight, &room.Price.Currency,
		&room.Amenities, &room.Images, &room.Availability, &room.Rules, &room.ContactInfo,
		&room.Rating.Average, &room.Rating.Count, &room.IsActive, &room.VerificationStatus,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	room.Location.Coordinates = models.Point{lng, lat}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	if room.Images == nil {
		room.Images = []models.RoomImage{}
	}
	if room.Rules == nil {
		room.Rules = []string{}
	}
	return room, nil
}

// roomFilterConditions всегда ограничивает выборку подтверждёнными активными комнатами
func roomFilterConditions(filter models.RoomFilter) *conditions {
	c := &conditions{}
	c.where("r.is_active")
	c.where("r.verification_status = 'verified'")
	if filter.Sector != "" {
		c.where("r.sector = " + c.arg(filter.Sector))
	}
	if filter.Type != "" {
		c.where("r.type = " + c.arg(filter.Type))
	}
	if filter.MinPrice != nil {
		c.where("r.price_per_night >= " + c.arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		c.where("r.price_per_night <= " + c.arg(*filter.MaxPrice))
	}
	if len(filter.Amenities) > 0 {
		c.where("r.amenities && " + c.arg(filter.Amenities))
	}
	if filter.Near != nil && filter.RadiusMeters != nil {
		lng, lat := c.arg(filter.Near.Lng()), c.arg(filter.Near.Lat())
		c.where(fmt.Sprintf("ST_DWithin(r.location, ST_SetSRID(ST_MakePoint(%s, %s), 4326)::geography, %s)",
			lng, lat, c.arg(*filter.RadiusMeters)))
	}
	return c
}

func buildRoomCountQuery(filter models.RoomFilter) (string, []any) {
	c := roomFilterConditions(filter)
	return "SELECT COUNT(*) FROM rooms r" + c.sql(), c.args
}

func buildRoomListQuery(filter models.RoomFilter) (string, []any) {
	c := roomFilterConditions(filter)
	query := "SELECT " + roomColumns + roomFrom + c.sql() +
		" ORDER BY r.rating_average DESC, r.created_at DESC, r.id" + c.paginate(filter.Page, filter.Limit)
	return query, c.args
}
