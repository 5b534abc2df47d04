package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"serwer-zdjec/internal/models"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateFilename = errors.New("a photo with the same filename already exists for this user")

type CreatePhotoParams struct {
	UserID      string
	Filename    string
	Latitude    *float64
	Longitude   *float64
	TakenAt     time.Time
	Title       *string
	Category    *string
	Description *string
}

func (s *PostgresStore) CreatePhoto(ctx context.Context, arg CreatePhotoParams) (*models.Photo, error) {
	query := `
		INSERT INTO photos (user_id, filename, latitude, longitude, taken_at, title, category, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, filename, latitude, longitude, taken_at, title, category, description, uploaded_at
	`

	row := s.pool.QueryRow(ctx, query,
		arg.UserID,
		arg.Filename,
		arg.Latitude,
		arg.Longitude,
		arg.TakenAt,
		arg.Title,
		arg.Category,
		arg.Description,
	)

	var photo models.Photo
	err := row.Scan(
		&photo.ID,
		&photo.UserID,
		&photo.Filename,
		&photo.Latitude,
		&photo.Longitude,
		&photo.TakenAt,
		&photo.Title,
		&photo.Category,
		&photo.Description,
		&photo.UploadedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateFilename
		}
		return nil, err
	}

	return &photo, nil
}

type PhotoFilter struct {
	Lat      *float64
	Lng      *float64
	RadiusKm float64
	UserID   *string
	Limit    int
}

// ListPhotos filtruje po prostokącie przybliżającym okrąg o promieniu RadiusKm.
// 1 stopień szerokości ~ 111 km; długości ~ 111 km * cos(lat). To świadome
// uproszczenie, nie obliczenie geodezyjne.
func (s *PostgresStore) ListPhotos(ctx context.Context, filter PhotoFilter) ([]models.Photo, error) {
	radius := filter.RadiusKm
	if radius <= 0 {
		radius = 10
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, user_id, filename, latitude, longitude, taken_at, title, category, description, uploaded_at
		FROM photos
		WHERE 1=1`
	var args []interface{}

	// Wskaźniki odróżniają "brak filtra" od prawidłowej współrzędnej 0.0.
	if filter.Lat != nil && filter.Lng != nil {
		latDiff := radius / 111.0
		lngDiff := radius / (111.0 * math.Cos(*filter.Lat*math.Pi/180))

		query += fmt.Sprintf(" AND latitude BETWEEN $%d AND $%d", len(args)+1, len(args)+2)
		args = append(args, *filter.Lat-latDiff, *filter.Lat+latDiff)

		query += fmt.Sprintf(" AND longitude BETWEEN $%d AND $%d", len(args)+1, len(args)+2)
		args = append(args, *filter.Lng-lngDiff, *filter.Lng+lngDiff)
	}

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", len(args)+1)
		args = append(args, *filter.UserID)
	}

	query += fmt.Sprintf(" ORDER BY taken_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.Filename,
			&photo.Latitude,
			&photo.Longitude,
			&photo.TakenAt,
			&photo.Title,
			&photo.Category,
			&photo.Description,
			&photo.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if photos == nil {
		return []models.Photo{}, nil
	}

	return photos, nil
}
