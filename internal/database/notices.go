package database

import (
	"context"
	"serwer-zdjec/internal/models"
)

type CreateNoticeParams struct {
	AuthorUID string
	Title     string
	Body      *string
}

func (s *PostgresStore) CreateNotice(ctx context.Context, arg CreateNoticeParams) (*models.Notice, error) {
	query := `
		INSERT INTO notices (author_uid, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, author_uid, title, body, created_at
	`

	var notice models.Notice
	err := s.pool.QueryRow(ctx, query, arg.AuthorUID, arg.Title, arg.Body).Scan(
		&notice.ID,
		&notice.AuthorUID,
		&notice.Title,
		&notice.Body,
		&notice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &notice, nil
}
