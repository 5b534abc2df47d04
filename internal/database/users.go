package database

import (
	"context"
	"errors"
	"serwer-zdjec/internal/models"

	"github.com/jackc/pgx/v5"
)

type UpsertUserParams struct {
	FirebaseUID string
	DisplayName *string
	FolderName  *string
}

type UpsertUserResult struct {
	UserID   int64
	Inserted bool
}

// UpsertUser jest atomowy — dwa równoległe pierwsze rejestracje tego samego
// uid nie utworzą dwóch wierszy.
func (s *PostgresStore) UpsertUser(ctx context.Context, arg UpsertUserParams) (*UpsertUserResult, error) {
	query := `
		INSERT INTO users (firebase_uid, display_name, folder_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (firebase_uid) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    folder_name = EXCLUDED.folder_name
		RETURNING id, (xmax = 0) AS inserted
	`

	var result UpsertUserResult
	err := s.pool.QueryRow(ctx, query, arg.FirebaseUID, arg.DisplayName, arg.FolderName).Scan(
		&result.UserID,
		&result.Inserted,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *PostgresStore) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	query := `
		SELECT id, firebase_uid, display_name, folder_name, created_at
		FROM users
		WHERE firebase_uid = $1
	`
	var user models.User

	err := s.pool.QueryRow(ctx, query, firebaseUID).Scan(
		&user.ID,
		&user.FirebaseUID,
		&user.DisplayName,
		&user.FolderName,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (s *PostgresStore) IsAdmin(ctx context.Context, firebaseUID string) (bool, error) {
	var isAdmin bool
	query := "SELECT EXISTS(SELECT 1 FROM admin_users WHERE firebase_uid = $1 AND is_admin)"
	err := s.pool.QueryRow(ctx, query, firebaseUID).Scan(&isAdmin)
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}
