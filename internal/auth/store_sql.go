package auth

import (
	"context"
	"database/sql"
)

type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{DB: db} }

const userColumns = `id, email, username, password_hash,
	COALESCE(token_version,1) AS token_version, created_at, updated_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.TokenVersion, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *SQLStore) CreateUser(ctx context.Context, email, username, passwordHash string) (User, error) {
	const q = `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	return scanUser(s.DB.QueryRowContext(ctx, q, email, username, passwordHash))
}

func (s *SQLStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return scanUser(s.DB.QueryRowContext(ctx, q, email))
}

func (s *SQLStore) FindUserByID(ctx context.Context, id string) (User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(s.DB.QueryRowContext(ctx, q, id))
}

func (s *SQLStore) UpdateUserPasswordHash(ctx context.Context, userID, newHash string) error {
	const q = `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, q, newHash, userID)
	return err
}

// BumpTokenVersion invalidates every outstanding access token for the user.
func (s *SQLStore) BumpTokenVersion(ctx context.Context, userID string) (int, error) {
	const q = `
		UPDATE users
		   SET token_version = COALESCE(token_version,1) + 1, updated_at = now()
		 WHERE id = $1
		RETURNING token_version`
	var tv int
	err := s.DB.QueryRowContext(ctx, q, userID).Scan(&tv)
	return tv, err
}

func (s *SQLStore) DeleteUser(ctx context.Context, userID string) (User, error) {
	const q = `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns
	return scanUser(s.DB.QueryRowContext(ctx, q, userID))
}
