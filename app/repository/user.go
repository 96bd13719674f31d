package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fedorhub/ms-go-notifications/app/entity"
)

type UserRepository struct {
	db *sql.DB
}

// NewUserRepository constructs a repository over the synced users table.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID looks up a user by identifier. A missing row is a valid outcome
// and returns (nil, nil).
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
		SELECT id, username, email, role
		FROM users
		WHERE id = ?
	`
	var u entity.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert creates the user row or overwrites its fields if it already exists.
// Repeating the same input converges to the same stored state.
func (r *UserRepository) Upsert(ctx context.Context, u entity.User) error {
	const query = `
		INSERT INTO users (id, username, email, role)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE username = VALUES(username), email = VALUES(email), role = VALUES(role)
	`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.Role)
	return err
}
