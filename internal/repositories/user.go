package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/models"
	"github.com/jmoiron/sqlx"
)

// UserReadRepository looks up user credentials.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the user with the given username, or nil when
// no such user exists.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash
		FROM users
		WHERE username = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Infow("user select",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository creates user accounts.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns its assigned id. The password is
// already hashed by the caller; plaintext never reaches this layer.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query, username, passwordHash)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"id", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}
