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

// AdminReadRepository looks up administrator credentials. Admins live
// in a separate table from ordinary users.
type AdminReadRepository struct {
	db *sqlx.DB
}

func NewAdminReadRepository(db *sqlx.DB) *AdminReadRepository {
	return &AdminReadRepository{db: db}
}

// GetByUsername returns the admin with the given username, or nil when
// no such admin exists.
func (r *AdminReadRepository) GetByUsername(ctx context.Context, username string) (*models.AdminDB, error) {
	const query = `
		SELECT id, username, password_hash
		FROM admins
		WHERE username = $1
		LIMIT 1
	`

	var admin models.AdminDB
	err := r.db.GetContext(ctx, &admin, query, username)

	logger.Log.Infow("admin select",
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

	return &admin, nil
}

// AdminWriteRepository creates administrator accounts. It is reachable
// only from the provisioning CLI, never from a network handler.
type AdminWriteRepository struct {
	db *sqlx.DB
}

func NewAdminWriteRepository(db *sqlx.DB) *AdminWriteRepository {
	return &AdminWriteRepository{db: db}
}

// Save inserts a new admin and returns its assigned id.
func (r *AdminWriteRepository) Save(ctx context.Context, username, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query, username, passwordHash)

	logger.Log.Infow("admin insert",
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
