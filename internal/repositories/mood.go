package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/middlewares"
	"github.com/dkote/mood-journal/internal/models"
	"github.com/jmoiron/sqlx"
)

// MoodWriteRepository persists and removes mood entries.
type MoodWriteRepository struct {
	db *sqlx.DB
}

func NewMoodWriteRepository(db *sqlx.DB) *MoodWriteRepository {
	return &MoodWriteRepository{db: db}
}

// execer returns the request transaction when one is present in the
// context, falling back to the pool otherwise.
func (r *MoodWriteRepository) execer(ctx context.Context) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Save inserts a mood entry, assigning the next id and the current UTC
// instant, and returns the new id. The emotions map is serialized to
// JSON text for storage.
func (r *MoodWriteRepository) Save(
	ctx context.Context,
	dominant string,
	intensity float64,
	emotions map[string]float64,
	username *string,
	note *string,
) (int64, error) {
	const query = `
		INSERT INTO mood_history (timestamp, dominant, intensity, emotions, note, username)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	emotionsJSON, err := json.Marshal(emotions)
	if err != nil {
		return 0, err
	}

	ts := time.Now().UTC()

	var id int64
	err = sqlx.GetContext(ctx, r.execer(ctx), &id, query,
		ts, dominant, intensity, string(emotionsJSON), note, username)

	logger.Log.Infow("mood insert",
		"query", strings.Join(strings.Fields(query), " "),
		"dominant", dominant,
		"intensity", intensity,
		"id", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// Delete removes the entry with the given id. Returns whether a row was
// actually removed; a missing id is not an error.
func (r *MoodWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM mood_history WHERE id = $1`

	res, err := r.execer(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("mood delete",
		"query", query,
		"id", id,
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// MoodReadRepository serves mood history queries.
type MoodReadRepository struct {
	db *sqlx.DB
}

func NewMoodReadRepository(db *sqlx.DB) *MoodReadRepository {
	return &MoodReadRepository{db: db}
}

// List returns at most limit entries ordered by descending id. Non-admin
// callers only see rows whose username equals theirs; anonymous rows
// (NULL username) never match a non-NULL filter. The optional date
// filter matches the UTC calendar date of the timestamp exactly.
func (r *MoodReadRepository) List(
	ctx context.Context,
	limit int,
	username *string,
	isAdmin bool,
	date *string,
) ([]models.MoodEntry, error) {
	const query = `
		SELECT id, timestamp, dominant, intensity, emotions, note, username
		FROM mood_history
		WHERE ($1::BOOLEAN OR username = $2)
		  AND ($3::VARCHAR IS NULL OR to_char(timestamp, 'YYYY-MM-DD') = $3)
		ORDER BY id DESC
		LIMIT $4
	`

	var rows []models.MoodEntryDB
	err := r.db.SelectContext(ctx, &rows, query, isAdmin, username, date, limit)

	logger.Log.Infow("mood select",
		"query", strings.Join(strings.Fields(query), " "),
		"limit", limit,
		"is_admin", isAdmin,
		"rows", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	entries := make([]models.MoodEntry, 0, len(rows))
	for _, row := range rows {
		var emotions map[string]float64
		if err := json.Unmarshal([]byte(row.Emotions), &emotions); err != nil {
			// A corrupt row degrades to an empty map instead of
			// failing the whole query.
			logger.Log.Warnw("corrupt emotions payload", "id", row.ID, "error", err)
			emotions = map[string]float64{}
		}
		if emotions == nil {
			emotions = map[string]float64{}
		}

		entries = append(entries, models.MoodEntry{
			ID:        row.ID,
			Timestamp: row.Timestamp.UTC(),
			Dominant:  row.Dominant,
			Intensity: row.Intensity,
			Emotions:  emotions,
			Note:      row.Note,
			Username:  row.Username,
		})
	}

	return entries, nil
}
