package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/models"
	"github.com/segmentio/kafka-go"
)

// MoodWriter defines write operations for mood entries.
type MoodWriter interface {
	Save(ctx context.Context, dominant string, intensity float64, emotions map[string]float64, username, note *string) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// MoodReader defines read operations for mood entries.
type MoodReader interface {
	List(ctx context.Context, limit int, username *string, isAdmin bool, date *string) ([]models.MoodEntry, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// JournalService handles mood entry persistence, history queries and
// event publishing.
type JournalService struct {
	writer      MoodWriter
	reader      MoodReader
	kafkaWriter KafkaWriter
}

// NewJournalService creates a new JournalService. A nil kafkaWriter
// disables event publishing.
func NewJournalService(writer MoodWriter, reader MoodReader, kafkaWriter KafkaWriter) *JournalService {
	return &JournalService{
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
	}
}

// moodEvent is the payload published for each saved entry.
type moodEvent struct {
	EntryID   int64   `json:"entry_id"`
	Dominant  string  `json:"dominant"`
	Intensity float64 `json:"intensity"`
	Username  *string `json:"username"`
}

// publishEntry publishes a saved entry to Kafka. Publishing failures
// are logged, never surfaced: the entry is already durable.
func (svc *JournalService) publishEntry(ctx context.Context, event moodEvent) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "entry_id", event.EntryID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal mood event", "entry_id", event.EntryID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.EntryID, 10)),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish mood event", "entry_id", event.EntryID, "error", err)
	} else {
		logger.Log.Infow("Mood event published", "entry_id", event.EntryID, "dominant", event.Dominant)
	}
}

// SaveEntry persists a mood entry and returns its assigned id.
func (svc *JournalService) SaveEntry(
	ctx context.Context,
	dominant string,
	intensity float64,
	emotions map[string]float64,
	username *string,
	note *string,
) (int64, error) {
	id, err := svc.writer.Save(ctx, dominant, intensity, emotions, username, note)
	if err != nil {
		logger.Log.Errorw("failed to save mood entry", "dominant", dominant, "error", err)
		return 0, err
	}

	svc.publishEntry(ctx, moodEvent{
		EntryID:   id,
		Dominant:  dominant,
		Intensity: intensity,
		Username:  username,
	})

	return id, nil
}

// GetHistory returns at most limit entries, most recent id first.
// Non-admin callers are restricted to their own username; admins see
// everything, anonymous entries included.
func (svc *JournalService) GetHistory(
	ctx context.Context,
	limit int,
	username *string,
	isAdmin bool,
	date *string,
) ([]models.MoodEntry, error) {
	entries, err := svc.reader.List(ctx, limit, username, isAdmin, date)
	if err != nil {
		logger.Log.Errorw("failed to list mood entries", "error", err)
		return nil, err
	}
	return entries, nil
}

// DeleteEntry removes the entry with the given id and reports whether a
// row was actually removed.
func (svc *JournalService) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	deleted, err := svc.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete mood entry", "id", id, "error", err)
		return false, err
	}
	return deleted, nil
}
