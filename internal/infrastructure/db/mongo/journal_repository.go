package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pushr/marketplace/internal/core/domain"
)

const collectionTransitions = "session_transitions"

// JournalRepository implements ports.TransitionJournal on MongoDB.
type JournalRepository struct {
	col *mongo.Collection
}

// NewJournalRepository creates a JournalRepository.
func NewJournalRepository(db *mongo.Database) *JournalRepository {
	return &JournalRepository{col: db.Collection(collectionTransitions)}
}

// Record appends one transition to the session_transitions collection.
func (r *JournalRepository) Record(ctx context.Context, rec domain.TransitionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := transitionDoc(rec)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert transition: %w", err)
	}
	return nil
}

// List returns the newest limit transitions of a session, oldest first.
func (r *JournalRepository) List(ctx context.Context, sessionID string, limit int) ([]domain.TransitionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transitions: %w", err)
	}
	defer cur.Close(ctx)

	var recs []domain.TransitionRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode transitions: %w", err)
	}

	// newest-first from the query, callers expect oldest-first
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	return recs, nil
}

// EnsureIndexes creates the indexes List relies on.
func (r *JournalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "version", Value: -1}}},
		{Keys: bson.D{{Key: "at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func transitionDoc(rec domain.TransitionRecord) bson.M {
	doc := bson.M{
		"session_id":  rec.SessionID,
		"version":     rec.Version,
		"event":       rec.Event,
		"from_screen": string(rec.FromScreen),
		"to_screen":   string(rec.ToScreen),
		"tab":         string(rec.Tab),
		"at":          rec.At.UTC(),
	}
	if rec.Role != "" {
		doc["role"] = string(rec.Role)
	}
	return doc
}
