package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pushr/marketplace/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps each session as one JSON value so a Save is a single
// atomic SET; readers never see a half-written snapshot. Saves are checked
// against the stored version under WATCH, so replicas sharing the store
// cannot overwrite each other's transitions.
// Key format: session:<id>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps client. Idle sessions expire after ttl (default 24h).
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(raw)
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	raw, err := encodeSession(sess)
	if err != nil {
		return err
	}
	key := sessionKey(sess.ID)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			stored, err := decodeSession(cur)
			if err != nil {
				return err
			}
			if err := checkVersion(stored.Version, sess.Version); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		err = domain.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// checkVersion accepts a save only when it is newer than the stored snapshot.
func checkVersion(stored, next int64) error {
	if next <= stored {
		return domain.ErrVersionConflict
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func encodeSession(sess domain.Session) ([]byte, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

func decodeSession(raw []byte) (domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if sess.Overlays == nil {
		sess.Overlays = domain.Overlays{}
	}
	return sess, nil
}
