package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

// Sequencer runs fn with exclusive access to the session identified by key.
// Calls for the same key never overlap.
type Sequencer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Recorder receives routing observations (metrics).
type Recorder interface {
	Transition(event string, screen domain.Screen)
	AuthLatency(d time.Duration)
}

// maxSaveAttempts bounds retries when another writer saved the same session
// between our read and our save.
const maxSaveAttempts = 3

type nopRecorder struct{}

func (nopRecorder) Transition(string, domain.Screen) {}
func (nopRecorder) AuthLatency(time.Duration)        {}

// SessionOptions tunes session behaviour.
type SessionOptions struct {
	// InitialFloat is the pusher float balance of a new session.
	InitialFloat int
	// KeepOnboardingOnLogout stops logout from re-arming onboarding.
	KeepOnboardingOnLogout bool
	// JournalLimit caps Journal reads. Defaults to 100.
	JournalLimit int
}

// SessionService is the only writer of session state.
type SessionService struct {
	store    ports.SessionStore
	journal  ports.TransitionJournal
	seq      Sequencer
	recorder Recorder
	opts     SessionOptions
	log      zerolog.Logger
	now      func() time.Time
}

// NewSessionService wires a SessionService. recorder may be nil.
func NewSessionService(
	store ports.SessionStore,
	journal ports.TransitionJournal,
	seq Sequencer,
	recorder Recorder,
	opts SessionOptions,
	log zerolog.Logger,
) *SessionService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if opts.JournalLimit <= 0 {
		opts.JournalLimit = 100
	}
	return &SessionService{
		store:    store,
		journal:  journal,
		seq:      seq,
		recorder: recorder,
		opts:     opts,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Open creates a fresh session: not onboarded, signed out, on the login form.
func (s *SessionService) Open(ctx context.Context) (domain.Presentation, error) {
	sess := domain.NewSession(uuid.NewString(), s.opts.InitialFloat, s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return domain.Presentation{}, fmt.Errorf("open session: %w", err)
	}
	s.log.Info().Str("session_id", sess.ID).Msg("session opened")
	return domain.Present(sess), nil
}

// Present returns the resolved screen and snapshot without changing anything.
func (s *SessionService) Present(ctx context.Context, sessionID string) (domain.Presentation, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("present session: %w", err)
	}
	return domain.Present(sess), nil
}

// Logout signs the user out, applying the configured onboarding policy.
func (s *SessionService) Logout(ctx context.Context, sessionID string) (domain.Presentation, error) {
	return s.Apply(ctx, sessionID, domain.Logout{KeepOnboarding: s.opts.KeepOnboardingOnLogout})
}

// Apply runs one event through the state machine and stores the result as a
// single snapshot. Events that change nothing are not stored or journaled.
func (s *SessionService) Apply(ctx context.Context, sessionID string, event domain.Event) (domain.Presentation, error) {
	if event == nil {
		return domain.Presentation{}, domain.ErrUnknownEvent
	}

	var out domain.Presentation
	err := s.seq.Do(ctx, sessionID, func(ctx context.Context) error {
		var err error
		for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
			out, err = s.applyOnce(ctx, sessionID, event)
			if !errors.Is(err, domain.ErrVersionConflict) {
				return err
			}
			s.log.Debug().Str("session_id", sessionID).Int("attempt", attempt).Msg("session changed concurrently, retrying")
		}
		return err
	})
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("apply %s: %w", event.Kind(), err)
	}
	return out, nil
}

// applyOnce is one read-transition-save cycle. It must run inside the
// session's sequencer.
func (s *SessionService) applyOnce(ctx context.Context, sessionID string, event domain.Event) (domain.Presentation, error) {
	// 1. Load the current snapshot.
	cur, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Presentation{}, err
	}

	// 2. Derive the next state.
	next, changed := domain.Transition(cur, event)
	if !changed {
		s.log.Debug().Str("session_id", sessionID).Str("event", event.Kind()).Msg("event changed nothing")
		return domain.Present(cur), nil
	}
	next.Version = cur.Version + 1
	next.UpdatedAt = s.now()

	// 3. Replace the snapshot as a whole.
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Presentation{}, fmt.Errorf("save session: %w", err)
	}

	from, to := domain.ResolveView(cur), domain.ResolveView(next)
	s.recorder.Transition(event.Kind(), to)

	// 4. Journal (non-fatal on failure).
	rec := domain.TransitionRecord{
		SessionID:  sessionID,
		Version:    next.Version,
		Event:      event.Kind(),
		FromScreen: from,
		ToScreen:   to,
		Role:       next.ActiveRole(),
		Tab:        next.ActiveTab,
		At:         next.UpdatedAt,
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to journal transition")
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("event", event.Kind()).
		Str("from", string(from)).
		Str("to", string(to)).
		Int64("version", next.Version).
		Msg("session transition")

	return domain.Present(next), nil
}

// Journal returns the most recent transitions of a session.
func (s *SessionService) Journal(ctx context.Context, sessionID string, limit int) ([]domain.TransitionRecord, error) {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	if limit <= 0 || limit > s.opts.JournalLimit {
		limit = s.opts.JournalLimit
	}
	recs, err := s.journal.List(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return recs, nil
}
