package main

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pushr/marketplace/internal/api/metrics"
	"github.com/pushr/marketplace/internal/core/ports"
	"github.com/pushr/marketplace/internal/core/service"
	"github.com/pushr/marketplace/internal/infrastructure/config"
	"github.com/pushr/marketplace/internal/infrastructure/db/memory"
	mongodb "github.com/pushr/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/pushr/marketplace/internal/infrastructure/db/redis"
	"github.com/pushr/marketplace/internal/infrastructure/queue"
)

// core is the wired session router, independent of its presentation.
type core struct {
	sessions *service.SessionService
	auth     *service.AuthService
	roles    *service.RoleService

	mongoDB *mongo.Database
	redis   *goredis.Client
	closers []func() error
}

// buildCore connects the configured backends and wires the services. The
// serializer workers outlive ctx and stop in Close, after callers have
// drained their in-flight requests.
func buildCore(ctx context.Context, cfg *config.Config, haptics ports.Haptics, log zerolog.Logger) (*core, error) {
	c := &core{}

	// 1. Session store and pending guard
	var (
		store ports.SessionStore
		guard ports.PendingGuard
	)
	switch cfg.Session.StoreBackend {
	case config.BackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		c.redis = rdb
		c.closers = append(c.closers, rdb.Close)
		store = redisdb.NewSessionStore(rdb, cfg.Session.TTL)
		guard = redisdb.NewPendingGuard(rdb, cfg.Session.PendingTTL())
	default:
		store = memory.NewSessionStore()
		guard = memory.NewPendingGuard()
	}
	log.Info().Str("backend", cfg.Session.StoreBackend).Msg("session store ready")

	// 2. Transition journal
	var journal ports.TransitionJournal
	switch cfg.Session.JournalBackend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.mongoDB = db
		c.closers = append(c.closers, func() error { return mongodb.Disconnect(client) })

		repo := mongodb.NewJournalRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure journal indexes")
		}
		journal = repo
	default:
		journal = memory.NewJournal(cfg.Session.JournalCapacity)
	}
	log.Info().Str("backend", cfg.Session.JournalBackend).Msg("transition journal ready")

	// 3. Per-session serializer
	seq := queue.NewSerializer(cfg.Session.Workers, log)
	workCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	seq.Start(workCtx)
	c.closers = append(c.closers, func() error {
		stopWorkers()
		<-seq.Stopped()
		return nil
	})

	// 4. Services
	recorder := metrics.Recorder{}
	c.sessions = service.NewSessionService(store, journal, seq, recorder, service.SessionOptions{
		InitialFloat:           cfg.Session.InitialFloat,
		KeepOnboardingOnLogout: cfg.Session.KeepOnboardingOnLogout,
	}, log)
	c.auth = service.NewAuthService(c.sessions, guard, service.AcceptAllVerifier{}, recorder, service.AuthOptions{
		Latency:   cfg.Session.AuthLatency,
		FloatJobs: cfg.Session.InitialFloat,
	}, log)
	c.roles = service.NewRoleService(c.sessions, haptics, log)

	return c, nil
}

// Close stops the serializer workers, then releases backend connections.
func (c *core) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close backends: %w", errors.Join(errs...))
	}
	return nil
}
