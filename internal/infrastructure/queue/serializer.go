package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pushr/marketplace/internal/api/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrSerializerStopped is returned for jobs that no worker is left to run.
var ErrSerializerStopped = errors.New("session serializer stopped")

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Serializer routes session mutations to a fixed set of workers using
// consistent hashing on the session id, so mutations of one session run one
// at a time and in submission order.
type Serializer struct {
	workers []chan job
	log     zerolog.Logger

	wg      sync.WaitGroup
	stopped chan struct{}
}

// NewSerializer creates a Serializer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// a job that is already running finishes first. Do blocks until Start has
// been called. Start must be called at most once.
func (s *Serializer) Start(ctx context.Context) {
	s.wg.Add(len(s.workers))
	for i, ch := range s.workers {
		go func() {
			defer s.wg.Done()
			s.runWorker(ctx, i, ch)
		}()
	}
	go func() {
		s.wg.Wait()
		close(s.stopped)
	}()
}

// Stopped is closed once every worker has exited.
func (s *Serializer) Stopped() <-chan struct{} {
	return s.stopped
}

// Do runs fn on the worker owning key and waits for its result. If ctx ends
// first Do returns ctx.Err(); an already queued fn still runs to completion
// unless the workers stop before reaching it.
// Once the workers are gone Do returns ErrSerializerStopped.
func (s *Serializer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case s.workers[s.shardIndex(key)] <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrSerializerStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return finished(j, ctx.Err())
	case <-s.stopped:
		return finished(j, ErrSerializerStopped)
	}
}

// finished prefers the result of a job that has already run over fallback.
func finished(j job, fallback error) error {
	select {
	case err := <-j.done:
		return err
	default:
		return fallback
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	depth := metrics.SerializerQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			err := j.fn(context.WithoutCancel(j.ctx))
			if err != nil {
				s.log.Debug().Err(err).Int("worker_id", id).Msg("session job failed")
			}
			j.done <- err
		}
	}
}
