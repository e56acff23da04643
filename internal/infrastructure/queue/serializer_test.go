package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func startSerializer(t *testing.T, workers int) *Serializer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s := NewSerializer(workers, zerolog.Nop())
	s.Start(ctx)
	return s
}

func TestSerializer_SameKeyNeverOverlaps(t *testing.T) {
	s := startSerializer(t, 4)

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Do(context.Background(), "session-a", func(context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestSerializer_ReturnsJobError(t *testing.T) {
	s := startSerializer(t, 2)
	boom := errors.New("boom")

	err := s.Do(context.Background(), "k", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSerializer_JobContextOutlivesCaller(t *testing.T) {
	s := startSerializer(t, 1)
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	ran := make(chan error, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Do(ctx, "k", func(jobCtx context.Context) error {
			close(started)
			<-release
			ran <- jobCtx.Err()
			return nil
		})
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	assert.NoError(t, <-ran, "the job keeps running after the caller cancels")
}

func TestSerializer_CompletedJobWinsOverFallback(t *testing.T) {
	fallback := errors.New("fallback")

	done := job{done: make(chan error, 1)}
	done.done <- nil
	assert.NoError(t, finished(done, fallback))

	pending := job{done: make(chan error, 1)}
	assert.ErrorIs(t, finished(pending, fallback), fallback)
}

func TestSerializer_RunningJobFinishesAcrossStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSerializer(1, zerolog.Nop())
	s.Start(ctx)

	started := make(chan struct{})
	release := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Do(context.Background(), "sess", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	cancel()
	close(release)

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after the serializer stopped")
	}
	<-s.Stopped()
}

func TestSerializer_DoAfterStopReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSerializer(2, zerolog.Nop())
	s.Start(ctx)
	cancel()
	<-s.Stopped()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Do(context.WithoutCancel(context.Background()), "sess", func(context.Context) error { return nil })
	}()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSerializerStopped)
	case <-time.After(2 * time.Second):
		t.Fatal("Do blocked after the serializer stopped")
	}
}

func TestSerializer_CancelledBeforeEnqueue(t *testing.T) {
	s := NewSerializer(1, zerolog.Nop()) // not started: the queue never drains
	for i := 0; i < channelBuffer; i++ {
		s.workers[0] <- job{done: make(chan error, 1)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Do(ctx, "k", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSerializer_ShardIndexIsStable(t *testing.T) {
	s := NewSerializer(8, zerolog.Nop())
	for i := 0; i < 100; i++ {
		key := "session-" + strconv.Itoa(i)
		idx := s.shardIndex(key)
		assert.Equal(t, idx, s.shardIndex(key))
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
	}
}

func TestNewSerializer_DefaultWorkers(t *testing.T) {
	s := NewSerializer(0, zerolog.Nop())
	assert.Len(t, s.workers, defaultWorkers)
}
