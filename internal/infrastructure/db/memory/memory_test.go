package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushr/marketplace/internal/core/domain"
)

func TestSessionStore_CopiesOnReadAndWrite(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	s := domain.NewSession("s-1", 0, time.Now())
	s.CurrentUser = domain.NewMarketplaceUser(domain.Identity{ID: "u"}, domain.RoleCustomer)
	require.NoError(t, store.Save(ctx, s))

	s.CurrentUser.AvailableRoles[0] = domain.RoleAdmin

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, got.CurrentUser.AvailableRoles[0])

	got.CurrentUser.Role = domain.RolePusher
	again, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, again.CurrentUser.Role)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_NotFoundAndDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, domain.NewSession("s-1", 0, time.Now())))
	require.NoError(t, store.Delete(ctx, "s-1"))
	_, err = store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestJournal_KeepsNewestWithinCapacity(t *testing.T) {
	j := NewJournal(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, j.Record(ctx, domain.TransitionRecord{SessionID: "a", Version: int64(i)}))
	}
	require.NoError(t, j.Record(ctx, domain.TransitionRecord{SessionID: "b", Version: 1}))

	recs, err := j.List(ctx, "a", 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(3), recs[0].Version)
	assert.Equal(t, int64(5), recs[2].Version)

	recs, err = j.List(ctx, "a", 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, []int64{recs[0].Version, recs[1].Version})

	recs, err = j.List(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestPendingGuard(t *testing.T) {
	g := NewPendingGuard()
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = g.Acquire(ctx, "s-1")
	assert.False(t, ok, "second acquire while pending")

	ok, _ = g.Acquire(ctx, "s-2")
	assert.True(t, ok, "other sessions are independent")

	require.NoError(t, g.Release(ctx, "s-1"))
	ok, _ = g.Acquire(ctx, "s-1")
	assert.True(t, ok)
}
