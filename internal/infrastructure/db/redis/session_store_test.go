package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushr/marketplace/internal/core/domain"
)

func TestSessionCodec_RoundTripsRoutingState(t *testing.T) {
	s := domain.NewSession("s-1", 2, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	s.HasOnboarded = true
	s, _ = domain.Transition(s, domain.Authenticate{User: domain.NewMarketplaceUser(domain.Identity{ID: "u"}, domain.RolePusher)})
	s, _ = domain.Transition(s, domain.SetOverlay{Overlay: domain.OverlayNotifications, Visible: true})

	raw, err := encodeSession(s)
	require.NoError(t, err)
	got, err := decodeSession(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.ResolveView(s), domain.ResolveView(got))
	assert.Equal(t, s.CurrentUser.AvailableRoles, got.CurrentUser.AvailableRoles)
	assert.True(t, got.Overlays.Visible(domain.OverlayNotifications))
	assert.Equal(t, 2, got.FloatBalance)
}

func TestDecodeSession_NilOverlaysBecomeEmpty(t *testing.T) {
	raw, err := json.Marshal(map[string]any{"id": "s-1", "auth_view": "login"})
	require.NoError(t, err)

	got, err := decodeSession(raw)
	require.NoError(t, err)
	assert.NotNil(t, got.Overlays)
	assert.Equal(t, domain.ScreenOnboarding, domain.ResolveView(got))
}

func TestDecodeSession_Garbage(t *testing.T) {
	_, err := decodeSession([]byte("{"))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
	assert.Equal(t, "auth-pending:abc", pendingKey("abc"))
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion(0, 1))
	assert.NoError(t, checkVersion(4, 6))
	assert.ErrorIs(t, checkVersion(3, 3), domain.ErrVersionConflict)
	assert.ErrorIs(t, checkVersion(5, 4), domain.ErrVersionConflict)
}
