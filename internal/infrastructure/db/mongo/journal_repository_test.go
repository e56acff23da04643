package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pushr/marketplace/internal/core/domain"
)

func TestTransitionDoc(t *testing.T) {
	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.FixedZone("CST", -6*3600))
	doc := transitionDoc(domain.TransitionRecord{
		SessionID:  "s-1",
		Version:    7,
		Event:      "switch_role",
		FromScreen: domain.ScreenCustomerHome,
		ToScreen:   domain.ScreenPusherJobs,
		Role:       domain.RolePusher,
		Tab:        domain.TabJobs,
		At:         at,
	})

	assert.Equal(t, "s-1", doc["session_id"])
	assert.Equal(t, int64(7), doc["version"])
	assert.Equal(t, "pusher-jobs", doc["to_screen"])
	assert.Equal(t, "pusher", doc["role"])
	assert.Equal(t, time.UTC, doc["at"].(time.Time).Location())
}

func TestTransitionDoc_SignedOutHasNoRole(t *testing.T) {
	doc := transitionDoc(domain.TransitionRecord{SessionID: "s-1", Event: "logout"})
	_, ok := doc["role"]
	assert.False(t, ok)
}
