package domain

import "time"

// TransitionRecord is one applied, state-changing event in a session's journal.
type TransitionRecord struct {
	SessionID  string    `json:"session_id" bson:"session_id"`
	Version    int64     `json:"version" bson:"version"`
	Event      string    `json:"event" bson:"event"`
	FromScreen Screen    `json:"from_screen" bson:"from_screen"`
	ToScreen   Screen    `json:"to_screen" bson:"to_screen"`
	Role       Role      `json:"role,omitempty" bson:"role,omitempty"`
	Tab        Tab       `json:"tab" bson:"tab"`
	At         time.Time `json:"at" bson:"at"`
}
