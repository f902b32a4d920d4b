// Package queue defines the audit events exchanged over the message
// broker and the publisher/consumer pair moving them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// auditQueueName is the durable queue carrying every audit event.
const auditQueueName = "audit.events"

// Event types recorded in the audit log.
const (
	EventSeasonActivated = "season.activated"
	EventSeasonClosed    = "season.closed"
	EventUserLoggedIn    = "user.logged_in"
)

// Event is the envelope published for every audited action. Subject names
// the affected entity (a season slug or a user email). ActorID is the
// user who performed the action, zero for key-authenticated calls.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Subject    string    `json:"subject"`
	ActorID    uint64    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh envelope with a random ID and the current time.
func NewEvent(eventType, subject string, actorID uint64) Event {
	return Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Subject:    subject,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}
