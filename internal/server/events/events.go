// Package events publishes account lifecycle events to Redis streams.
package events

import (
	"context"
	"time"
)

const AccountCreated = "account.created"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountID int64  `json:"accountId"`
	Email     string `json:"email"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
