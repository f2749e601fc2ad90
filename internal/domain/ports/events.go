package ports

import (
	"context"
	"time"
)

// Event descreve uma mutação administrativa já confirmada
type Event struct {
	Type    string    `json:"type"` // ex: "role.updated"
	ID      uint      `json:"id"`
	ActorID uint      `json:"actor_id"`
	At      time.Time `json:"at"`
}

// EventPublisher distribui eventos para quem estiver escutando
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// NoopPublisher descarta os eventos
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}
