package eventbus

import (
	"context"
	"log"

	"github.com/matthewbaird/snippetchooser/internal/event"
)

// LogConsumer logs every snippet event.
type LogConsumer struct{}

func NewLogConsumer() *LogConsumer { return &LogConsumer{} }

func (c *LogConsumer) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	log.Printf("event: %s at %s", evt.Summary(), evt.OccurredAt.Format("15:04:05.000"))
	return nil
}
