package event

import (
	"context"
	"encoding/json"
	"time"

	"stream-engage/infrastructure/logger"
)

// Envelope is the wire shape of one structured event.
type Envelope struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload"`
	At      time.Time              `json:"at"`
}

// IEventSink receives structured events for creation, updates, joins, leaves
// and tips. Emit is fire-and-forget: implementations must never block the
// operation that caused the event.
type IEventSink interface {
	Emit(eventName string, payload map[string]interface{})
}

const emitTimeout = 5 * time.Second

// emitAsync runs publish on its own goroutine with a bounded deadline, logging
// failures instead of surfacing them.
func emitAsync(eventName string, payload map[string]interface{}, publish func(ctx context.Context, data []byte) error) {
	data, err := json.Marshal(Envelope{Event: eventName, Payload: payload, At: time.Now().UTC()})
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("event", eventName).Error("Error while marshalling event")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := publish(ctx, data); err != nil {
			logger.GetLogger().WithField("error", err).WithField("event", eventName).Warn("Event publish failed")
		}
	}()
}

// NopSink drops every event. Used when no sink is configured.
type NopSink struct{}

func NewNopSink() IEventSink { return &NopSink{} }

func (s *NopSink) Emit(string, map[string]interface{}) {}
