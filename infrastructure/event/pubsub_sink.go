package event

import (
	"context"

	"cloud.google.com/go/pubsub"
)

// PubSubSink publishes events to a Google Pub/Sub topic.
type PubSubSink struct {
	client *pubsub.Client
	topic  string
}

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, projectID)
}

func NewPubSubSink(client *pubsub.Client, topic string) IEventSink {
	return &PubSubSink{client: client, topic: topic}
}

func (s *PubSubSink) Emit(eventName string, payload map[string]interface{}) {
	emitAsync(eventName, payload, func(ctx context.Context, data []byte) error {
		topic := s.client.Topic(s.topic)
		defer topic.Stop()

		exists, err := topic.Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := s.client.CreateTopic(ctx, s.topic); err != nil {
				return err
			}
		}
		_, err = topic.Publish(ctx, &pubsub.Message{Data: data}).Get(ctx)
		return err
	})
}
