package event

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// ServiceBusSink publishes events to an Azure Service Bus queue.
type ServiceBusSink struct {
	client *azservicebus.Client
	queue  string
}

func NewServiceBus(namespace string) (*azservicebus.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

func NewServiceBusSink(client *azservicebus.Client, queue string) IEventSink {
	return &ServiceBusSink{client: client, queue: queue}
}

func (s *ServiceBusSink) Emit(eventName string, payload map[string]interface{}) {
	emitAsync(eventName, payload, func(ctx context.Context, data []byte) error {
		sender, err := s.client.NewSender(s.queue, nil)
		if err != nil {
			return err
		}
		defer func() { _ = sender.Close(context.Background()) }()

		return sender.SendMessage(ctx, &azservicebus.Message{Body: data}, nil)
	})
}
