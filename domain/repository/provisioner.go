package repository

import (
	"context"

	"stream-engage/domain/model"
)

// IChannelProvisioner is the managed video-ingest provider. Only channel
// identifiers, endpoints and key values are consumed here; failures surface
// as-is without retries or rate limiting.
type IChannelProvisioner interface {
	CreateChannel(ctx context.Context, name string) (*model.ChannelInfo, error)
	CreateStreamKey(ctx context.Context, channelARN string) (*model.StreamKeyInfo, error)
	DeleteChannel(ctx context.Context, channelARN string) error
	GetChannel(ctx context.Context, channelARN string) (*model.ChannelInfo, error)
	// ListChannels walks the provider's pagination to the end.
	ListChannels(ctx context.Context) ([]model.ChannelInfo, error)
	ChannelExists(ctx context.Context, channelARN string) (bool, error)
	// ValidateChannel checks the channel is usable for broadcast: it exists
	// and carries a playback URL and an ingest endpoint.
	ValidateChannel(ctx context.Context, channelARN string) (bool, error)
	CountChannels(ctx context.Context) (int, error)
}
