package ivs

import (
	"context"
	"errors"

	"stream-engage/domain/model"
	domainrepo "stream-engage/domain/repository"
	"stream-engage/infrastructure/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ivs"
	"github.com/aws/aws-sdk-go-v2/service/ivs/types"
)

// Config carries the provider credentials. An empty AccessKeyID falls back to
// the ambient AWS credential chain.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Client provisions broadcast channels and stream keys on Amazon IVS. It does
// no retrying or rate limiting of its own; failures surface to the caller.
type Client struct {
	ivs *ivs.Client
}

func NewIvsClient(ctx context.Context, cfg Config) (domainrepo.IChannelProvisioner, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{ivs: ivs.NewFromConfig(awsCfg)}, nil
}

func (c *Client) CreateChannel(ctx context.Context, name string) (*model.ChannelInfo, error) {
	out, err := c.ivs.CreateChannel(ctx, &ivs.CreateChannelInput{
		Name:        aws.String(name),
		LatencyMode: types.ChannelLatencyModeLowLatency,
		Type:        types.ChannelTypeStandardChannelType,
	})
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("arn", aws.ToString(out.Channel.Arn)).Info("IVS channel created")
	return channelInfo(out.Channel), nil
}

func (c *Client) CreateStreamKey(ctx context.Context, channelARN string) (*model.StreamKeyInfo, error) {
	out, err := c.ivs.CreateStreamKey(ctx, &ivs.CreateStreamKeyInput{
		ChannelArn: aws.String(channelARN),
	})
	if err != nil {
		return nil, err
	}
	return &model.StreamKeyInfo{
		ARN:        aws.ToString(out.StreamKey.Arn),
		ChannelARN: aws.ToString(out.StreamKey.ChannelArn),
		Value:      aws.ToString(out.StreamKey.Value),
	}, nil
}

func (c *Client) DeleteChannel(ctx context.Context, channelARN string) error {
	_, err := c.ivs.DeleteChannel(ctx, &ivs.DeleteChannelInput{Arn: aws.String(channelARN)})
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("arn", channelARN).Error("Error while deleting IVS channel")
		return err
	}
	logger.GetLogger().WithField("arn", channelARN).Info("IVS channel deleted")
	return nil
}

func (c *Client) GetChannel(ctx context.Context, channelARN string) (*model.ChannelInfo, error) {
	out, err := c.ivs.GetChannel(ctx, &ivs.GetChannelInput{Arn: aws.String(channelARN)})
	if err != nil {
		return nil, err
	}
	return channelInfo(out.Channel), nil
}

// ListChannels walks the provider pagination to the end. Channel summaries
// carry no endpoints; callers needing them follow up with GetChannel.
func (c *Client) ListChannels(ctx context.Context) ([]model.ChannelInfo, error) {
	var channels []model.ChannelInfo
	var nextToken *string
	for {
		out, err := c.ivs.ListChannels(ctx, &ivs.ListChannelsInput{NextToken: nextToken})
		if err != nil {
			return nil, err
		}
		for _, summary := range out.Channels {
			channels = append(channels, model.ChannelInfo{
				ARN:  aws.ToString(summary.Arn),
				Name: aws.ToString(summary.Name),
			})
		}
		if out.NextToken == nil || aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}
	return channels, nil
}

func (c *Client) ChannelExists(ctx context.Context, channelARN string) (bool, error) {
	_, err := c.ivs.GetChannel(ctx, &ivs.GetChannelInput{Arn: aws.String(channelARN)})
	if err != nil {
		var nfe *types.ResourceNotFoundException
		if errors.As(err, &nfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ValidateChannel treats a vanished channel as invalid rather than an error;
// only transport failures surface.
func (c *Client) ValidateChannel(ctx context.Context, channelARN string) (bool, error) {
	out, err := c.ivs.GetChannel(ctx, &ivs.GetChannelInput{Arn: aws.String(channelARN)})
	if err != nil {
		var nfe *types.ResourceNotFoundException
		if errors.As(err, &nfe) {
			return false, nil
		}
		return false, err
	}
	ch := out.Channel
	return aws.ToString(ch.PlaybackUrl) != "" && aws.ToString(ch.IngestEndpoint) != "", nil
}

func (c *Client) CountChannels(ctx context.Context) (int, error) {
	count := 0
	var nextToken *string
	for {
		out, err := c.ivs.ListChannels(ctx, &ivs.ListChannelsInput{NextToken: nextToken})
		if err != nil {
			return 0, err
		}
		count += len(out.Channels)
		if out.NextToken == nil || aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}
	return count, nil
}

func channelInfo(ch *types.Channel) *model.ChannelInfo {
	return &model.ChannelInfo{
		ARN:            aws.ToString(ch.Arn),
		Name:           aws.ToString(ch.Name),
		PlaybackURL:    aws.ToString(ch.PlaybackUrl),
		IngestEndpoint: aws.ToString(ch.IngestEndpoint),
	}
}
