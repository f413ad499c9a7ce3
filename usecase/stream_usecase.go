package usecase

import (
	"context"
	"fmt"
	"time"

	"stream-engage/domain/dto"
	"stream-engage/domain/model"
	"stream-engage/domain/repository"
	"stream-engage/infrastructure/event"
	"stream-engage/infrastructure/logger"
	"stream-engage/infrastructure/utils"

	"github.com/google/uuid"
)

// IStreamUsecase owns session creation, the status state machine and the
// simple metadata mutators. It orchestrates provisioning: a stream is never
// persisted without a successfully provisioned backing channel.
type IStreamUsecase interface {
	CreateStream(ctx context.Context, req dto.CreateStreamRequest) (*model.Stream, *model.ChannelInfo, error)
	GetStream(ctx context.Context, streamID string) (*model.Stream, error)
	UpdateStream(ctx context.Context, streamID string, req dto.UpdateStreamRequest) (*model.Stream, error)
	SetTrailer(ctx context.Context, streamID, url string) error
	SetThumbnail(ctx context.Context, streamID, url string) error
	AddAnnouncement(ctx context.Context, streamID, title, body string) error
	AddCollaborator(ctx context.Context, streamID, userID string) error
	ListCollaborators(ctx context.Context, streamID string) ([]string, error)
	ValidateUserAccess(ctx context.Context, streamID, userID string) (bool, error)
	GetSessionType(ctx context.Context, streamID string) (model.AccessType, error)
	ListChannelStreams(ctx context.Context, channelID string) ([]model.Stream, error)
	GetActiveStreams(ctx context.Context) ([]model.Stream, error)
	GetChannelMeta(ctx context.Context, channelID string) (*model.ChannelProfile, error)
	UpdateChannel(ctx context.Context, channelID string, req dto.UpdateChannelRequest) error
	ListProviderChannels(ctx context.Context) ([]model.ChannelInfo, error)
	ValidateProviderChannel(ctx context.Context, channelID string) (bool, error)
	CountProviderChannels(ctx context.Context) (int, error)
}

type streamUsecase struct {
	streamRepo  repository.IStream
	statsRepo   repository.IStats
	channelRepo repository.IChannel
	presence    repository.IPresence
	provisioner repository.IChannelProvisioner
	entitlement repository.IEntitlement
	sink        event.IEventSink
}

func NewStreamUsecase(
	streamRepo repository.IStream,
	statsRepo repository.IStats,
	channelRepo repository.IChannel,
	presence repository.IPresence,
	provisioner repository.IChannelProvisioner,
	entitlement repository.IEntitlement,
	sink event.IEventSink,
) IStreamUsecase {
	return &streamUsecase{
		streamRepo:  streamRepo,
		statsRepo:   statsRepo,
		channelRepo: channelRepo,
		presence:    presence,
		provisioner: provisioner,
		entitlement: entitlement,
		sink:        sink,
	}
}

func (u *streamUsecase) CreateStream(ctx context.Context, req dto.CreateStreamRequest) (*model.Stream, *model.ChannelInfo, error) {
	if req.CreatorUserID == "" {
		return nil, nil, model.NewValidationError("creator_user_id", "required")
	}
	if req.Title == "" {
		return nil, nil, model.NewValidationError("title", "required")
	}
	accessType := model.AccessType(req.AccessType)
	if !accessType.Valid() {
		return nil, nil, model.NewValidationError("access_type", "required, one of open_free|open_paid|invite_free|invite_paid")
	}
	pricingType := model.PricingType(req.PricingType)
	if pricingType == "" {
		pricingType = model.PricingFree
	}
	switch pricingType {
	case model.PricingFree, model.PricingPPV, model.PricingSVOD, model.PricingTokenUnlock:
	default:
		return nil, nil, model.NewValidationError("pricing_type", "unknown pricing type "+req.PricingType)
	}

	now := utils.GetCurrentTime()

	channelName := fmt.Sprintf("channel-%s-%d", req.CreatorUserID, now.UnixMilli())
	channel, err := u.provisioner.CreateChannel(ctx, channelName)
	if err != nil {
		return nil, nil, &model.ProvisioningError{Op: "create channel", Err: err}
	}
	streamKey, err := u.provisioner.CreateStreamKey(ctx, channel.ARN)
	if err != nil {
		u.cleanupChannel(channel.ARN)
		return nil, nil, &model.ProvisioningError{Op: "create stream key", Err: err}
	}

	profile := &model.ChannelProfile{
		ID:          req.CreatorUserID,
		Name:        channel.Name,
		Description: req.Description,
		Tags:        orEmpty(req.Tags),
		ChannelARN:  channel.ARN,
		PlaybackURL: channel.PlaybackURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.channelRepo.Upsert(ctx, profile); err != nil {
		u.cleanupChannel(channel.ARN)
		return nil, nil, err
	}

	allowComments := true
	if req.AllowComments != nil {
		allowComments = *req.AllowComments
	}
	stream := &model.Stream{
		ID:            uuid.NewString(),
		ChannelID:     channel.ARN,
		CreatorUserID: req.CreatorUserID,
		Title:         req.Title,
		Description:   req.Description,
		AccessType:    accessType,
		PricingType:   pricingType,
		IsPrivate:     req.IsPrivate,
		AllowComments: allowComments,
		Status:        model.StatusOffline,
		StreamKey:     streamKey.Value,
		Goals:         []model.Goal{},
		Games:         []map[string]interface{}{},
		Gifts:         []map[string]interface{}{},
		Tips:          []model.Tip{},
		MultiCamURLs:  []string{},
		Announcements: []model.Announcement{},
		Collaborators: orEmpty(req.Collaborators),
		Tags:          orEmpty(req.Tags),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Stats goes in first so a persisted stream always has its counters record.
	// An orphaned stats doc from a failed stream insert is never read.
	if err := u.statsRepo.Insert(ctx, model.NewStatsRecord(stream.ID, now)); err != nil {
		u.cleanupChannel(channel.ARN)
		return nil, nil, err
	}
	if err := u.streamRepo.Insert(ctx, stream); err != nil {
		u.cleanupChannel(channel.ARN)
		return nil, nil, err
	}

	u.sink.Emit("stream.created", map[string]interface{}{
		"stream_id": stream.ID, "creator_user_id": req.CreatorUserID, "channel_arn": channel.ARN,
	})
	return stream, channel, nil
}

// cleanupChannel undoes provisioning when persistence fails mid-creation.
func (u *streamUsecase) cleanupChannel(channelARN string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := u.provisioner.DeleteChannel(ctx, channelARN); err != nil {
		logger.GetLogger().WithField("error", err).WithField("arn", channelARN).Error("Orphaned channel cleanup failed")
	}
}

func (u *streamUsecase) GetStream(ctx context.Context, streamID string) (*model.Stream, error) {
	return u.streamRepo.GetByID(ctx, streamID)
}

func (u *streamUsecase) UpdateStream(ctx context.Context, streamID string, req dto.UpdateStreamRequest) (*model.Stream, error) {
	stream, err := u.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return nil, err
	}

	now := utils.GetCurrentTime()
	fields := map[string]interface{}{"updated_at": now}

	var nextStatus model.StreamStatus
	if req.Status != nil {
		nextStatus = model.StreamStatus(*req.Status)
		if !nextStatus.Valid() {
			return nil, model.NewValidationError("status", "unknown status "+*req.Status)
		}
		if !stream.Status.CanTransitionTo(nextStatus) {
			return nil, model.NewValidationError("status",
				fmt.Sprintf("illegal transition %s -> %s", stream.Status, nextStatus))
		}
		fields["status"] = nextStatus
		switch nextStatus {
		case model.StatusLive:
			fields["start_time"] = now
		case model.StatusOffline:
			fields["end_time"] = now
		}
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PricingType != nil {
		fields["pricing_type"] = *req.PricingType
	}
	if req.IsPrivate != nil {
		fields["is_private"] = *req.IsPrivate
	}
	if req.AllowComments != nil {
		fields["allow_comments"] = *req.AllowComments
	}
	if req.VodURL != nil {
		fields["vod_url"] = *req.VodURL
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}

	if err := u.streamRepo.Update(ctx, streamID, fields); err != nil {
		return nil, err
	}

	// Keep the active-streams index in step with the lifecycle.
	if req.Status != nil {
		switch nextStatus {
		case model.StatusLive:
			if err := u.presence.AddMember(ctx, repository.ActiveStreamsKey, streamID); err != nil {
				logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("active_streams add failed")
			}
		case model.StatusOffline:
			if err := u.presence.RemoveMember(ctx, repository.ActiveStreamsKey, streamID); err != nil {
				logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("active_streams remove failed")
			}
		}
	}

	u.sink.Emit("stream.updated", map[string]interface{}{
		"stream_id": streamID, "fields": fields,
	})
	return u.streamRepo.GetByID(ctx, streamID)
}

func (u *streamUsecase) SetTrailer(ctx context.Context, streamID, url string) error {
	if url == "" {
		return model.NewValidationError("url", "required")
	}
	return u.streamRepo.Update(ctx, streamID, map[string]interface{}{
		"trailer_url": url,
		"updated_at":  utils.GetCurrentTime(),
	})
}

func (u *streamUsecase) SetThumbnail(ctx context.Context, streamID, url string) error {
	if url == "" {
		return model.NewValidationError("url", "required")
	}
	return u.streamRepo.Update(ctx, streamID, map[string]interface{}{
		"thumbnail_url": url,
		"updated_at":    utils.GetCurrentTime(),
	})
}

func (u *streamUsecase) AddAnnouncement(ctx context.Context, streamID, title, body string) error {
	if title == "" {
		return model.NewValidationError("title", "required")
	}
	return u.streamRepo.PushAnnouncement(ctx, streamID, model.Announcement{
		Title:     title,
		Body:      body,
		Timestamp: utils.GetCurrentTime(),
	})
}

func (u *streamUsecase) AddCollaborator(ctx context.Context, streamID, userID string) error {
	if userID == "" {
		return model.NewValidationError("user_id", "required")
	}
	return u.streamRepo.AddCollaborator(ctx, streamID, userID)
}

func (u *streamUsecase) ListCollaborators(ctx context.Context, streamID string) ([]string, error) {
	stream, err := u.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if stream.Collaborators == nil {
		return []string{}, nil
	}
	return stream.Collaborators, nil
}

// ValidateUserAccess grants open access types directly and delegates gated
// types to the entitlement hook. With no hook wired, gated streams deny.
func (u *streamUsecase) ValidateUserAccess(ctx context.Context, streamID, userID string) (bool, error) {
	stream, err := u.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return false, err
	}
	if stream.AccessType.IsOpen() {
		return true, nil
	}
	if u.entitlement == nil {
		return false, nil
	}
	return u.entitlement.Check(ctx, stream, userID)
}

func (u *streamUsecase) GetSessionType(ctx context.Context, streamID string) (model.AccessType, error) {
	stream, err := u.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return "", err
	}
	return stream.AccessType, nil
}

func (u *streamUsecase) ListChannelStreams(ctx context.Context, channelID string) ([]model.Stream, error) {
	return u.streamRepo.ListByChannel(ctx, channelID)
}

func (u *streamUsecase) GetActiveStreams(ctx context.Context) ([]model.Stream, error) {
	ids, err := u.presence.ListMembers(ctx, repository.ActiveStreamsKey)
	if err != nil {
		return nil, err
	}
	streams := make([]model.Stream, 0, len(ids))
	for _, id := range ids {
		stream, err := u.streamRepo.GetByID(ctx, id)
		if err != nil {
			if model.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		streams = append(streams, *stream)
	}
	return streams, nil
}

func (u *streamUsecase) GetChannelMeta(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	return u.channelRepo.GetByID(ctx, channelID)
}

func (u *streamUsecase) UpdateChannel(ctx context.Context, channelID string, req dto.UpdateChannelRequest) error {
	profile, err := u.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}
	// Refuse edits to a profile whose backing provider channel vanished.
	if profile.ChannelARN != "" {
		exists, err := u.provisioner.ChannelExists(ctx, profile.ChannelARN)
		if err != nil {
			return &model.ProvisioningError{Op: "check channel", Err: err}
		}
		if !exists {
			return model.ErrChannelNotFound
		}
	}

	fields := map[string]interface{}{"updated_at": utils.GetCurrentTime()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ProfileThumbnail != nil {
		fields["profile_thumbnail"] = *req.ProfileThumbnail
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	return u.channelRepo.Update(ctx, channelID, fields)
}

func (u *streamUsecase) ListProviderChannels(ctx context.Context) ([]model.ChannelInfo, error) {
	return u.provisioner.ListChannels(ctx)
}

// ValidateProviderChannel resolves the profile's channel ARN and asks the
// provider whether it is broadcast-ready.
func (u *streamUsecase) ValidateProviderChannel(ctx context.Context, channelID string) (bool, error) {
	profile, err := u.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, err
	}
	if profile.ChannelARN == "" {
		return false, nil
	}
	valid, err := u.provisioner.ValidateChannel(ctx, profile.ChannelARN)
	if err != nil {
		return false, &model.ProvisioningError{Op: "validate channel", Err: err}
	}
	return valid, nil
}

func (u *streamUsecase) CountProviderChannels(ctx context.Context) (int, error) {
	count, err := u.provisioner.CountChannels(ctx)
	if err != nil {
		return 0, &model.ProvisioningError{Op: "count channels", Err: err}
	}
	return count, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
