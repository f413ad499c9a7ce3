package usecase_test

import (
	"context"
	"time"

	"stream-engage/domain/model"

	"github.com/stretchr/testify/mock"
)

// Mock implementations

type MockStreamRepo struct {
	mock.Mock
}

func (m *MockStreamRepo) Insert(ctx context.Context, stream *model.Stream) error {
	args := m.Called(ctx, stream)
	return args.Error(0)
}

func (m *MockStreamRepo) GetByID(ctx context.Context, streamID string) (*model.Stream, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stream), args.Error(1)
}

func (m *MockStreamRepo) Update(ctx context.Context, streamID string, fields map[string]interface{}) error {
	args := m.Called(ctx, streamID, fields)
	return args.Error(0)
}

func (m *MockStreamRepo) PushTip(ctx context.Context, streamID string, tip model.Tip) error {
	args := m.Called(ctx, streamID, tip)
	return args.Error(0)
}

func (m *MockStreamRepo) PushAnnouncement(ctx context.Context, streamID string, a model.Announcement) error {
	args := m.Called(ctx, streamID, a)
	return args.Error(0)
}

func (m *MockStreamRepo) AddCollaborator(ctx context.Context, streamID, userID string) error {
	args := m.Called(ctx, streamID, userID)
	return args.Error(0)
}

func (m *MockStreamRepo) SetGoalProgress(ctx context.Context, streamID, goalID string, progress float64, achieved bool) error {
	args := m.Called(ctx, streamID, goalID, progress, achieved)
	return args.Error(0)
}

func (m *MockStreamRepo) ListByChannel(ctx context.Context, channelID string) ([]model.Stream, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stream), args.Error(1)
}

type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Insert(ctx context.Context, stats *model.StatsRecord) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepo) GetByStreamID(ctx context.Context, streamID string) (*model.StatsRecord, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatsRecord), args.Error(1)
}

func (m *MockStatsRepo) IncrementField(ctx context.Context, streamID, field string, delta int64) error {
	args := m.Called(ctx, streamID, field, delta)
	return args.Error(0)
}

func (m *MockStatsRepo) EnsureTipBoardEntry(ctx context.Context, streamID, userID string, firstTipAt time.Time) error {
	args := m.Called(ctx, streamID, userID, firstTipAt)
	return args.Error(0)
}

func (m *MockStatsRepo) ApplyTip(ctx context.Context, streamID, userID string, amount float64) error {
	args := m.Called(ctx, streamID, userID, amount)
	return args.Error(0)
}

func (m *MockStatsRepo) SetHighestTipper(ctx context.Context, streamID, userID string) error {
	args := m.Called(ctx, streamID, userID)
	return args.Error(0)
}

func (m *MockStatsRepo) AppendToyAction(ctx context.Context, streamID string, action model.ToyAction) error {
	args := m.Called(ctx, streamID, action)
	return args.Error(0)
}

func (m *MockStatsRepo) RaiseConcurrentMax(ctx context.Context, streamID string, current int64) error {
	args := m.Called(ctx, streamID, current)
	return args.Error(0)
}

type MockJoinLogRepo struct {
	mock.Mock
}

func (m *MockJoinLogRepo) Insert(ctx context.Context, entry *model.JoinLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJoinLogRepo) FindOpen(ctx context.Context, streamID, userID string) (*model.JoinLogEntry, error) {
	args := m.Called(ctx, streamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JoinLogEntry), args.Error(1)
}

func (m *MockJoinLogRepo) CloseLatest(ctx context.Context, streamID, userID string, leftAt time.Time) (bool, error) {
	args := m.Called(ctx, streamID, userID, leftAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockJoinLogRepo) ListByStream(ctx context.Context, streamID string) ([]model.JoinLogEntry, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinLogEntry), args.Error(1)
}

type MockPresenceStore struct {
	mock.Mock
}

func (m *MockPresenceStore) AddMember(ctx context.Context, key, member string) error {
	args := m.Called(ctx, key, member)
	return args.Error(0)
}

func (m *MockPresenceStore) RemoveMember(ctx context.Context, key, member string) error {
	args := m.Called(ctx, key, member)
	return args.Error(0)
}

func (m *MockPresenceStore) ListMembers(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPresenceStore) CountMembers(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

type MockChannelRepo struct {
	mock.Mock
}

func (m *MockChannelRepo) Upsert(ctx context.Context, profile *model.ChannelProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockChannelRepo) GetByID(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelProfile), args.Error(1)
}

func (m *MockChannelRepo) Update(ctx context.Context, channelID string, fields map[string]interface{}) error {
	args := m.Called(ctx, channelID, fields)
	return args.Error(0)
}

type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) CreateChannel(ctx context.Context, name string) (*model.ChannelInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelInfo), args.Error(1)
}

func (m *MockProvisioner) CreateStreamKey(ctx context.Context, channelARN string) (*model.StreamKeyInfo, error) {
	args := m.Called(ctx, channelARN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StreamKeyInfo), args.Error(1)
}

func (m *MockProvisioner) DeleteChannel(ctx context.Context, channelARN string) error {
	args := m.Called(ctx, channelARN)
	return args.Error(0)
}

func (m *MockProvisioner) GetChannel(ctx context.Context, channelARN string) (*model.ChannelInfo, error) {
	args := m.Called(ctx, channelARN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelInfo), args.Error(1)
}

func (m *MockProvisioner) ListChannels(ctx context.Context) ([]model.ChannelInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChannelInfo), args.Error(1)
}

func (m *MockProvisioner) ChannelExists(ctx context.Context, channelARN string) (bool, error) {
	args := m.Called(ctx, channelARN)
	return args.Bool(0), args.Error(1)
}

func (m *MockProvisioner) ValidateChannel(ctx context.Context, channelARN string) (bool, error) {
	args := m.Called(ctx, channelARN)
	return args.Bool(0), args.Error(1)
}

func (m *MockProvisioner) CountChannels(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockEntitlement struct {
	mock.Mock
}

func (m *MockEntitlement) Check(ctx context.Context, stream *model.Stream, userID string) (bool, error) {
	args := m.Called(ctx, stream, userID)
	return args.Bool(0), args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Emit(eventName string, payload map[string]interface{}) {
	m.Called(eventName, payload)
}
