package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"stream-engage/domain/model"
	"stream-engage/infrastructure/event"
	"stream-engage/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakePresenceStore is an in-memory set store.
type fakePresenceStore struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func newFakePresenceStore() *fakePresenceStore {
	return &fakePresenceStore{sets: map[string]map[string]struct{}{}}
}

func (f *fakePresenceStore) AddMember(_ context.Context, key, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = map[string]struct{}{}
	}
	f.sets[key][member] = struct{}{}
	return nil
}

func (f *fakePresenceStore) RemoveMember(_ context.Context, key, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sets[key], member)
	return nil
}

func (f *fakePresenceStore) ListMembers(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (f *fakePresenceStore) CountMembers(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.sets[key])), nil
}

// fakeJoinLog is an in-memory audit trail maintaining the single-open-entry
// invariant per (stream, user) pair.
type fakeJoinLog struct {
	mu      sync.Mutex
	entries []*model.JoinLogEntry
}

func (f *fakeJoinLog) Insert(_ context.Context, entry *model.JoinLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeJoinLog) FindOpen(_ context.Context, streamID, userID string) (*model.JoinLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.StreamID == streamID && e.UserID == userID && e.LeftAt == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeJoinLog) CloseLatest(_ context.Context, streamID, userID string, leftAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.StreamID == streamID && e.UserID == userID && e.LeftAt == nil {
			t := leftAt
			e.LeftAt = &t
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeJoinLog) ListByStream(_ context.Context, streamID string) ([]model.JoinLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.JoinLogEntry
	for _, e := range f.entries {
		if e.StreamID == streamID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func newPresenceStreamRepo(streamID string) *MockStreamRepo {
	streamRepo := new(MockStreamRepo)
	streamRepo.On("GetByID", mock.Anything, streamID).Return(&model.Stream{ID: streamID, Status: model.StatusLive}, nil)
	return streamRepo
}

func TestPresenceUsecase_Join_Validation(t *testing.T) {
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), &fakeJoinLog{}, newFakeStatsStore(), newFakePresenceStore(), event.NewNopSink())

	err := uc.Join(context.Background(), "s1", "", model.RoleViewer)
	assert.True(t, model.IsValidation(err))

	err = uc.Join(context.Background(), "s1", "u1", model.ParticipantRole("pirate"))
	assert.True(t, model.IsValidation(err))
}

func TestPresenceUsecase_Join_UnknownStream(t *testing.T) {
	streamRepo := new(MockStreamRepo)
	streamRepo.On("GetByID", mock.Anything, "missing").Return(nil, model.ErrStreamNotFound)
	uc := usecase.NewPresenceUsecase(streamRepo, &fakeJoinLog{}, newFakeStatsStore(), newFakePresenceStore(), event.NewNopSink())

	err := uc.Join(context.Background(), "missing", "u1", model.RoleViewer)
	assert.True(t, model.IsNotFound(err))
}

func TestPresenceUsecase_JoinIsIdempotent(t *testing.T) {
	joinLog := &fakeJoinLog{}
	stats := newFakeStatsStore()
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), joinLog, stats, newFakePresenceStore(), event.NewNopSink())
	ctx := context.Background()

	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))
	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))

	count, err := uc.ActiveCount(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The duplicate join neither appends a second audit entry nor bumps counters.
	entries, _ := joinLog.ListByStream(ctx, "s1")
	assert.Len(t, entries, 1)
	rec, _ := stats.GetByStreamID(ctx, "s1")
	assert.Equal(t, int64(1), rec.JoinCount)
	assert.Equal(t, int64(1), rec.Views)
}

func TestPresenceUsecase_LeaveClosesLatestEntry(t *testing.T) {
	joinLog := &fakeJoinLog{}
	stats := newFakeStatsStore()
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), joinLog, stats, newFakePresenceStore(), event.NewNopSink())
	ctx := context.Background()

	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))
	assert.NoError(t, uc.Leave(ctx, "s1", "u1"))

	count, _ := uc.ActiveCount(ctx, "s1")
	assert.Equal(t, int64(0), count)

	entries, _ := joinLog.ListByStream(ctx, "s1")
	assert.Len(t, entries, 1)
	assert.NotNil(t, entries[0].LeftAt)

	rec, _ := stats.GetByStreamID(ctx, "s1")
	assert.Equal(t, int64(1), rec.LeaveCount)
}

func TestPresenceUsecase_LeaveWithoutJoinIsNoop(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), &fakeJoinLog{}, stats, newFakePresenceStore(), event.NewNopSink())

	assert.NoError(t, uc.Leave(context.Background(), "s1", "ghost"))
	rec, _ := stats.GetByStreamID(context.Background(), "s1")
	assert.Equal(t, int64(0), rec.LeaveCount)
}

func TestPresenceUsecase_SecondLeaveDoesNotDoubleCount(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), &fakeJoinLog{}, stats, newFakePresenceStore(), event.NewNopSink())
	ctx := context.Background()

	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))
	assert.NoError(t, uc.Leave(ctx, "s1", "u1"))
	assert.NoError(t, uc.Leave(ctx, "s1", "u1"))

	rec, _ := stats.GetByStreamID(ctx, "s1")
	assert.Equal(t, int64(1), rec.LeaveCount)
}

func TestPresenceUsecase_RejoinOpensNewEntry(t *testing.T) {
	joinLog := &fakeJoinLog{}
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), joinLog, newFakeStatsStore(), newFakePresenceStore(), event.NewNopSink())
	ctx := context.Background()

	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))
	assert.NoError(t, uc.Leave(ctx, "s1", "u1"))
	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))

	entries, _ := joinLog.ListByStream(ctx, "s1")
	assert.Len(t, entries, 2)
	assert.NotNil(t, entries[0].LeftAt)
	assert.Nil(t, entries[1].LeftAt)
}

func TestPresenceUsecase_ConcurrentMaxTracksPeak(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), &fakeJoinLog{}, stats, newFakePresenceStore(), event.NewNopSink())
	ctx := context.Background()

	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))
	assert.NoError(t, uc.Join(ctx, "s1", "u2", model.RoleViewer))
	assert.NoError(t, uc.Join(ctx, "s1", "u3", model.RoleViewer))
	assert.NoError(t, uc.Leave(ctx, "s1", "u2"))
	assert.NoError(t, uc.Leave(ctx, "s1", "u3"))

	rec, _ := stats.GetByStreamID(ctx, "s1")
	assert.Equal(t, int64(3), rec.ConcurrentMax)

	count, _ := uc.ActiveCount(ctx, "s1")
	assert.Equal(t, int64(1), count)
}

func TestPresenceUsecase_ListActive(t *testing.T) {
	uc := usecase.NewPresenceUsecase(newPresenceStreamRepo("s1"), &fakeJoinLog{}, newFakeStatsStore(), newFakePresenceStore(), event.NewNopSink())
	ctx := context.Background()

	assert.NoError(t, uc.Join(ctx, "s1", "u1", model.RoleViewer))
	assert.NoError(t, uc.Join(ctx, "s1", "u2", model.RoleCollaborator))

	members, err := uc.ListActive(ctx, "s1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, members)
}
