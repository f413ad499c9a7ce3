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

// fakeStatsStore is an in-memory IStats with the same atomicity guarantees the
// real store gives: every mutator holds the lock for the whole operation.
type fakeStatsStore struct {
	mu      sync.Mutex
	records map[string]*model.StatsRecord
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{records: map[string]*model.StatsRecord{}}
}

func (f *fakeStatsStore) get(streamID string) *model.StatsRecord {
	rec, ok := f.records[streamID]
	if !ok {
		rec = model.NewStatsRecord(streamID, time.Now().UTC())
		f.records[streamID] = rec
	}
	return rec
}

func (f *fakeStatsStore) Insert(_ context.Context, stats *model.StatsRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[stats.StreamID] = stats
	return nil
}

func (f *fakeStatsStore) GetByStreamID(_ context.Context, streamID string) (*model.StatsRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.get(streamID)
	out := *rec
	out.TipBoard = make(map[string]model.TipBoardEntry, len(rec.TipBoard))
	for k, v := range rec.TipBoard {
		out.TipBoard[k] = v
	}
	return &out, nil
}

func (f *fakeStatsStore) IncrementField(_ context.Context, streamID, field string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.get(streamID)
	switch field {
	case "likes":
		rec.Likes += delta
	case "views":
		rec.Views += delta
	case "join_count":
		rec.JoinCount += delta
	case "leave_count":
		rec.LeaveCount += delta
	}
	return nil
}

func (f *fakeStatsStore) EnsureTipBoardEntry(_ context.Context, streamID, userID string, firstTipAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.get(streamID)
	if _, ok := rec.TipBoard[userID]; !ok {
		rec.TipBoard[userID] = model.TipBoardEntry{FirstTipAt: firstTipAt}
	}
	return nil
}

func (f *fakeStatsStore) ApplyTip(_ context.Context, streamID, userID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.get(streamID)
	entry := rec.TipBoard[userID]
	entry.Total += amount
	rec.TipBoard[userID] = entry
	rec.TipsTotal += amount
	return nil
}

func (f *fakeStatsStore) SetHighestTipper(_ context.Context, streamID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(streamID).HighestTipper = userID
	return nil
}

func (f *fakeStatsStore) AppendToyAction(_ context.Context, streamID string, action model.ToyAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.get(streamID)
	rec.ToysLog = append(rec.ToysLog, action)
	return nil
}

func (f *fakeStatsStore) RaiseConcurrentMax(_ context.Context, streamID string, current int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.get(streamID)
	if current > rec.ConcurrentMax {
		rec.ConcurrentMax = current
	}
	return nil
}

func newTipStreamRepo(streamID string) *MockStreamRepo {
	streamRepo := new(MockStreamRepo)
	streamRepo.On("GetByID", mock.Anything, streamID).Return(&model.Stream{ID: streamID, Status: model.StatusLive}, nil)
	streamRepo.On("PushTip", mock.Anything, streamID, mock.Anything).Return(nil)
	return streamRepo
}

func TestEngagementUsecase_RegisterTip_Validation(t *testing.T) {
	uc := usecase.NewEngagementUsecase(new(MockStreamRepo), newFakeStatsStore(), event.NewNopSink())

	_, err := uc.RegisterTip(context.Background(), "s1", "", 10, "", "")
	assert.True(t, model.IsValidation(err))

	_, err = uc.RegisterTip(context.Background(), "s1", "u1", 0, "", "")
	assert.True(t, model.IsValidation(err))

	_, err = uc.RegisterTip(context.Background(), "s1", "u1", -5, "", "")
	assert.True(t, model.IsValidation(err))
}

func TestEngagementUsecase_RegisterTip_UnknownStream(t *testing.T) {
	streamRepo := new(MockStreamRepo)
	streamRepo.On("GetByID", mock.Anything, "missing").Return(nil, model.ErrStreamNotFound)
	uc := usecase.NewEngagementUsecase(streamRepo, newFakeStatsStore(), event.NewNopSink())

	_, err := uc.RegisterTip(context.Background(), "missing", "u1", 10, "", "")
	assert.True(t, model.IsNotFound(err))
}

func TestEngagementUsecase_RegisterTip_BoardOrdering(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewEngagementUsecase(newTipStreamRepo("s1"), stats, event.NewNopSink())
	ctx := context.Background()

	_, err := uc.RegisterTip(ctx, "s1", "u1", 50, "", "")
	assert.NoError(t, err)
	_, err = uc.RegisterTip(ctx, "s1", "u2", 80, "", "")
	assert.NoError(t, err)

	board, err := uc.GetLeaderboard(ctx, "s1", 0)
	assert.NoError(t, err)
	assert.Len(t, board, 2)
	assert.Equal(t, "u2", board[0].UserID)
	assert.Equal(t, 80.0, board[0].Total)
	assert.Equal(t, "u1", board[1].UserID)

	// A later tip overtakes the leader.
	_, err = uc.RegisterTip(ctx, "s1", "u1", 40, "", "")
	assert.NoError(t, err)

	board, err = uc.GetLeaderboard(ctx, "s1", 0)
	assert.NoError(t, err)
	assert.Equal(t, "u1", board[0].UserID)
	assert.Equal(t, 90.0, board[0].Total)
	assert.Equal(t, "u2", board[1].UserID)
	assert.Equal(t, 80.0, board[1].Total)

	rec, err := uc.GetStats(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, 170.0, rec.TipsTotal)
	assert.Equal(t, "u1", rec.HighestTipper)
}

func TestEngagementUsecase_RegisterTip_ConcurrentTipsAllLand(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewEngagementUsecase(newTipStreamRepo("s1"), stats, event.NewNopSink())
	ctx := context.Background()

	users := []string{"u1", "u2", "u3", "u4", "u5"}
	const tipsPerUser = 20

	var wg sync.WaitGroup
	for _, userID := range users {
		for i := 0; i < tipsPerUser; i++ {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				_, err := uc.RegisterTip(ctx, "s1", userID, 1, "", "")
				assert.NoError(t, err)
			}(userID)
		}
	}
	wg.Wait()

	rec, err := uc.GetStats(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, float64(len(users)*tipsPerUser), rec.TipsTotal)
	for _, userID := range users {
		assert.Equal(t, float64(tipsPerUser), rec.TipBoard[userID].Total)
		assert.False(t, rec.TipBoard[userID].FirstTipAt.IsZero())
	}
}

func TestEngagementUsecase_GetLeaderboard_TieBreakAndLimit(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Minute)

	statsRepo := new(MockStatsRepo)
	statsRepo.On("GetByStreamID", mock.Anything, "s1").Return(&model.StatsRecord{
		StreamID: "s1",
		TipBoard: map[string]model.TipBoardEntry{
			"late":  {Total: 100, FirstTipAt: later},
			"early": {Total: 100, FirstTipAt: first},
			"small": {Total: 5, FirstTipAt: first},
		},
	}, nil)
	uc := usecase.NewEngagementUsecase(new(MockStreamRepo), statsRepo, event.NewNopSink())

	board, err := uc.GetLeaderboard(context.Background(), "s1", 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "small"}, []string{board[0].UserID, board[1].UserID, board[2].UserID})

	board, err = uc.GetLeaderboard(context.Background(), "s1", 2)
	assert.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestEngagementUsecase_RegisterTip_EmitsEvent(t *testing.T) {
	sink := new(MockSink)
	sink.On("Emit", "tip.registered", mock.Anything).Return()
	uc := usecase.NewEngagementUsecase(newTipStreamRepo("s1"), newFakeStatsStore(), sink)

	_, err := uc.RegisterTip(context.Background(), "s1", "u1", 25, "nice one", "")
	assert.NoError(t, err)
	sink.AssertCalled(t, "Emit", "tip.registered", mock.Anything)
}

func TestEngagementUsecase_IncrementLike(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewEngagementUsecase(new(MockStreamRepo), stats, event.NewNopSink())

	for i := 0; i < 3; i++ {
		assert.NoError(t, uc.IncrementLike(context.Background(), "s1"))
	}
	rec, _ := uc.GetStats(context.Background(), "s1")
	assert.Equal(t, int64(3), rec.Likes)
}

func TestEngagementUsecase_LogToyAction(t *testing.T) {
	stats := newFakeStatsStore()
	uc := usecase.NewEngagementUsecase(new(MockStreamRepo), stats, event.NewNopSink())

	err := uc.LogToyAction(context.Background(), "s1", map[string]interface{}{"pattern": "pulse", "intensity": 3})
	assert.NoError(t, err)

	rec, _ := uc.GetStats(context.Background(), "s1")
	assert.Len(t, rec.ToysLog, 1)
	assert.Equal(t, "pulse", rec.ToysLog[0].Data["pattern"])
}
