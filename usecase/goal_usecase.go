package usecase

import (
	"context"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"
	"stream-engage/infrastructure/event"
)

// IGoalUsecase evaluates funding-goal progress against the stream's targets.
// Goals are created elsewhere; only progress and achieved mutate here.
type IGoalUsecase interface {
	SetGoalProgress(ctx context.Context, streamID, goalID string, amount float64) (*model.Goal, error)
}

type goalUsecase struct {
	streamRepo repository.IStream
	sink       event.IEventSink
}

func NewGoalUsecase(streamRepo repository.IStream, sink event.IEventSink) IGoalUsecase {
	return &goalUsecase{streamRepo: streamRepo, sink: sink}
}

func (u *goalUsecase) SetGoalProgress(ctx context.Context, streamID, goalID string, amount float64) (*model.Goal, error) {
	if amount < 0 {
		return nil, model.NewValidationError("amount", "must not be negative")
	}

	stream, err := u.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return nil, err
	}
	goal := stream.FindGoal(goalID)
	if goal == nil {
		return nil, model.ErrGoalNotFound
	}

	achieved := amount >= goal.Target
	// Positional update touches only the matched goal; siblings stay intact.
	if err := u.streamRepo.SetGoalProgress(ctx, streamID, goalID, amount, achieved); err != nil {
		return nil, err
	}

	u.sink.Emit("goal.progress", map[string]interface{}{
		"stream_id": streamID, "goal_id": goalID, "progress": amount, "achieved": achieved,
	})

	updated := *goal
	updated.Progress = amount
	updated.Achieved = achieved
	return &updated, nil
}
