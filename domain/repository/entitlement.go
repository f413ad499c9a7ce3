package repository

import (
	"context"

	"stream-engage/domain/model"
)

// IEntitlement decides access for gated (invite/paywalled) streams. The rule
// itself lives outside this service; open access types never reach it.
type IEntitlement interface {
	Check(ctx context.Context, stream *model.Stream, userID string) (bool, error)
}
