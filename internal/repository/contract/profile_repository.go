package contract

import (
	"context"

	"maplemed-support-be/pkg/store"
)

// ProfileRepository stores the per-user profile between sessions.
// FindByUserID returns (nil, nil) when the user has no profile yet.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*store.Profile, error)
	Save(ctx context.Context, profile *store.Profile) error
	Delete(ctx context.Context, userID string) error
}
