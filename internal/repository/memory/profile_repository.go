package memory

import (
	"context"

	"maplemed-support-be/internal/repository/contract"
	"maplemed-support-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ProfileRepository is the development profile store; it forgets
// everything on restart.
type ProfileRepository struct {
	cache *cache.Cache
}

var _ contract.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *ProfileRepository) FindByUserID(_ context.Context, userID string) (*store.Profile, error) {
	x, found := r.cache.Get(userID)
	if !found {
		return nil, nil
	}
	p := *x.(*store.Profile)
	p.Values = p.Values.Clone()
	p.Persistent = p.Persistent.Clone()
	return &p, nil
}

func (r *ProfileRepository) Save(_ context.Context, profile *store.Profile) error {
	p := *profile
	p.Values = profile.Values.Clone()
	p.Persistent = profile.Persistent.Clone()
	r.cache.Set(profile.UserID, &p, cache.NoExpiration)
	return nil
}

func (r *ProfileRepository) Delete(_ context.Context, userID string) error {
	r.cache.Delete(userID)
	return nil
}
