package memory

import (
	"time"

	"maplemed-support-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps session memory in process; entries expire after
// the idle TTL, which is what ends a session when the client goes away.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// Save stores a copy of session and refreshes its TTL
func (r *SessionRepository) Save(session *store.Session) {
	cp := *session
	cp.Memory = session.Memory.Clone()
	r.cache.Set(session.ID, &cp, cache.DefaultExpiration)
}

// Get returns a copy so callers cannot mutate the cached value
func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	cp := *x.(*store.Session)
	cp.Memory = cp.Memory.Clone()
	return &cp, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
