package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"statement-chat-be/internal/entity"
)

// SessionRepository keeps sessions in process memory only. Nothing
// survives a restart; idle sessions expire after the configured TTL.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.Session) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*entity.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
