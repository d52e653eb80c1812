package memory

import (
	"time"

	"placement-mentor-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps open mentor sessions in memory. Idle sessions
// expire after an hour; a closed panel that never said goodbye is reclaimed
// by the purge cycle.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.MentorSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.MentorSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.MentorSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
