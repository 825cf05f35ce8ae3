package memory

import (
	"time"

	"primoboost-be/internal/shell"

	"github.com/patrickmn/go-cache"
)

// ShellSessionRepository keeps live shell event loops keyed by session id.
// Evicted or expired entries have their loops stopped so no goroutine
// outlives its session.
type ShellSessionRepository struct {
	cache *cache.Cache
}

func NewShellSessionRepository() *ShellSessionRepository {
	// Sessions idle for an hour expire; expired items are purged every
	// 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	c.OnEvicted(func(key string, value interface{}) {
		if s, ok := value.(*shell.Shell); ok {
			s.Stop()
		}
	})
	return &ShellSessionRepository{
		cache: c,
	}
}

func (r *ShellSessionRepository) Save(s *shell.Shell) {
	r.cache.Set(s.Id().String(), s, cache.DefaultExpiration)
}

func (r *ShellSessionRepository) Get(sessionId string) (*shell.Shell, bool) {
	if x, found := r.cache.Get(sessionId); found {
		// Touch the entry so active sessions keep sliding forward.
		r.cache.Set(sessionId, x, cache.DefaultExpiration)
		return x.(*shell.Shell), true
	}
	return nil, false
}

func (r *ShellSessionRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
