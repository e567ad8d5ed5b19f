package repository

import (
	"context"
	"time"

	"github.com/careerforge/interview-backend/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

var _ SessionRepository = &CachedSessionRepository{}

// CachedSessionRepository wraps a SessionRepository with an in-process
// read-through cache. Active sessions are read on every answer, so the hot
// path avoids a database round trip. All writes go through to the backing
// store first; the cache is only updated with what the store returned.
//
// The cache stores and serves deep copies. A caller mutating a session it
// read can never change the cached state, so a failed persist leaves the
// cache aligned with the durable store and the turn can be retried.
type CachedSessionRepository struct {
	inner SessionRepository
	cache *gocache.Cache
}

func NewCachedSessionRepository(inner SessionRepository, ttl, cleanup time.Duration) *CachedSessionRepository {
	return &CachedSessionRepository{
		inner: inner,
		cache: gocache.New(ttl, cleanup),
	}
}

func (r *CachedSessionRepository) CreateSession(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	created, err := r.inner.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(created.ID, created.Clone())
	return created, nil
}

func (r *CachedSessionRepository) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	if cached, found := r.cache.Get(id); found {
		if session, ok := cached.(*entity.Session); ok {
			return session.Clone(), nil
		}
	}

	session, err := r.inner.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(session.ID, session.Clone())
	return session, nil
}

func (r *CachedSessionRepository) UpdateSessionProgress(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	updated, err := r.inner.UpdateSessionProgress(ctx, session)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(updated.ID, updated.Clone())
	return updated, nil
}

func (r *CachedSessionRepository) UpdateSessionReport(ctx context.Context, id string, report *entity.FeedbackReport) (*entity.Session, error) {
	updated, err := r.inner.UpdateSessionReport(ctx, id, report)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(updated.ID, updated.Clone())
	return updated, nil
}

// ListSessions always hits the backing store. Listings are not on the hot
// path and caching them would serve stale history rows.
func (r *CachedSessionRepository) ListSessions(ctx context.Context, limit, offset int) ([]entity.Session, error) {
	return r.inner.ListSessions(ctx, limit, offset)
}
