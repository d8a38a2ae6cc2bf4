package smstpl

import (
	"context"
	"time"

	"github.com/mensahq/sukuu/core"
)

type (
	Repository interface {
		FetchTemplateSet(ctx context.Context) (TemplateSet, error)
	}

	// Service fronts the template sheet with a short-TTL cache: templates
	// change rarely but are read on every outgoing message. Within the TTL
	// window stale-but-present beats most-correct.
	Service struct {
		repo   Repository
		cache  *core.TTLCache[TemplateSet]
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		cache:  core.NewTTLCache[TemplateSet](ttl),
		logger: logger,
	}
}

// Get returns the current template set. Resolution order: fresh cache entry,
// then a refetch; on refetch failure the previous (stale) entry if any; the
// compiled-in defaults only when nothing was ever cached.
func (svc *Service) Get(ctx context.Context) TemplateSet {
	if ts, ok := svc.cache.Get(); ok {
		return ts
	}

	ts, err := svc.repo.FetchTemplateSet(ctx)
	if err != nil {
		svc.logger.Warn("sms templates refresh failed, serving previous", err)
		if prev, ok := svc.cache.Peek(); ok {
			return prev
		}
		return Defaults
	}

	ts = ts.Merge(Defaults)
	svc.cache.Set(ts)
	return ts
}

// Clear drops the cache so the next Get refetches; used after the admin
// edits templates.
func (svc *Service) Clear() {
	svc.cache.Clear()
}

// SetNowFunc lets tests drive the cache clock.
func (svc *Service) SetNowFunc(now func() time.Time) {
	svc.cache.NowFunc = now
}
