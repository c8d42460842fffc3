package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/persistence"
	"github.com/spec-kit/fieldops-service/internal/repository"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

const siteListCacheKey = "fieldops:sites:all"

// SiteService manages the site registry. The list read path goes through a
// redis cache invalidated on every mutation; the cache is optional and the
// service degrades to direct reads when it is unreachable.
type SiteService struct {
	sites      repository.SiteRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSiteService constructs the service.
func NewSiteService(sites repository.SiteRepository, cache *persistence.Redis, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *SiteService {
	return &SiteService{sites: sites, cache: cache, cacheTTL: cacheTTL, dispatcher: dispatcher, logger: logger}
}

// List returns all site records, cache-first.
func (s *SiteService) List(ctx context.Context, actor *auth.Principal) ([]domain.Site, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}
	list, err := s.sites.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.Site{}
	}
	s.storeList(ctx, list)
	return list, nil
}

// Get returns one site record.
func (s *SiteService) Get(ctx context.Context, actor *auth.Principal, id string) (*domain.Site, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("site", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return site, nil
}

// Create registers a new site.
func (s *SiteService) Create(ctx context.Context, actor *auth.Principal, site *domain.Site) (*domain.Site, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateList(ctx)
	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventSiteCreated,
		Payload: events.SitePayload{SiteID: site.ID, SiteName: site.SiteName},
	})
	return site, nil
}

// Update replaces a site record in place. Last writer wins; the record id is
// immutable.
func (s *SiteService) Update(ctx context.Context, actor *auth.Principal, id string, site *domain.Site) (*domain.Site, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	site.ID = id
	if err := s.sites.Update(ctx, site); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("site", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	s.invalidateList(ctx)
	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventSiteUpdated,
		Payload: events.SitePayload{SiteID: site.ID, SiteName: site.SiteName},
	})
	return site, nil
}

// Delete removes a site record.
func (s *SiteService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.sites.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("site", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	s.invalidateList(ctx)
	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventSiteDeleted,
		Payload: events.SitePayload{SiteID: id},
	})
	return nil
}

func (s *SiteService) cachedList(ctx context.Context) ([]domain.Site, bool) {
	raw, err := s.cache.GetBytes(ctx, siteListCacheKey)
	if err != nil {
		return nil, false
	}
	var list []domain.Site
	if err := json.Unmarshal(raw, &list); err != nil {
		s.logger.Warn("discarding malformed site list cache entry", zap.Error(err))
		s.invalidateList(ctx)
		return nil, false
	}
	return list, true
}

func (s *SiteService) storeList(ctx context.Context, list []domain.Site) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.SetBytes(ctx, siteListCacheKey, raw, s.cacheTTL); err != nil {
		s.logger.Debug("site list cache write failed", zap.Error(err))
	}
}

func (s *SiteService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, siteListCacheKey); err != nil {
		s.logger.Debug("site list cache invalidation failed", zap.Error(err))
	}
}

func (s *SiteService) publishEvent(ctx context.Context, actor *auth.Principal, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if actor != nil {
		event.Actor = events.Actor{UID: actor.UID, Email: actor.Email}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
