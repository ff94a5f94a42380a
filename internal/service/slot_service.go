package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

const slotCatalogCacheKey = "slots:catalog"

type slotCatalogReader interface {
	List(ctx context.Context) ([]models.Slot, error)
	FindByID(ctx context.Context, id string) (*models.Slot, error)
}

// SlotService serves the slot catalogue. The catalogue is reference data
// that changes rarely, so reads go through the cache when enabled.
type SlotService struct {
	slots    slotCatalogReader
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSlotService constructs the service.
func NewSlotService(slots slotCatalogReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{slots: slots, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns all slots, cache-first.
func (s *SlotService) List(ctx context.Context) ([]models.Slot, error) {
	var cached []models.Slot
	if hit, err := s.cache.Get(ctx, slotCatalogCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}

	_ = s.cache.Set(ctx, slotCatalogCacheKey, slots, s.cacheTTL)
	return slots, nil
}

// Get returns one slot.
func (s *SlotService) Get(ctx context.Context, id string) (*models.Slot, error) {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	return slot, nil
}
