package pricing

import (
	"context"
	"errors"
	"fmt"

	"boletera/internal/shared/constants"
	"boletera/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTierNotFound = errors.New("price tier not found")

// Service interface for pricing operations
type Service interface {
	// ResolverForEvent loads the event's tiers (cache-aside) and builds a
	// resolver snapshot for repeated lookups.
	ResolverForEvent(ctx context.Context, eventID uuid.UUID) (*Resolver, error)

	ResolveForSeat(ctx context.Context, eventID uuid.UUID, seatCtx SeatContext) (Quote, error)
	ResolveForTier(ctx context.Context, eventID, tierID uuid.UUID) (Quote, error)

	ListTiers(ctx context.Context, eventID uuid.UUID) ([]PriceTier, error)
	CreateTier(ctx context.Context, req CreateTierRequest) (*PriceTier, error)
	UpdateTier(ctx context.Context, id uuid.UUID, req UpdateTierRequest) (*PriceTier, error)
	DeleteTier(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo            Repository
	cache           cache.Service
	defaultCurrency string
}

// NewService creates a new pricing service
func NewService(repo Repository, cacheService cache.Service, defaultCurrency string) Service {
	return &service{
		repo:            repo,
		cache:           cacheService,
		defaultCurrency: defaultCurrency,
	}
}

func (s *service) ResolverForEvent(ctx context.Context, eventID uuid.UUID) (*Resolver, error) {
	tiers, err := s.loadTiers(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return NewResolver(tiers, s.defaultCurrency), nil
}

func (s *service) ResolveForSeat(ctx context.Context, eventID uuid.UUID, seatCtx SeatContext) (Quote, error) {
	resolver, err := s.ResolverForEvent(ctx, eventID)
	if err != nil {
		return Quote{}, err
	}
	return resolver.ResolveForSeat(seatCtx), nil
}

func (s *service) ResolveForTier(ctx context.Context, eventID, tierID uuid.UUID) (Quote, error) {
	resolver, err := s.ResolverForEvent(ctx, eventID)
	if err != nil {
		return Quote{}, err
	}
	quote, ok := resolver.ResolveForTier(tierID)
	if !ok {
		return Quote{}, ErrTierNotFound
	}
	return quote, nil
}

func (s *service) ListTiers(ctx context.Context, eventID uuid.UUID) ([]PriceTier, error) {
	return s.loadTiers(ctx, eventID)
}

func (s *service) CreateTier(ctx context.Context, req CreateTierRequest) (*PriceTier, error) {
	tier := &PriceTier{
		EventID:   req.EventID,
		SessionID: req.SessionID,
		ZoneID:    req.ZoneID,
		SectionID: req.SectionID,
		SeatType:  req.SeatType,
		Label:     req.Label,
		Price:     req.Price,
		Fee:       req.Fee,
		Currency:  req.Currency,
		Capacity:  req.Capacity,
		IsDefault: req.IsDefault,
	}
	if tier.Currency == "" {
		tier.Currency = s.defaultCurrency
	}

	if err := s.repo.Create(ctx, tier); err != nil {
		return nil, fmt.Errorf("failed to create price tier: %w", err)
	}

	s.invalidate(ctx, tier.EventID)
	return tier, nil
}

func (s *service) UpdateTier(ctx context.Context, id uuid.UUID, req UpdateTierRequest) (*PriceTier, error) {
	tier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Fee != nil {
		updates["fee"] = *req.Fee
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update price tier: %w", err)
		}
	}

	s.invalidate(ctx, tier.EventID)
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteTier(ctx context.Context, id uuid.UUID) error {
	tier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTierNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete price tier: %w", err)
	}

	s.invalidate(ctx, tier.EventID)
	return nil
}

func (s *service) loadTiers(ctx context.Context, eventID uuid.UUID) ([]PriceTier, error) {
	var tiers []PriceTier
	key := constants.BuildPriceTiersKey(eventID.String())
	err := s.cache.GetOrSet(ctx, key, constants.TTL_PRICE_TIERS, func() (interface{}, error) {
		return s.repo.GetByEventID(ctx, eventID)
	}, &tiers)
	if err != nil {
		return nil, fmt.Errorf("failed to load price tiers: %w", err)
	}
	return tiers, nil
}

func (s *service) invalidate(ctx context.Context, eventID uuid.UUID) {
	_ = s.cache.Delete(ctx, constants.BuildPriceTiersKey(eventID.String()))
}
