package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for price tier operations
type Repository interface {
	Create(ctx context.Context, tier *PriceTier) error
	GetByID(ctx context.Context, id uuid.UUID) (*PriceTier, error)

	// GetByEventID returns all tiers of an event ordered most recently
	// updated first, which is the order the resolver's dedupe depends on.
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]PriceTier, error)

	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new pricing repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tier *PriceTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*PriceTier, error) {
	var tier PriceTier
	err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]PriceTier, error) {
	var tiers []PriceTier
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("updated_at DESC").
		Find(&tiers).Error
	return tiers, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&PriceTier{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&PriceTier{}, "id = ?", id).Error
}
