package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository interface for order operations. Orders are written inside the
// inventory confirmation transaction; CreateTx takes the caller's tx so the
// order and its tickets commit or roll back together.
type Repository interface {
	CreateTx(tx *gorm.DB, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	MarkPaidTx(tx *gorm.DB, id uuid.UUID, method, reference string) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new orders repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTx(tx *gorm.DB, order *Order) error {
	return tx.Create(order).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) MarkPaidTx(tx *gorm.DB, id uuid.UUID, method, reference string) error {
	now := time.Now().UTC()
	return tx.Model(&Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":            StatusPaid,
		"payment_method":    method,
		"payment_reference": reference,
		"paid_at":           now,
	}).Error
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       StatusCancelled,
		"cancelled_at": now,
	}).Error
}
