package orders

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
	StatusRefunded  = "REFUNDED"
)

// Payment methods
const (
	PaymentCard     = "card"
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentCourtesy = "courtesy"
)

// Order groups the tickets of one purchase
type Order struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderNumber      string     `gorm:"uniqueIndex;not null" json:"order_number"`
	BuyerName        string     `json:"buyer_name"`
	BuyerEmail       string     `gorm:"index" json:"buyer_email"`
	BuyerPhone       string     `json:"buyer_phone,omitempty"`
	Subtotal         float64    `gorm:"not null;default:0" json:"subtotal"`
	Total            float64    `gorm:"not null;default:0" json:"total"`
	Currency         string     `gorm:"type:varchar(3)" json:"currency"`
	Status           string     `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
