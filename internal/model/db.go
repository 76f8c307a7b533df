package model

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

type Order struct {
	OrderID string `gorm:"primaryKey;size:64;not null" json:"orderId"` // CH-<millis>-<uuid8>
	// Authoritative status, owned by the webhook path: pending, paid, failed
	Status string `gorm:"size:16;index;not null" json:"status"`
	// Optimistic status reported by the storefront after the Snap popup closes.
	// Never a source of truth for whether payment was received.
	ClientReportedStatus string `gorm:"size:16" json:"clientReportedStatus,omitempty"`

	TotalAmount int64  `gorm:"not null" json:"totalAmount"` // whole IDR
	Currency    string `gorm:"size:8;not null" json:"currency"`

	// Buyer contact snapshot taken at checkout time
	CustomerName  string `gorm:"size:128" json:"customerName"`
	CustomerEmail string `gorm:"size:128" json:"customerEmail"`
	CustomerPhone string `gorm:"size:32" json:"customerPhone"`

	// Gateway-supplied audit fields, present only after a webhook update
	TransactionID     string `gorm:"size:64;index" json:"transactionId,omitempty"`
	TransactionStatus string `gorm:"size:32" json:"transactionStatus,omitempty"`
	StatusCode        string `gorm:"size:8" json:"statusCode,omitempty"`

	SentToAdmin bool       `gorm:"not null;default:false" json:"sentToAdmin"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"orderDetails"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// FK → orders.order_id
	OrderID   string `gorm:"size:64;index;not null" json:"-"`
	ProductID string `gorm:"size:64;index;not null" json:"productId"`
	Name      string `gorm:"size:128;not null" json:"name"`
	Quantity  int32  `gorm:"not null" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"price"`
	Subtotal  int64  `gorm:"not null" json:"subtotal"`

	CreatedAt time.Time `json:"-"`
}

// WebhookEvent records gateway deliveries that were already applied. Midtrans
// sends no event id, so the key is <order_id>:<transaction_id>:<transaction_status>.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:160;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
