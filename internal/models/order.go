// internal/models/order.go
package models

import (
	"time"
)

type Order struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots the unit price at order time, so later product price
// changes never affect existing orders.
type OrderItem struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   int64   `json:"order_id" gorm:"not null;index"`
	ProductID int64   `json:"product_id" gorm:"not null;index"`
	Quantity  float64 `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
