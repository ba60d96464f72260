// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name  string         `json:"name" gorm:"size:255;not null"`
	Price float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Tags  pq.StringArray `json:"tags" gorm:"type:text[]"`

	// Relationships
	OrderItems []OrderItem `json:"order_items,omitempty" gorm:"foreignKey:ProductID"`
}
