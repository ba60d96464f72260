// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
