package models

import "time"

// Base is the base model for all entities. IDs are auto-increment
// integers assigned by the store on insert. Rows are hard-deleted so
// unique keys stay reusable after a delete.
type Base struct {
	ID        uint      `json:"id"       gorm:"primaryKey"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}
