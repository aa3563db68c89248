package domain

import "time"

// ErrorLog is a server error captured by the HTTP layer.
type ErrorLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Stack     string    `json:"stack" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
