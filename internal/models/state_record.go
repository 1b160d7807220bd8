package models

import "time"

// StateRecord is one namespaced, serialized document of durable app state.
type StateRecord struct {
	Namespace string `gorm:"primaryKey;size:120"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
