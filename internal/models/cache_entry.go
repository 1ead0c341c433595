package models

import "time"

// CacheEntry represents a counter or cached value stored in the database,
// used by the rate limiter when no external cache is configured.
type CacheEntry struct {
	Key       string    `gorm:"primaryKey;size:256"`
	Value     []byte    `gorm:"type:blob"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
