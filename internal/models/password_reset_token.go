package models

import "time"

// PasswordResetToken stores hashed reset tokens with a short expiry window.
type PasswordResetToken struct {
	BaseModel

	UserID    string     `gorm:"type:uuid;not null;index" json:"userId"`
	TokenHash string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"index" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
}
