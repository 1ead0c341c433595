package models

import "time"

// EmailVerification stores hashed verification tokens issued at signup.
// Tokens are single-use: VerifiedAt is set exactly once.
type EmailVerification struct {
	BaseModel

	UserID     string     `gorm:"type:uuid;not null;index" json:"userId"`
	TokenHash  string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"index" json:"expiresAt"`
	VerifiedAt *time.Time `json:"verifiedAt"`
}
