package models

// User is an identity record. The password column always holds a bcrypt
// hash; plaintext never crosses the service boundary.
type User struct {
	BaseModel

	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Username is optional. It stays NULL when unset so the unique index
	// never collides across accounts that registered without one.
	Username *string `gorm:"uniqueIndex" json:"username,omitempty"`
	Name     string  `json:"name"`
	Password string  `gorm:"not null" json:"-"`

	EmailVerified bool `gorm:"default:false" json:"emailVerified"`
}
