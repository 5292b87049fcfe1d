package account

import "time"

// User binds a local person to their directory OAuth credential.
type User struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	PersonID       string `gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationID string `gorm:"type:uuid;not null;index"`
	AccessToken    string `gorm:"not null"`
	RefreshToken   *string
	TokenExpiresAt time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Credential is an immutable snapshot of a usable token set. Refreshing
// produces a new value; nothing hands out a mutable token mid-request.
type Credential struct {
	AccessToken  string
	RefreshToken *string
	ExpiresAt    time.Time
}

func (u *User) credential() Credential {
	return Credential{
		AccessToken:  u.AccessToken,
		RefreshToken: u.RefreshToken,
		ExpiresAt:    u.TokenExpiresAt,
	}
}
