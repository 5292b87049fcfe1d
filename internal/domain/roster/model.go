package roster

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Organization is the tenant boundary. ExternalID is the immutable key the
// upstream directory assigns; every reconciliation decision keys on it.
type Organization struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	ExternalID string `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"not null"`
	AvatarURL  *string
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type Household struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	ExternalID     string `gorm:"not null;uniqueIndex"`
	OrganizationID string `gorm:"type:uuid;not null;index"`
	Name           string `gorm:"not null"`
	AvatarURL      *string
	IsSignedUp     bool      `gorm:"not null;default:false"`
	CanHost        bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	People []Person `gorm:"foreignKey:HouseholdID;references:ID"`
}

type Person struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	ExternalID     string `gorm:"not null;uniqueIndex"`
	OrganizationID string `gorm:"type:uuid;not null;index"`
	Name           string `gorm:"not null"`
	Email          *string
	Phone          *string
	Address        datatypes.JSON `gorm:"not null"`
	AvatarURL      *string
	IsSignedUp     bool      `gorm:"not null;default:false"`
	CanHost        bool      `gorm:"not null;default:false"`
	IsChild        bool      `gorm:"not null;default:false"`
	HouseholdID    *string   `gorm:"type:uuid;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Roster is the local directory view: households with their members plus
// people that belong to no household.
type Roster struct {
	Households  []Household
	LoosePeople []Person
}

// addressJSON normalizes an upstream address to the stored column value; a
// person without an address keeps an empty JSON object, not NULL.
func addressJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
