package directory

import "encoding/json"

// Person is a fully dereferenced directory person. IsSignedUp is
// organization-local state: the parser always leaves it false, only the
// roster read path fills it in.
type Person struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	AvatarURL    *string          `json:"avatar_url"`
	Email        *string          `json:"email"`
	Phone        *string          `json:"phone"`
	Address      json.RawMessage  `json:"address,omitempty"`
	IsChild      bool             `json:"is_child"`
	IsSignedUp   bool             `json:"is_signed_up"`
	Household    *HouseholdRef    `json:"household,omitempty"`
	Organization *OrganizationRef `json:"organization,omitempty"`
}

// HouseholdRef is a household seen through a person's relationship block.
type HouseholdRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AvatarURL  *string `json:"avatar_url"`
	IsSignedUp bool    `json:"is_signed_up"`
}

type OrganizationRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Household is a directory household fetched together with its members.
type Household struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	AvatarURL *string  `json:"avatar_url"`
	People    []Person `json:"people"`
}

type PeoplePage struct {
	People     []Person `json:"people"`
	TotalCount int      `json:"total_count"`
	Count      int      `json:"count"`
	Page       int      `json:"page"`
}

// HasMore reports whether another page exists past the given running offset,
// using the totals reported by the upstream source.
func (p *PeoplePage) HasMore(offset int) bool {
	return offset+p.Count < p.TotalCount
}
