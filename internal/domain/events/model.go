package events

import "time"

type PotluckSeries struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	OrganizationID string    `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null"`
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Potluck is one gathering in a series. The host is exactly one person or one
// household, stored as two nullable columns guarded by a CHECK constraint.
type Potluck struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	SeriesID        string    `gorm:"type:uuid;not null;index"`
	OrganizationID  string    `gorm:"type:uuid;not null;index"`
	Date            time.Time `gorm:"not null"`
	HostPersonID    *string   `gorm:"type:uuid"`
	HostHouseholdID *string   `gorm:"type:uuid;check:chk_potlucks_host,(host_person_id IS NULL) <> (host_household_id IS NULL)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (p *Potluck) Host() (EntityRef, error) {
	return refFromColumns(p.HostPersonID, p.HostHouseholdID)
}

type Attendance struct {
	ID                  string    `gorm:"type:uuid;primaryKey"`
	PotluckID           string    `gorm:"type:uuid;not null;index"`
	OrganizationID      string    `gorm:"type:uuid;not null;index"`
	AttendeePersonID    *string   `gorm:"type:uuid"`
	AttendeeHouseholdID *string   `gorm:"type:uuid;check:chk_attendances_attendee,(attendee_person_id IS NULL) <> (attendee_household_id IS NULL)"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}

func (a *Attendance) Attendee() (EntityRef, error) {
	return refFromColumns(a.AttendeePersonID, a.AttendeeHouseholdID)
}

// PairingHistory records who ate with whom. Each side is its own
// exactly-one pair; the two constraints are independent.
type PairingHistory struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	PotluckID        string    `gorm:"type:uuid;not null;index"`
	OrganizationID   string    `gorm:"type:uuid;not null;index"`
	HostPersonID     *string   `gorm:"type:uuid"`
	HostHouseholdID  *string   `gorm:"type:uuid;check:chk_pairings_host,(host_person_id IS NULL) <> (host_household_id IS NULL)"`
	GuestPersonID    *string   `gorm:"type:uuid"`
	GuestHouseholdID *string   `gorm:"type:uuid;check:chk_pairings_guest,(guest_person_id IS NULL) <> (guest_household_id IS NULL)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (p *PairingHistory) Host() (EntityRef, error) {
	return refFromColumns(p.HostPersonID, p.HostHouseholdID)
}

func (p *PairingHistory) Guest() (EntityRef, error) {
	return refFromColumns(p.GuestPersonID, p.GuestHouseholdID)
}
