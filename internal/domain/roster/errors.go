package roster

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrHouseholdNotFound    = errors.New("household not found")
	ErrPersonNotFound       = errors.New("person not found")
	ErrOrganizationRequired = errors.New("directory person carries no organization")
)
