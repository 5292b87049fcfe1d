package events

// RefKind names the side of a person-or-household reference.
type RefKind string

const (
	RefPerson    RefKind = "person"
	RefHousehold RefKind = "household"
)

// EntityRef points at exactly one person or one household. The zero value is
// invalid; construct through PersonRef/HouseholdRef.
type EntityRef struct {
	Kind RefKind
	ID   string
}

func PersonRef(id string) EntityRef {
	return EntityRef{Kind: RefPerson, ID: id}
}

func HouseholdRef(id string) EntityRef {
	return EntityRef{Kind: RefHousehold, ID: id}
}

func (r EntityRef) Validate() error {
	if r.ID == "" {
		return ErrInvalidEntityRef
	}
	switch r.Kind {
	case RefPerson, RefHousehold:
		return nil
	default:
		return ErrInvalidEntityRef
	}
}

// refColumns splits a validated ref into the two nullable columns the store
// uses. Callers validate first.
func refColumns(r EntityRef) (personID, householdID *string) {
	id := r.ID
	if r.Kind == RefPerson {
		return &id, nil
	}
	return nil, &id
}

// refFromColumns rebuilds a ref from stored columns. A row where both or
// neither side is set violates the exactly-one constraint and is surfaced as
// ErrInvalidEntityRef instead of being normalized away.
func refFromColumns(personID, householdID *string) (EntityRef, error) {
	switch {
	case personID != nil && householdID == nil:
		return EntityRef{Kind: RefPerson, ID: *personID}, nil
	case personID == nil && householdID != nil:
		return EntityRef{Kind: RefHousehold, ID: *householdID}, nil
	default:
		return EntityRef{}, ErrInvalidEntityRef
	}
}
