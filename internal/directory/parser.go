package directory

import "encoding/json"

// includedIndex holds per-type lookup maps built in a single pass over the
// envelope's included resources. Unknown resource types are skipped so new
// upstream types never break parsing.
type includedIndex struct {
	addresses     map[string]json.RawMessage
	emails        map[string]string
	phones        map[string]string
	organizations map[string]OrganizationRef
	households    map[string]HouseholdRef
}

func buildIncludedIndex(included []resource) *includedIndex {
	idx := &includedIndex{
		addresses:     make(map[string]json.RawMessage),
		emails:        make(map[string]string),
		phones:        make(map[string]string),
		organizations: make(map[string]OrganizationRef),
		households:    make(map[string]HouseholdRef),
	}

	for _, item := range included {
		if item.ID == "" {
			continue
		}
		switch item.Type {
		case "Address":
			if raw, err := json.Marshal(item.Attributes); err == nil {
				idx.addresses[item.ID] = raw
			}
		case "Email":
			if address, ok := item.lookupStringAttr("address"); ok {
				idx.emails[item.ID] = address
			}
		case "PhoneNumber":
			if number, ok := item.lookupStringAttr("number"); ok {
				idx.phones[item.ID] = number
			}
		case "Organization":
			idx.organizations[item.ID] = OrganizationRef{
				ID:        item.ID,
				Name:      item.stringAttr("name"),
				AvatarURL: item.stringAttrPtr("avatar_url"),
			}
		case "Household":
			idx.households[item.ID] = HouseholdRef{
				ID:        item.ID,
				Name:      item.stringAttr("name"),
				AvatarURL: item.stringAttrPtr("avatar"),
			}
		}
	}

	return idx
}

// parsePerson maps one root person resource onto a Person, resolving
// relationship ids through the included index. Multi-valued relationships
// (addresses, emails, phone numbers, households) resolve to their first
// linked id only; ids with no matching included entry yield absent fields.
func parsePerson(res resource, idx *includedIndex) (*Person, error) {
	if res.ID == "" || res.Attributes == nil {
		return nil, ErrMalformedResource
	}

	person := &Person{
		ID:        res.ID,
		Name:      res.stringAttr("name"),
		AvatarURL: res.stringAttrPtr("avatar"),
		IsChild:   res.boolAttr("child"),
	}

	if id, ok := res.Relationships["addresses"].first(); ok {
		if raw, ok := idx.addresses[id]; ok {
			person.Address = raw
		}
	}
	if id, ok := res.Relationships["emails"].first(); ok {
		if email, ok := idx.emails[id]; ok {
			person.Email = &email
		}
	}
	if id, ok := res.Relationships["phone_numbers"].first(); ok {
		if phone, ok := idx.phones[id]; ok {
			person.Phone = &phone
		}
	}
	if id, ok := res.Relationships["organization"].first(); ok {
		if org, ok := idx.organizations[id]; ok {
			person.Organization = &org
		}
	}
	if id, ok := res.Relationships["households"].first(); ok {
		if household, ok := idx.households[id]; ok {
			// Relationship parses never carry organization-local signup
			// state; it must stay cleared here.
			household.IsSignedUp = false
			person.Household = &household
		}
	}

	return person, nil
}

func parsePeoplePage(env listEnvelope, page int) *PeoplePage {
	idx := buildIncludedIndex(env.Included)

	people := make([]Person, 0, len(env.Data))
	for _, res := range env.Data {
		person, err := parsePerson(res, idx)
		if err != nil {
			// Tolerate individual malformed records on page fetches.
			continue
		}
		people = append(people, *person)
	}

	return &PeoplePage{
		People:     people,
		TotalCount: env.Meta.TotalCount,
		Count:      env.Meta.Count,
		Page:       page,
	}
}

func parseSinglePerson(env singleEnvelope) (*Person, error) {
	return parsePerson(env.Data, buildIncludedIndex(env.Included))
}

// parseHouseholdPeople interprets a household-members envelope: the
// household itself is identified by meta.parent and described by its
// included record, the data list holds the member people.
func parseHouseholdPeople(env listEnvelope) (*Household, error) {
	if env.Meta.Parent == nil || env.Meta.Parent.ID == "" {
		return nil, ErrMalformedResource
	}

	idx := buildIncludedIndex(env.Included)

	household := &Household{ID: env.Meta.Parent.ID}
	if ref, ok := idx.households[household.ID]; ok {
		household.Name = ref.Name
		household.AvatarURL = ref.AvatarURL
	}

	household.People = make([]Person, 0, len(env.Data))
	for _, res := range env.Data {
		person, err := parsePerson(res, idx)
		if err != nil {
			continue
		}
		household.People = append(household.People, *person)
	}

	return household, nil
}
