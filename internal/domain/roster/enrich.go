package roster

import (
	"context"

	"potluck-app-go/internal/directory"
)

// SearchPeople fetches one directory page and annotates it with local
// signup state. Browsing the directory never writes anything.
func (s *Service) SearchPeople(ctx context.Context, token string, page, perPage int, name string) (*directory.PeoplePage, error) {
	result, err := s.dir.GetPeople(ctx, token, page, perPage, name)
	if err != nil {
		return nil, err
	}
	if err := s.AnnotateSignupStatus(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AnnotateSignupStatus merges the organization-local is_signed_up flag onto
// an externally fetched page using two set-membership reads. Records with no
// local counterpart stay at the default "not signed up".
func (s *Service) AnnotateSignupStatus(ctx context.Context, page *directory.PeoplePage) error {
	if page == nil || len(page.People) == 0 {
		return nil
	}

	personIDs := make([]string, 0, len(page.People))
	householdIDs := make([]string, 0, len(page.People))
	seenHouseholds := make(map[string]struct{})
	for i := range page.People {
		personIDs = append(personIDs, page.People[i].ID)
		if household := page.People[i].Household; household != nil {
			if _, ok := seenHouseholds[household.ID]; !ok {
				seenHouseholds[household.ID] = struct{}{}
				householdIDs = append(householdIDs, household.ID)
			}
		}
	}

	people, err := s.repo.FindPeopleByExternalIDs(ctx, personIDs)
	if err != nil {
		return err
	}
	signedUpPeople := make(map[string]bool, len(people))
	for i := range people {
		signedUpPeople[people[i].ExternalID] = people[i].IsSignedUp
	}

	signedUpHouseholds := make(map[string]bool)
	if len(householdIDs) > 0 {
		households, err := s.repo.FindHouseholdsByExternalIDs(ctx, householdIDs)
		if err != nil {
			return err
		}
		for i := range households {
			signedUpHouseholds[households[i].ExternalID] = households[i].IsSignedUp
		}
	}

	for i := range page.People {
		person := &page.People[i]
		person.IsSignedUp = signedUpPeople[person.ID]
		if person.Household != nil {
			person.Household.IsSignedUp = signedUpHouseholds[person.Household.ID]
		}
	}

	return nil
}

// GetPerson reads one local person row by id.
func (s *Service) GetPerson(ctx context.Context, personID string) (*Person, error) {
	return s.repo.GetPersonByID(ctx, personID)
}

// ListRoster returns the local directory view: households (with members)
// ordered by name, then people without a household.
func (s *Service) ListRoster(ctx context.Context, organizationID string) (*Roster, error) {
	households, err := s.repo.ListHouseholds(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	loose, err := s.repo.ListPeopleWithoutHousehold(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &Roster{Households: households, LoosePeople: loose}, nil
}
