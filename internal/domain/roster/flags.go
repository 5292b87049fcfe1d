package roster

import "context"

// Flag toggles flip the organization-local signup/host booleans by local id.
// These are the only writes that touch the flags outside of signup
// reconciliation.

func (s *Service) TogglePersonSignup(ctx context.Context, personID string) (*Person, error) {
	person, err := s.repo.GetPersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	person.IsSignedUp = !person.IsSignedUp
	if err := s.repo.UpdatePerson(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *Service) TogglePersonHost(ctx context.Context, personID string) (*Person, error) {
	person, err := s.repo.GetPersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	person.CanHost = !person.CanHost
	if err := s.repo.UpdatePerson(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *Service) ToggleHouseholdSignup(ctx context.Context, householdID string) (*Household, error) {
	household, err := s.repo.GetHouseholdByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	household.IsSignedUp = !household.IsSignedUp
	if err := s.repo.UpdateHousehold(ctx, household); err != nil {
		return nil, err
	}
	return household, nil
}

func (s *Service) ToggleHouseholdHost(ctx context.Context, householdID string) (*Household, error) {
	household, err := s.repo.GetHouseholdByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	household.CanHost = !household.CanHost
	if err := s.repo.UpdateHousehold(ctx, household); err != nil {
		return nil, err
	}
	return household, nil
}
