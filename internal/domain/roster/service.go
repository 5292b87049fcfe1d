package roster

import (
	"context"
	"errors"

	"potluck-app-go/internal/directory"
	"potluck-app-go/pkg/logger"

	"github.com/google/uuid"
)

// DirectoryClient is the read-only upstream the engine reconciles against.
type DirectoryClient interface {
	GetPeople(ctx context.Context, token string, page, perPage int, name string) (*directory.PeoplePage, error)
	GetPerson(ctx context.Context, token, id string) (*directory.Person, error)
	GetHouseholdPeople(ctx context.Context, token, id string) (*directory.Household, error)
}

type Service struct {
	repo Repository
	dir  DirectoryClient
	log  logger.Logger
}

func NewService(repo Repository, dir DirectoryClient, log logger.Logger) *Service {
	return &Service{repo: repo, dir: dir, log: log}
}

// SignUpHousehold fetches a household with its members from the directory
// and reconciles all of it into local state. The fetch happens before any
// transaction is opened; a fetch failure touches nothing locally.
func (s *Service) SignUpHousehold(ctx context.Context, orgID, token, externalHouseholdID string) (*Household, error) {
	ext, err := s.dir.GetHouseholdPeople(ctx, token, externalHouseholdID)
	if err != nil {
		return nil, err
	}
	return s.ReconcileHousehold(ctx, orgID, ext)
}

// ReconcileHousehold upserts the household (marking it signed up) and every
// nested member, keyed by external id, in a single transaction. The
// household row is written first so member rows can reference it.
func (s *Service) ReconcileHousehold(ctx context.Context, orgID string, ext *directory.Household) (*Household, error) {
	var result Household
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		household, err := s.upsertSignedUpHousehold(ctx, tx, orgID, ext)
		if err != nil {
			return err
		}
		for i := range ext.People {
			if err := s.upsertMember(ctx, tx, orgID, household.ID, &ext.People[i]); err != nil {
				return err
			}
		}
		result = *household
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("roster: household reconciled", "external_id", ext.ID, "members", len(ext.People))
	return &result, nil
}

func (s *Service) upsertSignedUpHousehold(ctx context.Context, tx Repository, orgID string, ext *directory.Household) (*Household, error) {
	existing, err := tx.GetHouseholdByExternalID(ctx, ext.ID)
	switch {
	case err == nil:
		existing.Name = ext.Name
		existing.AvatarURL = ext.AvatarURL
		existing.IsSignedUp = true
		// can_host is organization-local; profile sync never resets it.
		if err := tx.UpdateHousehold(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, ErrHouseholdNotFound):
		household := &Household{
			ID:             uuid.NewString(),
			ExternalID:     ext.ID,
			OrganizationID: orgID,
			Name:           ext.Name,
			AvatarURL:      ext.AvatarURL,
			IsSignedUp:     true,
			CanHost:        false,
		}
		if err := tx.CreateHousehold(ctx, household); err != nil {
			return nil, err
		}
		return household, nil
	default:
		return nil, err
	}
}

// upsertMember syncs one household member's profile. Signing up a household
// does not sign up its members individually, so is_signed_up and can_host
// stay untouched on update and default to false on insert.
func (s *Service) upsertMember(ctx context.Context, tx Repository, orgID, householdID string, ext *directory.Person) error {
	existing, err := tx.GetPersonByExternalID(ctx, ext.ID)
	switch {
	case err == nil:
		existing.Name = ext.Name
		existing.Email = ext.Email
		existing.Phone = ext.Phone
		existing.Address = addressJSON(ext.Address)
		existing.AvatarURL = ext.AvatarURL
		existing.IsChild = ext.IsChild
		existing.HouseholdID = &householdID
		return tx.UpdatePerson(ctx, existing)
	case errors.Is(err, ErrPersonNotFound):
		return tx.CreatePerson(ctx, &Person{
			ID:             uuid.NewString(),
			ExternalID:     ext.ID,
			OrganizationID: orgID,
			Name:           ext.Name,
			Email:          ext.Email,
			Phone:          ext.Phone,
			Address:        addressJSON(ext.Address),
			AvatarURL:      ext.AvatarURL,
			IsSignedUp:     false,
			CanHost:        false,
			IsChild:        ext.IsChild,
			HouseholdID:    &householdID,
		})
	default:
		return err
	}
}

// SignUpPerson fetches one person from the directory and reconciles them as
// signed up.
func (s *Service) SignUpPerson(ctx context.Context, orgID, token, externalPersonID string) (*Person, error) {
	ext, err := s.dir.GetPerson(ctx, token, externalPersonID)
	if err != nil {
		return nil, err
	}
	return s.ReconcilePerson(ctx, orgID, ext)
}

// ReconcilePerson resolves the person's organization (upserting it when the
// fetch carried one, otherwise requiring the caller's organization to
// exist), then upserts the person as signed up. Signing up a person does not
// change their household link.
func (s *Service) ReconcilePerson(ctx context.Context, orgID string, ext *directory.Person) (*Person, error) {
	var result Person
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		org, err := s.resolveOrganization(ctx, tx, orgID, ext.Organization)
		if err != nil {
			return err
		}

		existing, err := tx.GetPersonByExternalID(ctx, ext.ID)
		switch {
		case err == nil:
			existing.Name = ext.Name
			existing.Email = ext.Email
			existing.Phone = ext.Phone
			existing.Address = addressJSON(ext.Address)
			existing.AvatarURL = ext.AvatarURL
			existing.IsChild = ext.IsChild
			existing.IsSignedUp = true
			existing.OrganizationID = org.ID
			if err := tx.UpdatePerson(ctx, existing); err != nil {
				return err
			}
			result = *existing
			return nil
		case errors.Is(err, ErrPersonNotFound):
			person := &Person{
				ID:             uuid.NewString(),
				ExternalID:     ext.ID,
				OrganizationID: org.ID,
				Name:           ext.Name,
				Email:          ext.Email,
				Phone:          ext.Phone,
				Address:        addressJSON(ext.Address),
				AvatarURL:      ext.AvatarURL,
				IsSignedUp:     true,
				CanHost:        false,
				IsChild:        ext.IsChild,
			}
			if err := tx.CreatePerson(ctx, person); err != nil {
				return err
			}
			result = *person
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("roster: person reconciled", "external_id", ext.ID)
	return &result, nil
}

func (s *Service) resolveOrganization(ctx context.Context, tx Repository, orgID string, ext *directory.OrganizationRef) (*Organization, error) {
	if ext == nil {
		return tx.GetOrganizationByID(ctx, orgID)
	}

	existing, err := tx.GetOrganizationByExternalID(ctx, ext.ID)
	switch {
	case err == nil:
		existing.Name = ext.Name
		existing.AvatarURL = ext.AvatarURL
		if err := tx.UpdateOrganization(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, ErrOrganizationNotFound):
		org := &Organization{
			ID:         uuid.NewString(),
			ExternalID: ext.ID,
			Name:       ext.Name,
			AvatarURL:  ext.AvatarURL,
		}
		if err := tx.CreateOrganization(ctx, org); err != nil {
			return nil, err
		}
		return org, nil
	default:
		return nil, err
	}
}

// ReconcileLogin syncs the authenticated person's own records on login:
// organization (required), household when present, and the person's profile.
// Login is not a signup action, so no signup or host flag is touched.
func (s *Service) ReconcileLogin(ctx context.Context, me *directory.Person) (*Person, error) {
	if me.Organization == nil {
		return nil, ErrOrganizationRequired
	}

	var result Person
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		org, err := s.resolveOrganization(ctx, tx, "", me.Organization)
		if err != nil {
			return err
		}

		var householdID *string
		if me.Household != nil {
			household, err := s.upsertHouseholdProfile(ctx, tx, org.ID, me.Household)
			if err != nil {
				return err
			}
			householdID = &household.ID
		}

		existing, err := tx.GetPersonByExternalID(ctx, me.ID)
		switch {
		case err == nil:
			existing.Name = me.Name
			existing.Email = me.Email
			existing.Phone = me.Phone
			existing.Address = addressJSON(me.Address)
			existing.AvatarURL = me.AvatarURL
			existing.OrganizationID = org.ID
			if householdID != nil {
				existing.HouseholdID = householdID
			}
			if err := tx.UpdatePerson(ctx, existing); err != nil {
				return err
			}
			result = *existing
			return nil
		case errors.Is(err, ErrPersonNotFound):
			person := &Person{
				ID:             uuid.NewString(),
				ExternalID:     me.ID,
				OrganizationID: org.ID,
				Name:           me.Name,
				Email:          me.Email,
				Phone:          me.Phone,
				Address:        addressJSON(me.Address),
				AvatarURL:      me.AvatarURL,
				HouseholdID:    householdID,
			}
			if err := tx.CreatePerson(ctx, person); err != nil {
				return err
			}
			result = *person
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// upsertHouseholdProfile syncs household name/avatar only; unlike
// upsertSignedUpHousehold it never marks the household signed up.
func (s *Service) upsertHouseholdProfile(ctx context.Context, tx Repository, orgID string, ext *directory.HouseholdRef) (*Household, error) {
	existing, err := tx.GetHouseholdByExternalID(ctx, ext.ID)
	switch {
	case err == nil:
		existing.Name = ext.Name
		existing.AvatarURL = ext.AvatarURL
		if err := tx.UpdateHousehold(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, ErrHouseholdNotFound):
		household := &Household{
			ID:             uuid.NewString(),
			ExternalID:     ext.ID,
			OrganizationID: orgID,
			Name:           ext.Name,
			AvatarURL:      ext.AvatarURL,
		}
		if err := tx.CreateHousehold(ctx, household); err != nil {
			return nil, err
		}
		return household, nil
	default:
		return nil, err
	}
}
