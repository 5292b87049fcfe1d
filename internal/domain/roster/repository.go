package roster

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetOrganizationByID(ctx context.Context, id string) (*Organization, error)
	GetOrganizationByExternalID(ctx context.Context, externalID string) (*Organization, error)
	CreateOrganization(ctx context.Context, org *Organization) error
	UpdateOrganization(ctx context.Context, org *Organization) error

	GetHouseholdByID(ctx context.Context, id string) (*Household, error)
	GetHouseholdByExternalID(ctx context.Context, externalID string) (*Household, error)
	CreateHousehold(ctx context.Context, household *Household) error
	UpdateHousehold(ctx context.Context, household *Household) error
	ListHouseholds(ctx context.Context, organizationID string) ([]Household, error)
	FindHouseholdsByExternalIDs(ctx context.Context, externalIDs []string) ([]Household, error)

	GetPersonByID(ctx context.Context, id string) (*Person, error)
	GetPersonByExternalID(ctx context.Context, externalID string) (*Person, error)
	CreatePerson(ctx context.Context, person *Person) error
	UpdatePerson(ctx context.Context, person *Person) error
	ListPeopleWithoutHousehold(ctx context.Context, organizationID string) ([]Person, error)
	FindPeopleByExternalIDs(ctx context.Context, externalIDs []string) ([]Person, error)
}
