package roster

import (
	"context"
	"errors"

	rosterdomain "potluck-app-go/internal/domain/roster"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(rosterdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetOrganizationByID(ctx context.Context, id string) (*rosterdomain.Organization, error) {
	var org rosterdomain.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *PostgresRepository) GetOrganizationByExternalID(ctx context.Context, externalID string) (*rosterdomain.Organization, error) {
	var org rosterdomain.Organization
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *PostgresRepository) CreateOrganization(ctx context.Context, org *rosterdomain.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *PostgresRepository) UpdateOrganization(ctx context.Context, org *rosterdomain.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *PostgresRepository) GetHouseholdByID(ctx context.Context, id string) (*rosterdomain.Household, error) {
	var household rosterdomain.Household
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrHouseholdNotFound
		}
		return nil, err
	}
	return &household, nil
}

func (r *PostgresRepository) GetHouseholdByExternalID(ctx context.Context, externalID string) (*rosterdomain.Household, error) {
	var household rosterdomain.Household
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrHouseholdNotFound
		}
		return nil, err
	}
	return &household, nil
}

func (r *PostgresRepository) CreateHousehold(ctx context.Context, household *rosterdomain.Household) error {
	return r.db.WithContext(ctx).Omit("People").Create(household).Error
}

func (r *PostgresRepository) UpdateHousehold(ctx context.Context, household *rosterdomain.Household) error {
	return r.db.WithContext(ctx).Omit("People").Save(household).Error
}

func (r *PostgresRepository) ListHouseholds(ctx context.Context, organizationID string) ([]rosterdomain.Household, error) {
	var households []rosterdomain.Household
	if err := r.db.WithContext(ctx).
		Preload("People", func(db *gorm.DB) *gorm.DB {
			return db.Order("people.name asc")
		}).
		Where("organization_id = ?", organizationID).
		Order("name asc").
		Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

func (r *PostgresRepository) FindHouseholdsByExternalIDs(ctx context.Context, externalIDs []string) ([]rosterdomain.Household, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var households []rosterdomain.Household
	if err := r.db.WithContext(ctx).Where("external_id IN ?", externalIDs).Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

func (r *PostgresRepository) GetPersonByID(ctx context.Context, id string) (*rosterdomain.Person, error) {
	var person rosterdomain.Person
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PostgresRepository) GetPersonByExternalID(ctx context.Context, externalID string) (*rosterdomain.Person, error) {
	var person rosterdomain.Person
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterdomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PostgresRepository) CreatePerson(ctx context.Context, person *rosterdomain.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *PostgresRepository) UpdatePerson(ctx context.Context, person *rosterdomain.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *PostgresRepository) ListPeopleWithoutHousehold(ctx context.Context, organizationID string) ([]rosterdomain.Person, error) {
	var people []rosterdomain.Person
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND household_id IS NULL", organizationID).
		Order("name asc").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *PostgresRepository) FindPeopleByExternalIDs(ctx context.Context, externalIDs []string) ([]rosterdomain.Person, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var people []rosterdomain.Person
	if err := r.db.WithContext(ctx).Where("external_id IN ?", externalIDs).Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}
