package events

import (
	"context"
	"errors"

	eventsdomain "potluck-app-go/internal/domain/events"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(eventsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetSeriesByID(ctx context.Context, id string) (*eventsdomain.PotluckSeries, error) {
	var series eventsdomain.PotluckSeries
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventsdomain.ErrSeriesNotFound
		}
		return nil, err
	}
	return &series, nil
}

func (r *PostgresRepository) CreateSeries(ctx context.Context, series *eventsdomain.PotluckSeries) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *PostgresRepository) ListSeries(ctx context.Context, organizationID string) ([]eventsdomain.PotluckSeries, error) {
	var series []eventsdomain.PotluckSeries
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("start_date asc").
		Find(&series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

func (r *PostgresRepository) GetPotluckByID(ctx context.Context, id string) (*eventsdomain.Potluck, error) {
	var potluck eventsdomain.Potluck
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&potluck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventsdomain.ErrPotluckNotFound
		}
		return nil, err
	}
	return &potluck, nil
}

func (r *PostgresRepository) CreatePotluck(ctx context.Context, potluck *eventsdomain.Potluck) error {
	return r.db.WithContext(ctx).Create(potluck).Error
}

func (r *PostgresRepository) ListPotlucks(ctx context.Context, seriesID string) ([]eventsdomain.Potluck, error) {
	var potlucks []eventsdomain.Potluck
	if err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("date asc").
		Find(&potlucks).Error; err != nil {
		return nil, err
	}
	return potlucks, nil
}

func (r *PostgresRepository) CreateAttendance(ctx context.Context, attendance *eventsdomain.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *PostgresRepository) ListAttendance(ctx context.Context, potluckID string) ([]eventsdomain.Attendance, error) {
	var attendances []eventsdomain.Attendance
	if err := r.db.WithContext(ctx).
		Where("potluck_id = ?", potluckID).
		Order("created_at asc").
		Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *PostgresRepository) CreatePairing(ctx context.Context, pairing *eventsdomain.PairingHistory) error {
	return r.db.WithContext(ctx).Create(pairing).Error
}

func (r *PostgresRepository) ListPairings(ctx context.Context, potluckID string) ([]eventsdomain.PairingHistory, error) {
	var pairings []eventsdomain.PairingHistory
	if err := r.db.WithContext(ctx).
		Where("potluck_id = ?", potluckID).
		Order("created_at asc").
		Find(&pairings).Error; err != nil {
		return nil, err
	}
	return pairings, nil
}
