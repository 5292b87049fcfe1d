package events

import (
	"context"
	"time"

	"potluck-app-go/pkg/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateSeries opens a new run of potlucks for an organization. The end date
// must be strictly after the start date.
func (s *Service) CreateSeries(ctx context.Context, orgID, name string, start, end time.Time) (*PotluckSeries, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	series := &PotluckSeries{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Name:           name,
		StartDate:      start,
		EndDate:        end,
	}
	if err := s.repo.CreateSeries(ctx, series); err != nil {
		return nil, err
	}

	s.log.Info("events: series created", "series_id", series.ID, "name", name)
	return series, nil
}

func (s *Service) ListSeries(ctx context.Context, orgID string) ([]PotluckSeries, error) {
	return s.repo.ListSeries(ctx, orgID)
}

// CreatePotluck schedules a gathering in a series. The host reference is
// validated before anything is written.
func (s *Service) CreatePotluck(ctx context.Context, seriesID string, date time.Time, host EntityRef) (*Potluck, error) {
	if err := host.Validate(); err != nil {
		return nil, err
	}

	series, err := s.repo.GetSeriesByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	hostPersonID, hostHouseholdID := refColumns(host)
	potluck := &Potluck{
		ID:              uuid.NewString(),
		SeriesID:        series.ID,
		OrganizationID:  series.OrganizationID,
		Date:            date,
		HostPersonID:    hostPersonID,
		HostHouseholdID: hostHouseholdID,
	}
	if err := s.repo.CreatePotluck(ctx, potluck); err != nil {
		return nil, err
	}

	s.log.Info("events: potluck created", "potluck_id", potluck.ID, "series_id", series.ID)
	return potluck, nil
}

func (s *Service) ListPotlucks(ctx context.Context, seriesID string) ([]Potluck, error) {
	return s.repo.ListPotlucks(ctx, seriesID)
}

// RecordAttendance marks a person or household as attending a potluck.
func (s *Service) RecordAttendance(ctx context.Context, potluckID string, attendee EntityRef) (*Attendance, error) {
	if err := attendee.Validate(); err != nil {
		return nil, err
	}

	potluck, err := s.repo.GetPotluckByID(ctx, potluckID)
	if err != nil {
		return nil, err
	}

	personID, householdID := refColumns(attendee)
	attendance := &Attendance{
		ID:                  uuid.NewString(),
		PotluckID:           potluck.ID,
		OrganizationID:      potluck.OrganizationID,
		AttendeePersonID:    personID,
		AttendeeHouseholdID: householdID,
	}
	if err := s.repo.CreateAttendance(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

func (s *Service) ListAttendance(ctx context.Context, potluckID string) ([]Attendance, error) {
	return s.repo.ListAttendance(ctx, potluckID)
}

// RecordPairing stores that a guest ate at a host's table. Both sides are
// validated independently before the write; the potluck lookup and the
// insert share one transaction so the pairing never outlives its potluck.
func (s *Service) RecordPairing(ctx context.Context, potluckID string, host, guest EntityRef) (*PairingHistory, error) {
	if err := host.Validate(); err != nil {
		return nil, err
	}
	if err := guest.Validate(); err != nil {
		return nil, err
	}

	var pairing *PairingHistory
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		potluck, err := tx.GetPotluckByID(ctx, potluckID)
		if err != nil {
			return err
		}

		hostPersonID, hostHouseholdID := refColumns(host)
		guestPersonID, guestHouseholdID := refColumns(guest)
		pairing = &PairingHistory{
			ID:               uuid.NewString(),
			PotluckID:        potluck.ID,
			OrganizationID:   potluck.OrganizationID,
			HostPersonID:     hostPersonID,
			HostHouseholdID:  hostHouseholdID,
			GuestPersonID:    guestPersonID,
			GuestHouseholdID: guestHouseholdID,
		}
		return tx.CreatePairing(ctx, pairing)
	})
	if err != nil {
		return nil, err
	}
	return pairing, nil
}

func (s *Service) ListPairings(ctx context.Context, potluckID string) ([]PairingHistory, error) {
	return s.repo.ListPairings(ctx, potluckID)
}
