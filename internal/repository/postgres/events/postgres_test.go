package events

import (
	"context"
	"testing"
	"time"

	eventsdomain "potluck-app-go/internal/domain/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&eventsdomain.PotluckSeries{},
		&eventsdomain.Potluck{},
		&eventsdomain.Attendance{},
		&eventsdomain.PairingHistory{},
	))
	return NewPostgres(db)
}

func seedSeries(t *testing.T, repo *PostgresRepository) *eventsdomain.PotluckSeries {
	t.Helper()
	series := &eventsdomain.PotluckSeries{
		ID:             uuid.NewString(),
		OrganizationID: uuid.NewString(),
		Name:           "Fall Potlucks",
		StartDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateSeries(context.Background(), series))
	return series
}

func strPtr(value string) *string {
	return &value
}

func TestPotluckHostCheckConstraint(t *testing.T) {
	repo := newTestRepo(t)
	series := seedSeries(t, repo)
	ctx := context.Background()

	base := eventsdomain.Potluck{
		SeriesID:       series.ID,
		OrganizationID: series.OrganizationID,
		Date:           time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
	}

	valid := base
	valid.ID = uuid.NewString()
	valid.HostHouseholdID = strPtr(uuid.NewString())
	require.NoError(t, repo.CreatePotluck(ctx, &valid))

	bothSet := base
	bothSet.ID = uuid.NewString()
	bothSet.HostPersonID = strPtr(uuid.NewString())
	bothSet.HostHouseholdID = strPtr(uuid.NewString())
	assert.Error(t, repo.CreatePotluck(ctx, &bothSet))

	neitherSet := base
	neitherSet.ID = uuid.NewString()
	assert.Error(t, repo.CreatePotluck(ctx, &neitherSet))
}

func TestPairingChecksAreIndependent(t *testing.T) {
	repo := newTestRepo(t)
	series := seedSeries(t, repo)
	ctx := context.Background()

	potluck := &eventsdomain.Potluck{
		ID:              uuid.NewString(),
		SeriesID:        series.ID,
		OrganizationID:  series.OrganizationID,
		Date:            time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
		HostHouseholdID: strPtr(uuid.NewString()),
	}
	require.NoError(t, repo.CreatePotluck(ctx, potluck))

	valid := &eventsdomain.PairingHistory{
		ID:              uuid.NewString(),
		PotluckID:       potluck.ID,
		OrganizationID:  series.OrganizationID,
		HostHouseholdID: strPtr(uuid.NewString()),
		GuestPersonID:   strPtr(uuid.NewString()),
	}
	require.NoError(t, repo.CreatePairing(ctx, valid))

	// valid host side does not excuse a violated guest side
	badGuest := &eventsdomain.PairingHistory{
		ID:              uuid.NewString(),
		PotluckID:       potluck.ID,
		OrganizationID:  series.OrganizationID,
		HostHouseholdID: strPtr(uuid.NewString()),
	}
	assert.Error(t, repo.CreatePairing(ctx, badGuest))

	badHost := &eventsdomain.PairingHistory{
		ID:               uuid.NewString(),
		PotluckID:        potluck.ID,
		OrganizationID:   series.OrganizationID,
		HostPersonID:     strPtr(uuid.NewString()),
		HostHouseholdID:  strPtr(uuid.NewString()),
		GuestHouseholdID: strPtr(uuid.NewString()),
	}
	assert.Error(t, repo.CreatePairing(ctx, badHost))
}

func TestListPotlucksOrdered(t *testing.T) {
	repo := newTestRepo(t)
	series := seedSeries(t, repo)
	ctx := context.Background()

	later := &eventsdomain.Potluck{
		ID:             uuid.NewString(),
		SeriesID:       series.ID,
		OrganizationID: series.OrganizationID,
		Date:           time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		HostPersonID:   strPtr(uuid.NewString()),
	}
	earlier := &eventsdomain.Potluck{
		ID:              uuid.NewString(),
		SeriesID:        series.ID,
		OrganizationID:  series.OrganizationID,
		Date:            time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
		HostHouseholdID: strPtr(uuid.NewString()),
	}
	require.NoError(t, repo.CreatePotluck(ctx, later))
	require.NoError(t, repo.CreatePotluck(ctx, earlier))

	potlucks, err := repo.ListPotlucks(ctx, series.ID)
	require.NoError(t, err)
	require.Len(t, potlucks, 2)
	assert.Equal(t, earlier.ID, potlucks[0].ID)
	assert.Equal(t, later.ID, potlucks[1].ID)
}

func TestTransactionRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	series := seedSeries(t, repo)
	ctx := context.Background()

	potluck := &eventsdomain.Potluck{
		ID:              uuid.NewString(),
		SeriesID:        series.ID,
		OrganizationID:  series.OrganizationID,
		Date:            time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
		HostHouseholdID: strPtr(uuid.NewString()),
	}
	require.NoError(t, repo.CreatePotluck(ctx, potluck))

	boom := assert.AnError
	err := repo.Transaction(ctx, func(tx eventsdomain.Repository) error {
		pairing := &eventsdomain.PairingHistory{
			ID:              uuid.NewString(),
			PotluckID:       potluck.ID,
			OrganizationID:  series.OrganizationID,
			HostHouseholdID: strPtr(uuid.NewString()),
			GuestPersonID:   strPtr(uuid.NewString()),
		}
		if err := tx.CreatePairing(ctx, pairing); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	pairings, err := repo.ListPairings(ctx, potluck.ID)
	require.NoError(t, err)
	assert.Empty(t, pairings)
}

func TestGetSeriesNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetSeriesByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, eventsdomain.ErrSeriesNotFound)
	_, err = repo.GetPotluckByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, eventsdomain.ErrPotluckNotFound)
}
