package events

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetSeriesByID(ctx context.Context, id string) (*PotluckSeries, error)
	CreateSeries(ctx context.Context, series *PotluckSeries) error
	ListSeries(ctx context.Context, organizationID string) ([]PotluckSeries, error)

	GetPotluckByID(ctx context.Context, id string) (*Potluck, error)
	CreatePotluck(ctx context.Context, potluck *Potluck) error
	ListPotlucks(ctx context.Context, seriesID string) ([]Potluck, error)

	CreateAttendance(ctx context.Context, attendance *Attendance) error
	ListAttendance(ctx context.Context, potluckID string) ([]Attendance, error)

	CreatePairing(ctx context.Context, pairing *PairingHistory) error
	ListPairings(ctx context.Context, potluckID string) ([]PairingHistory, error)
}
