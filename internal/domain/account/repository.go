package account

import "context"

type Repository interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByPersonID(ctx context.Context, personID string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
}
