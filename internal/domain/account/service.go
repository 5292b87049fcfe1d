package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"potluck-app-go/pkg/logger"

	"github.com/google/uuid"
)

// refreshLeeway pushes the expiry check forward so a token that would die
// mid-request gets refreshed up front.
const refreshLeeway = 30 * time.Second

// TokenRefresher exchanges a refresh token for a new credential.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*Credential, error)
}

type Service struct {
	repo      Repository
	refresher TokenRefresher
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, refresher TokenRefresher, log logger.Logger) *Service {
	return &Service{repo: repo, refresher: refresher, log: log, now: time.Now}
}

// needsRefresh is the whole refresh decision: no stored state, no clock
// reads, just the two inputs.
func needsRefresh(now, expiry time.Time) bool {
	return !expiry.After(now.Add(refreshLeeway))
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpsertUser stores the credential obtained at login, keyed by the local
// person row.
func (s *Service) UpsertUser(ctx context.Context, personID, orgID string, cred Credential) (*User, error) {
	existing, err := s.repo.GetUserByPersonID(ctx, personID)
	switch {
	case err == nil:
		existing.OrganizationID = orgID
		existing.AccessToken = cred.AccessToken
		if cred.RefreshToken != nil {
			existing.RefreshToken = cred.RefreshToken
		}
		existing.TokenExpiresAt = cred.ExpiresAt
		if err := s.repo.UpdateUser(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	user := &User{
		ID:             uuid.NewString(),
		PersonID:       personID,
		OrganizationID: orgID,
		AccessToken:    cred.AccessToken,
		RefreshToken:   cred.RefreshToken,
		TokenExpiresAt: cred.ExpiresAt,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureFresh returns a credential that is valid for the rest of the request.
// A still-valid token comes back as-is; an expiring one is exchanged through
// the refresher and the rotated tokens are persisted. The caller's User is
// never mutated: the returned Credential is the only way to observe the
// rotation.
func (s *Service) EnsureFresh(ctx context.Context, user *User) (Credential, error) {
	if !needsRefresh(s.now(), user.TokenExpiresAt) {
		return user.credential(), nil
	}

	if user.RefreshToken == nil {
		return Credential{}, ErrCredentialExpired
	}

	fresh, err := s.refresher.Refresh(ctx, *user.RefreshToken)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrRefreshUnavailable, err)
	}

	updated := *user
	updated.AccessToken = fresh.AccessToken
	if fresh.RefreshToken != nil {
		updated.RefreshToken = fresh.RefreshToken
	}
	updated.TokenExpiresAt = fresh.ExpiresAt
	if err := s.repo.UpdateUser(ctx, &updated); err != nil {
		return Credential{}, err
	}

	s.log.Info("account: credential refreshed", "user_id", user.ID)
	return updated.credential(), nil
}
