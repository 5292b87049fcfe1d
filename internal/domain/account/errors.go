package account

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialExpired  = errors.New("credential expired and no refresh token available")
	ErrRefreshUnavailable = errors.New("token refresh failed")
)
