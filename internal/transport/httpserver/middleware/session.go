package middleware

import (
	"context"
	"errors"
	"net/http"

	"potluck-app-go/internal/config"
	accountdomain "potluck-app-go/internal/domain/account"
	"potluck-app-go/internal/transport/httpserver/response"
	"potluck-app-go/pkg/logger"
	"github.com/gorilla/sessions"
)

const SessionName = "potluck_session"

type contextKey int

const (
	userKey contextKey = iota
	credentialKey
)

// SessionAuth authenticates requests through the session cookie: it loads
// the signed-in user, ensures their directory credential is fresh, and puts
// both on the request context.
type SessionAuth struct {
	store *sessions.CookieStore
	users *accountdomain.Service
	log   logger.Logger
}

func NewSessionAuth(cfg config.SessionConfig, users *accountdomain.Service, log logger.Logger) *SessionAuth {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuth{store: store, users: users, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := a.store.Get(r, SessionName)
		if err != nil {
			unauthorized(w)
			return
		}

		userID, ok := session.Values["user_id"].(string)
		if !ok || userID == "" {
			unauthorized(w)
			return
		}

		user, err := a.users.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, accountdomain.ErrUserNotFound) {
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: load user failed", err, "user_id", userID)
			response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		cred, err := a.users.EnsureFresh(r.Context(), user)
		if err != nil {
			switch {
			case errors.Is(err, accountdomain.ErrCredentialExpired):
				a.log.BusinessError("auth: credential expired", err, "user_id", userID)
				unauthorized(w)
			case errors.Is(err, accountdomain.ErrRefreshUnavailable):
				a.log.InternalError("auth: token refresh failed", err, "user_id", userID)
				response.Error(w, http.StatusBadGateway, "upstream_unavailable", "directory unavailable")
			default:
				a.log.InternalError("auth: ensure credential failed", err, "user_id", userID)
				response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
			}
			return
		}

		ctx := WithUser(r.Context(), user)
		ctx = WithCredential(ctx, cred)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SignIn stores the user id in a fresh session cookie.
func (a *SessionAuth) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := a.store.New(r, SessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// SignOut expires the session cookie.
func (a *SessionAuth) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	delete(session.Values, "user_id")
	return session.Save(r, w)
}

// SetState stashes the OAuth state nonce in the session for the callback to
// verify.
func (a *SessionAuth) SetState(w http.ResponseWriter, r *http.Request, state string) error {
	session, _ := a.store.Get(r, SessionName)
	session.Values["oauth_state"] = state
	return session.Save(r, w)
}

// TakeState reads and clears the stored OAuth state nonce.
func (a *SessionAuth) TakeState(w http.ResponseWriter, r *http.Request) (string, bool) {
	session, err := a.store.Get(r, SessionName)
	if err != nil {
		return "", false
	}
	state, ok := session.Values["oauth_state"].(string)
	if !ok || state == "" {
		return "", false
	}
	delete(session.Values, "oauth_state")
	_ = session.Save(r, w)
	return state, true
}

func WithUser(ctx context.Context, user *accountdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*accountdomain.User, bool) {
	user, ok := ctx.Value(userKey).(*accountdomain.User)
	if !ok || user == nil || user.ID == "" {
		return nil, false
	}
	return user, true
}

func WithCredential(ctx context.Context, cred accountdomain.Credential) context.Context {
	return context.WithValue(ctx, credentialKey, cred)
}

func CredentialFromContext(ctx context.Context) (accountdomain.Credential, bool) {
	cred, ok := ctx.Value(credentialKey).(accountdomain.Credential)
	if !ok || cred.AccessToken == "" {
		return accountdomain.Credential{}, false
	}
	return cred, true
}

func unauthorized(w http.ResponseWriter) {
	response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
}
