package handler

import (
	"errors"
	"net/http"

	accountdomain "potluck-app-go/internal/domain/account"
	rosterdomain "potluck-app-go/internal/domain/roster"
	"potluck-app-go/internal/transport/httpserver/response"

	"github.com/google/uuid"
)

// Login starts the OAuth code flow: a state nonce goes into the session and
// the browser is sent to the directory's consent page.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	if err := h.auth.SetState(w, r, state); err != nil {
		h.log.InternalError("auth.login: save state failed", err)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// Callback finishes the flow: exchange the code, fetch the signed-in person,
// reconcile their records, store the credential, open the session.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	state, ok := h.auth.TakeState(w, r)
	if !ok || state != r.URL.Query().Get("state") {
		response.Error(w, http.StatusBadRequest, "invalid_state", "oauth state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.Error(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.log.InternalError("auth.callback: code exchange failed", err)
		response.Error(w, http.StatusBadGateway, "upstream_unavailable", "token exchange failed")
		return
	}

	cred, err := accountdomain.CredentialFromToken(token)
	if err != nil {
		h.log.InternalError("auth.callback: bad token response", err)
		response.Error(w, http.StatusBadGateway, "upstream_unavailable", "token exchange failed")
		return
	}

	me, err := h.Directory.GetMe(r.Context(), cred.AccessToken)
	if err != nil {
		h.log.InternalError("auth.callback: me fetch failed", err)
		response.Error(w, http.StatusBadGateway, "upstream_unavailable", "directory unavailable")
		return
	}

	person, err := h.Roster.ReconcileLogin(r.Context(), me)
	if err != nil {
		if errors.Is(err, rosterdomain.ErrOrganizationRequired) {
			h.log.BusinessError("auth.callback: person has no organization", err, "external_id", me.ID)
			response.Error(w, http.StatusUnprocessableEntity, "organization_required", "account belongs to no organization")
			return
		}
		h.log.InternalError("auth.callback: login reconciliation failed", err, "external_id", me.ID)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	user, err := h.Accounts.UpsertUser(r.Context(), person.ID, person.OrganizationID, *cred)
	if err != nil {
		h.log.InternalError("auth.callback: store credential failed", err, "person_id", person.ID)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if err := h.auth.SignIn(w, r, user.ID); err != nil {
		h.log.InternalError("auth.callback: open session failed", err, "user_id", user.ID)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.log.Info("auth: signed in", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(w, r); err != nil {
		h.log.InternalError("auth.logout: close session failed", err)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}
