package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"potluck-app-go/internal/directory"
	rosterdomain "potluck-app-go/internal/domain/roster"
	"potluck-app-go/internal/transport/httpserver/middleware"
	"potluck-app-go/internal/transport/httpserver/response"
	"github.com/go-chi/chi/v5"
)

type personResponse struct {
	ID          string          `json:"id"`
	ExternalID  string          `json:"external_id"`
	Name        string          `json:"name"`
	Email       *string         `json:"email"`
	Phone       *string         `json:"phone"`
	Address     json.RawMessage `json:"address"`
	AvatarURL   *string         `json:"avatar_url"`
	IsSignedUp  bool            `json:"is_signed_up"`
	CanHost     bool            `json:"can_host"`
	IsChild     bool            `json:"is_child"`
	HouseholdID *string         `json:"household_id,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type householdResponse struct {
	ID         string           `json:"id"`
	ExternalID string           `json:"external_id"`
	Name       string           `json:"name"`
	AvatarURL  *string          `json:"avatar_url"`
	IsSignedUp bool             `json:"is_signed_up"`
	CanHost    bool             `json:"can_host"`
	People     []personResponse `json:"people,omitempty"`
}

type rosterResponse struct {
	Households  []householdResponse `json:"households"`
	LoosePeople []personResponse    `json:"loose_people"`
}

func toPersonResponse(person *rosterdomain.Person) personResponse {
	return personResponse{
		ID:          person.ID,
		ExternalID:  person.ExternalID,
		Name:        person.Name,
		Email:       person.Email,
		Phone:       person.Phone,
		Address:     json.RawMessage(person.Address),
		AvatarURL:   person.AvatarURL,
		IsSignedUp:  person.IsSignedUp,
		CanHost:     person.CanHost,
		IsChild:     person.IsChild,
		HouseholdID: person.HouseholdID,
		UpdatedAt:   person.UpdatedAt,
	}
}

func toHouseholdResponse(household *rosterdomain.Household) householdResponse {
	people := make([]personResponse, 0, len(household.People))
	for i := range household.People {
		people = append(people, toPersonResponse(&household.People[i]))
	}
	return householdResponse{
		ID:         household.ID,
		ExternalID: household.ExternalID,
		Name:       household.Name,
		AvatarURL:  household.AvatarURL,
		IsSignedUp: household.IsSignedUp,
		CanHost:    household.CanHost,
		People:     people,
	}
}

// SignUpPerson reconciles one directory person into the roster as signed up.
// The path id is the directory's id, not a local row id.
func (h *Handlers) SignUpPerson(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	cred, credOK := middleware.CredentialFromContext(r.Context())
	if !ok || !credOK {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	externalID := chi.URLParam(r, "id")
	result, err := h.Roster.SignUpPerson(r.Context(), user.OrganizationID, cred.AccessToken, externalID)
	if err != nil {
		h.writeRosterError(w, "roster.sign_up_person", err, externalID)
		return
	}

	response.JSON(w, http.StatusOK, toPersonResponse(result))
}

// SignUpHousehold reconciles a directory household and all of its members.
func (h *Handlers) SignUpHousehold(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	cred, credOK := middleware.CredentialFromContext(r.Context())
	if !ok || !credOK {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	externalID := chi.URLParam(r, "id")
	result, err := h.Roster.SignUpHousehold(r.Context(), user.OrganizationID, cred.AccessToken, externalID)
	if err != nil {
		h.writeRosterError(w, "roster.sign_up_household", err, externalID)
		return
	}

	response.JSON(w, http.StatusOK, toHouseholdResponse(result))
}

func (h *Handlers) ListRoster(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	roster, err := h.Roster.ListRoster(r.Context(), user.OrganizationID)
	if err != nil {
		h.log.InternalError("roster.list: read failed", err, "organization_id", user.OrganizationID)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	resp := rosterResponse{
		Households:  make([]householdResponse, 0, len(roster.Households)),
		LoosePeople: make([]personResponse, 0, len(roster.LoosePeople)),
	}
	for i := range roster.Households {
		resp.Households = append(resp.Households, toHouseholdResponse(&roster.Households[i]))
	}
	for i := range roster.LoosePeople {
		resp.LoosePeople = append(resp.LoosePeople, toPersonResponse(&roster.LoosePeople[i]))
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handlers) TogglePersonSignup(w http.ResponseWriter, r *http.Request) {
	h.togglePerson(w, r, "roster.toggle_person_signup", h.Roster.TogglePersonSignup)
}

func (h *Handlers) TogglePersonHost(w http.ResponseWriter, r *http.Request) {
	h.togglePerson(w, r, "roster.toggle_person_host", h.Roster.TogglePersonHost)
}

func (h *Handlers) ToggleHouseholdSignup(w http.ResponseWriter, r *http.Request) {
	h.toggleHousehold(w, r, "roster.toggle_household_signup", h.Roster.ToggleHouseholdSignup)
}

func (h *Handlers) ToggleHouseholdHost(w http.ResponseWriter, r *http.Request) {
	h.toggleHousehold(w, r, "roster.toggle_household_host", h.Roster.ToggleHouseholdHost)
}

func (h *Handlers) togglePerson(w http.ResponseWriter, r *http.Request, op string, toggle func(ctx context.Context, id string) (*rosterdomain.Person, error)) {
	id := chi.URLParam(r, "id")
	result, err := toggle(r.Context(), id)
	if err != nil {
		h.writeRosterError(w, op, err, id)
		return
	}
	response.JSON(w, http.StatusOK, toPersonResponse(result))
}

func (h *Handlers) toggleHousehold(w http.ResponseWriter, r *http.Request, op string, toggle func(ctx context.Context, id string) (*rosterdomain.Household, error)) {
	id := chi.URLParam(r, "id")
	result, err := toggle(r.Context(), id)
	if err != nil {
		h.writeRosterError(w, op, err, id)
		return
	}
	response.JSON(w, http.StatusOK, toHouseholdResponse(result))
}

func (h *Handlers) writeRosterError(w http.ResponseWriter, op string, err error, id string) {
	switch {
	case errors.Is(err, directory.ErrUpstreamUnavailable):
		h.log.InternalError(op+": directory unavailable", err, "id", id)
		response.Error(w, http.StatusBadGateway, "upstream_unavailable", "directory unavailable")
	case errors.Is(err, directory.ErrMalformedResource):
		h.log.InternalError(op+": malformed directory record", err, "id", id)
		response.Error(w, http.StatusBadGateway, "upstream_malformed", "directory returned a malformed record")
	case errors.Is(err, rosterdomain.ErrOrganizationNotFound),
		errors.Is(err, rosterdomain.ErrHouseholdNotFound),
		errors.Is(err, rosterdomain.ErrPersonNotFound):
		h.log.BusinessError(op+": record not found", err, "id", id)
		response.Error(w, http.StatusNotFound, "not_found", "record not found")
	default:
		h.log.InternalError(op+": failed", err, "id", id)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
