package handler

import (
	"errors"
	"net/http"

	rosterdomain "potluck-app-go/internal/domain/roster"
	"potluck-app-go/internal/transport/httpserver/middleware"
	"potluck-app-go/internal/transport/httpserver/response"
)

// Me returns the signed-in user's local person row.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	person, err := h.Roster.GetPerson(r.Context(), user.PersonID)
	if err != nil {
		if errors.Is(err, rosterdomain.ErrPersonNotFound) {
			h.log.BusinessError("me: person row missing", err, "person_id", user.PersonID)
			response.Error(w, http.StatusNotFound, "not_found", "record not found")
			return
		}
		h.log.InternalError("me: read failed", err, "person_id", user.PersonID)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response.JSON(w, http.StatusOK, toPersonResponse(person))
}
