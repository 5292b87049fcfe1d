package handler

import (
	"errors"
	"net/http"
	"strings"

	"potluck-app-go/internal/directory"
	"potluck-app-go/internal/transport/httpserver/middleware"
	"potluck-app-go/internal/transport/httpserver/response"
)

type searchResponse struct {
	People     []directory.Person `json:"people"`
	TotalCount int                `json:"total_count"`
	Count      int                `json:"count"`
	Page       int                `json:"page"`
	HasMore    bool               `json:"has_more"`
}

// SearchPeople proxies a directory page with local signup state merged in.
func (h *Handlers) SearchPeople(w http.ResponseWriter, r *http.Request) {
	cred, ok := middleware.CredentialFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	page, err := parseIntParam(r.URL.Query().Get("page"), 1)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_request", "page must be a positive integer")
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	result, err := h.Roster.SearchPeople(r.Context(), cred.AccessToken, page, h.perPage, name)
	if err != nil {
		if errors.Is(err, directory.ErrUpstreamUnavailable) {
			h.log.InternalError("search: directory unavailable", err)
			response.Error(w, http.StatusBadGateway, "upstream_unavailable", "directory unavailable")
			return
		}
		h.log.InternalError("search: failed", err)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	offset := (page - 1) * h.perPage
	response.JSON(w, http.StatusOK, searchResponse{
		People:     result.People,
		TotalCount: result.TotalCount,
		Count:      result.Count,
		Page:       result.Page,
		HasMore:    result.HasMore(offset),
	})
}
