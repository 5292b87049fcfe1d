package handler

import (
	"net/http"

	"potluck-app-go/internal/transport/httpserver/response"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
