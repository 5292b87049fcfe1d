package handler

import (
	"errors"
	"net/http"
	"strings"

	eventsdomain "potluck-app-go/internal/domain/events"
	"potluck-app-go/internal/transport/httpserver/middleware"
	"potluck-app-go/internal/transport/httpserver/response"
	"github.com/go-chi/chi/v5"
)

type createSeriesRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type createPotluckRequest struct {
	Date string     `json:"date"`
	Host refRequest `json:"host"`
}

type recordAttendanceRequest struct {
	Attendee refRequest `json:"attendee"`
}

type recordPairingRequest struct {
	Host  refRequest `json:"host"`
	Guest refRequest `json:"guest"`
}

type refRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (r refRequest) toRef() eventsdomain.EntityRef {
	return eventsdomain.EntityRef{Kind: eventsdomain.RefKind(r.Kind), ID: r.ID}
}

type refResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type seriesResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type potluckResponse struct {
	ID       string      `json:"id"`
	SeriesID string      `json:"series_id"`
	Date     string      `json:"date"`
	Host     refResponse `json:"host"`
}

type attendanceResponse struct {
	ID        string      `json:"id"`
	PotluckID string      `json:"potluck_id"`
	Attendee  refResponse `json:"attendee"`
}

type pairingResponse struct {
	ID        string      `json:"id"`
	PotluckID string      `json:"potluck_id"`
	Host      refResponse `json:"host"`
	Guest     refResponse `json:"guest"`
}

const dateLayout = "2006-01-02"

func toSeriesResponse(series *eventsdomain.PotluckSeries) seriesResponse {
	return seriesResponse{
		ID:        series.ID,
		Name:      series.Name,
		StartDate: series.StartDate.Format(dateLayout),
		EndDate:   series.EndDate.Format(dateLayout),
	}
}

func toRefResponse(ref eventsdomain.EntityRef) refResponse {
	return refResponse{Kind: string(ref.Kind), ID: ref.ID}
}

func toPotluckResponse(potluck *eventsdomain.Potluck) (potluckResponse, error) {
	host, err := potluck.Host()
	if err != nil {
		return potluckResponse{}, err
	}
	return potluckResponse{
		ID:       potluck.ID,
		SeriesID: potluck.SeriesID,
		Date:     potluck.Date.Format(dateLayout),
		Host:     toRefResponse(host),
	}, nil
}

func (h *Handlers) CreateSeries(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	var req createSeriesRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.Error(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	start, err := parseDateRequired(req.StartDate)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_request", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDateRequired(req.EndDate)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_request", "end_date must be YYYY-MM-DD")
		return
	}

	series, err := h.Events.CreateSeries(r.Context(), user.OrganizationID, req.Name, start, end)
	if err != nil {
		h.writeEventsError(w, "potlucks.create_series", err)
		return
	}

	response.JSON(w, http.StatusCreated, toSeriesResponse(series))
}

func (h *Handlers) ListSeries(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	series, err := h.Events.ListSeries(r.Context(), user.OrganizationID)
	if err != nil {
		h.writeEventsError(w, "potlucks.list_series", err)
		return
	}

	resp := make([]seriesResponse, 0, len(series))
	for i := range series {
		resp = append(resp, toSeriesResponse(&series[i]))
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreatePotluck(w http.ResponseWriter, r *http.Request) {
	var req createPotluckRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	seriesID := chi.URLParam(r, "series_id")
	potluck, err := h.Events.CreatePotluck(r.Context(), seriesID, date, req.Host.toRef())
	if err != nil {
		h.writeEventsError(w, "potlucks.create", err)
		return
	}

	resp, err := toPotluckResponse(potluck)
	if err != nil {
		h.writeEventsError(w, "potlucks.create", err)
		return
	}
	response.JSON(w, http.StatusCreated, resp)
}

func (h *Handlers) ListPotlucks(w http.ResponseWriter, r *http.Request) {
	seriesID := chi.URLParam(r, "series_id")
	potlucks, err := h.Events.ListPotlucks(r.Context(), seriesID)
	if err != nil {
		h.writeEventsError(w, "potlucks.list", err)
		return
	}

	resp := make([]potluckResponse, 0, len(potlucks))
	for i := range potlucks {
		item, err := toPotluckResponse(&potlucks[i])
		if err != nil {
			h.writeEventsError(w, "potlucks.list", err)
			return
		}
		resp = append(resp, item)
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *Handlers) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req recordAttendanceRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	potluckID := chi.URLParam(r, "potluck_id")
	attendance, err := h.Events.RecordAttendance(r.Context(), potluckID, req.Attendee.toRef())
	if err != nil {
		h.writeEventsError(w, "potlucks.record_attendance", err)
		return
	}

	attendee, err := attendance.Attendee()
	if err != nil {
		h.writeEventsError(w, "potlucks.record_attendance", err)
		return
	}
	response.JSON(w, http.StatusCreated, attendanceResponse{
		ID:        attendance.ID,
		PotluckID: attendance.PotluckID,
		Attendee:  toRefResponse(attendee),
	})
}

func (h *Handlers) ListAttendance(w http.ResponseWriter, r *http.Request) {
	potluckID := chi.URLParam(r, "potluck_id")
	attendances, err := h.Events.ListAttendance(r.Context(), potluckID)
	if err != nil {
		h.writeEventsError(w, "potlucks.list_attendance", err)
		return
	}

	resp := make([]attendanceResponse, 0, len(attendances))
	for i := range attendances {
		attendee, err := attendances[i].Attendee()
		if err != nil {
			h.writeEventsError(w, "potlucks.list_attendance", err)
			return
		}
		resp = append(resp, attendanceResponse{
			ID:        attendances[i].ID,
			PotluckID: attendances[i].PotluckID,
			Attendee:  toRefResponse(attendee),
		})
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *Handlers) RecordPairing(w http.ResponseWriter, r *http.Request) {
	var req recordPairingRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	potluckID := chi.URLParam(r, "potluck_id")
	pairing, err := h.Events.RecordPairing(r.Context(), potluckID, req.Host.toRef(), req.Guest.toRef())
	if err != nil {
		h.writeEventsError(w, "potlucks.record_pairing", err)
		return
	}

	resp, err := toPairingResponse(pairing)
	if err != nil {
		h.writeEventsError(w, "potlucks.record_pairing", err)
		return
	}
	response.JSON(w, http.StatusCreated, resp)
}

func (h *Handlers) ListPairings(w http.ResponseWriter, r *http.Request) {
	potluckID := chi.URLParam(r, "potluck_id")
	pairings, err := h.Events.ListPairings(r.Context(), potluckID)
	if err != nil {
		h.writeEventsError(w, "potlucks.list_pairings", err)
		return
	}

	resp := make([]pairingResponse, 0, len(pairings))
	for i := range pairings {
		item, err := toPairingResponse(&pairings[i])
		if err != nil {
			h.writeEventsError(w, "potlucks.list_pairings", err)
			return
		}
		resp = append(resp, item)
	}
	response.JSON(w, http.StatusOK, resp)
}

func toPairingResponse(pairing *eventsdomain.PairingHistory) (pairingResponse, error) {
	host, err := pairing.Host()
	if err != nil {
		return pairingResponse{}, err
	}
	guest, err := pairing.Guest()
	if err != nil {
		return pairingResponse{}, err
	}
	return pairingResponse{
		ID:        pairing.ID,
		PotluckID: pairing.PotluckID,
		Host:      toRefResponse(host),
		Guest:     toRefResponse(guest),
	}, nil
}

func (h *Handlers) writeEventsError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, eventsdomain.ErrInvalidDateRange):
		h.log.BusinessError(op+": invalid date range", err)
		response.Error(w, http.StatusUnprocessableEntity, "invalid_date_range", "end date must be after start date")
	case errors.Is(err, eventsdomain.ErrInvalidEntityRef):
		h.log.BusinessError(op+": invalid reference", err)
		response.Error(w, http.StatusUnprocessableEntity, "invalid_reference", "reference must name exactly one person or household")
	case errors.Is(err, eventsdomain.ErrSeriesNotFound), errors.Is(err, eventsdomain.ErrPotluckNotFound):
		h.log.BusinessError(op+": record not found", err)
		response.Error(w, http.StatusNotFound, "not_found", "record not found")
	default:
		h.log.InternalError(op+": failed", err)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
