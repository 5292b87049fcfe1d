package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadGateway, "upstream_unavailable", "directory unavailable")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected valid json body, got %v", err)
	}
	if body.Error.Code != "upstream_unavailable" {
		t.Fatalf("expected code in envelope, got %q", body.Error.Code)
	}
	if body.Error.Message != "directory unavailable" {
		t.Fatalf("expected message in envelope, got %q", body.Error.Message)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","bogus":true}`))

	var dst struct {
		Name string `json:"name"`
	}
	if err := Decode(req, &dst); err == nil {
		t.Fatalf("expected unknown field rejected")
	}
}
