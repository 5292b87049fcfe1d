package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"potluck-app-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.NewDiscard()
}

const peopleBody = `{
	"data": [{"type": "Person", "id": "p1", "attributes": {"name": "Jane Doe"}}],
	"included": [],
	"meta": {"total_count": 120, "count": 25}
}`

func TestGetPeopleQueryParams(t *testing.T) {
	var query url.Values
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people", r.URL.Path)
		query = r.URL.Query()
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(peopleBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	page, err := client.GetPeople(context.Background(), "token-a", 3, 25, "Jane Doe")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-a", auth)
	assert.Equal(t, "50", query.Get("offset"))
	assert.Equal(t, "25", query.Get("per_page"))
	assert.Equal(t, "last_name", query.Get("order"))
	assert.Equal(t, "active", query.Get("where[status]"))
	assert.Equal(t, "Jane Doe", query.Get("where[search_name]"))
	assert.Equal(t, "addresses,emails,households,organization,phone_numbers", query.Get("include"))

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 120, page.TotalCount)
	assert.True(t, page.HasMore(50))
}

func TestGetPeopleOmitsEmptyNameFilter(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(peopleBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	_, err := client.GetPeople(context.Background(), "token-a", 1, 25, "")
	require.NoError(t, err)

	assert.Equal(t, "0", query.Get("offset"))
	_, present := query["where[search_name]"]
	assert.False(t, present)
}

func TestGetPeopleUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	_, err := client.GetPeople(context.Background(), "token-a", 1, 25, "")
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestGetHouseholdPeople(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/households/h1/people", r.URL.Path)
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{"type": "Person", "id": "p1", "attributes": {"name": "Jane Doe"}}],
			"included": [{"type": "Household", "id": "h1", "attributes": {"name": "Doe Household"}}],
			"meta": {"total_count": 1, "count": 1, "parent": {"id": "h1", "type": "Household"}}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	household, err := client.GetHouseholdPeople(context.Background(), "token-a", "h1")
	require.NoError(t, err)

	assert.Equal(t, "without_deceased", query.Get("filter"))
	assert.Equal(t, "h1", household.ID)
	assert.Equal(t, "Doe Household", household.Name)
	require.Len(t, household.People, 1)
}

func TestGetMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {"type": "Person", "id": "p1", "attributes": {"name": "Jane Doe"}},
			"included": []
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	me, err := client.GetMe(context.Background(), "token-a")
	require.NoError(t, err)
	assert.Equal(t, "p1", me.ID)
}
