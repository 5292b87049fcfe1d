package directory

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeList(t *testing.T, raw string) listEnvelope {
	t.Helper()
	var env listEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return env
}

func TestParsePersonResolvesIncluded(t *testing.T) {
	env := decodeList(t, `{
		"data": [{
			"type": "Person",
			"id": "p1",
			"attributes": {"name": "Jane Doe", "avatar": "https://cdn/p1.png", "child": false},
			"relationships": {
				"addresses": {"data": [{"type": "Address", "id": "a1"}]},
				"emails": {"data": [{"type": "Email", "id": "e1"}]},
				"phone_numbers": {"data": [{"type": "PhoneNumber", "id": "n1"}]},
				"organization": {"data": {"type": "Organization", "id": "o1"}},
				"households": {"data": [{"type": "Household", "id": "h1"}]}
			}
		}],
		"included": [
			{"type": "Address", "id": "a1", "attributes": {"city": "Springfield", "zip": "12345"}},
			{"type": "Email", "id": "e1", "attributes": {"address": "jane@example.com"}},
			{"type": "PhoneNumber", "id": "n1", "attributes": {"number": "555-0100"}},
			{"type": "Organization", "id": "o1", "attributes": {"name": "First Org", "avatar_url": "https://cdn/o1.png"}},
			{"type": "Household", "id": "h1", "attributes": {"name": "Doe Household", "avatar": "https://cdn/h1.png"}}
		],
		"meta": {"total_count": 1, "count": 1}
	}`)

	page := parsePeoplePage(env, 1)
	require.Len(t, page.People, 1)

	person := page.People[0]
	assert.Equal(t, "p1", person.ID)
	assert.Equal(t, "Jane Doe", person.Name)
	require.NotNil(t, person.Email)
	assert.Equal(t, "jane@example.com", *person.Email)
	require.NotNil(t, person.Phone)
	assert.Equal(t, "555-0100", *person.Phone)
	assert.JSONEq(t, `{"city": "Springfield", "zip": "12345"}`, string(person.Address))
	require.NotNil(t, person.Organization)
	assert.Equal(t, "First Org", person.Organization.Name)
	require.NotNil(t, person.Household)
	assert.Equal(t, "Doe Household", person.Household.Name)
	assert.False(t, person.Household.IsSignedUp)
}

func TestParsePersonFirstLinkWins(t *testing.T) {
	env := decodeList(t, `{
		"data": [{
			"type": "Person",
			"id": "p1",
			"attributes": {"name": "Jane Doe"},
			"relationships": {
				"emails": {"data": [{"type": "Email", "id": "e1"}, {"type": "Email", "id": "e2"}]}
			}
		}],
		"included": [
			{"type": "Email", "id": "e1", "attributes": {"address": "first@example.com"}},
			{"type": "Email", "id": "e2", "attributes": {"address": "second@example.com"}}
		],
		"meta": {"total_count": 1, "count": 1}
	}`)

	page := parsePeoplePage(env, 1)
	require.Len(t, page.People, 1)
	require.NotNil(t, page.People[0].Email)
	assert.Equal(t, "first@example.com", *page.People[0].Email)
}

func TestParsePersonToleratesPartialIncludes(t *testing.T) {
	// e1 is referenced but missing from included; unknown types are skipped.
	env := decodeList(t, `{
		"data": [{
			"type": "Person",
			"id": "p1",
			"attributes": {"name": "Jane Doe"},
			"relationships": {
				"emails": {"data": [{"type": "Email", "id": "e1"}]},
				"phone_numbers": {"data": null}
			}
		}],
		"included": [
			{"type": "BackgroundCheck", "id": "b1", "attributes": {"status": "clear"}}
		],
		"meta": {"total_count": 1, "count": 1}
	}`)

	page := parsePeoplePage(env, 1)
	require.Len(t, page.People, 1)
	assert.Nil(t, page.People[0].Email)
	assert.Nil(t, page.People[0].Phone)
	assert.Nil(t, page.People[0].Household)
}

func TestParsePeoplePageSkipsMalformedRoots(t *testing.T) {
	env := decodeList(t, `{
		"data": [
			{"type": "Person", "id": "", "attributes": {"name": "No Id"}},
			{"type": "Person", "id": "p2"},
			{"type": "Person", "id": "p3", "attributes": {"name": "Kept", "child": true}}
		],
		"included": [],
		"meta": {"total_count": 3, "count": 3}
	}`)

	page := parsePeoplePage(env, 2)
	require.Len(t, page.People, 1)
	assert.Equal(t, "p3", page.People[0].ID)
	assert.True(t, page.People[0].IsChild)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalCount)
}

func TestParseSinglePersonMalformed(t *testing.T) {
	var env singleEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{"data": {"type": "Person", "id": "p1"}}`), &env))

	_, err := parseSinglePerson(env)
	assert.True(t, errors.Is(err, ErrMalformedResource))
}

func TestParseHouseholdPeople(t *testing.T) {
	env := decodeList(t, `{
		"data": [
			{"type": "Person", "id": "p1", "attributes": {"name": "Jane Doe"}},
			{"type": "Person", "id": "p2", "attributes": {"name": "Jim Doe", "child": true}}
		],
		"included": [
			{"type": "Household", "id": "h1", "attributes": {"name": "Doe Household", "avatar": "https://cdn/h1.png"}}
		],
		"meta": {"total_count": 2, "count": 2, "parent": {"id": "h1", "type": "Household"}}
	}`)

	household, err := parseHouseholdPeople(env)
	require.NoError(t, err)
	assert.Equal(t, "h1", household.ID)
	assert.Equal(t, "Doe Household", household.Name)
	require.Len(t, household.People, 2)
	assert.True(t, household.People[1].IsChild)
}

func TestParseHouseholdPeopleMissingParent(t *testing.T) {
	env := decodeList(t, `{
		"data": [],
		"included": [],
		"meta": {"total_count": 0, "count": 0}
	}`)

	_, err := parseHouseholdPeople(env)
	assert.True(t, errors.Is(err, ErrMalformedResource))
}

func TestHasMore(t *testing.T) {
	page := &PeoplePage{TotalCount: 120, Count: 25}
	assert.True(t, page.HasMore(50))

	page = &PeoplePage{TotalCount: 60, Count: 10}
	assert.False(t, page.HasMore(50))

	page = &PeoplePage{TotalCount: 0, Count: 0}
	assert.False(t, page.HasMore(0))
}

func TestRelationshipListOrSingle(t *testing.T) {
	var rel relationship
	require.NoError(t, json.Unmarshal([]byte(`{"data": {"type": "Organization", "id": "o1"}}`), &rel))
	id, ok := rel.first()
	assert.True(t, ok)
	assert.Equal(t, "o1", id)

	require.NoError(t, json.Unmarshal([]byte(`{"data": []}`), &rel))
	_, ok = rel.first()
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`{"data": null}`), &rel))
	_, ok = rel.first()
	assert.False(t, ok)
}
