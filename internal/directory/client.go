package directory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"potluck-app-go/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const includeParam = "addresses,emails,households,organization,phone_numbers"

// Client talks to the upstream directory API. It is read-only: every call
// takes a bearer token owned by the caller and never touches local state.
type Client struct {
	http *resty.Client
	log  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, log: log}
}

// GetPeople fetches one page of people. Pages are 1-based; the upstream
// speaks offsets, so offset = (page-1) * perPage. A non-empty name filter is
// sent percent-encoded as where[search_name].
func (c *Client) GetPeople(ctx context.Context, token string, page, perPage int, name string) (*PeoplePage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("include", includeParam).
		SetQueryParam("per_page", strconv.Itoa(perPage)).
		SetQueryParam("offset", strconv.Itoa(offset)).
		SetQueryParam("order", "last_name").
		SetQueryParam("where[status]", "active")
	if name != "" {
		req.SetQueryParam("where[search_name]", name)
	}

	var env listEnvelope
	resp, err := req.SetResult(&env).Get("/people")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: people fetch returned %s", ErrUpstreamUnavailable, resp.Status())
	}

	return parsePeoplePage(env, page), nil
}

// GetPerson fetches one person by directory id with all secondary records.
func (c *Client) GetPerson(ctx context.Context, token, id string) (*Person, error) {
	var env singleEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("include", includeParam).
		SetPathParam("id", id).
		SetResult(&env).
		Get("/people/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: person fetch returned %s", ErrUpstreamUnavailable, resp.Status())
	}

	return parseSinglePerson(env)
}

// GetMe fetches the person record belonging to the token's owner.
func (c *Client) GetMe(ctx context.Context, token string) (*Person, error) {
	var env singleEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("include", includeParam).
		SetResult(&env).
		Get("/me")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: me fetch returned %s", ErrUpstreamUnavailable, resp.Status())
	}

	return parseSinglePerson(env)
}

// GetHouseholdPeople fetches a household and its members in one call. The
// household itself arrives through meta.parent plus the included list.
func (c *Client) GetHouseholdPeople(ctx context.Context, token, id string) (*Household, error) {
	var env listEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("include", includeParam).
		SetQueryParam("filter", "without_deceased").
		SetPathParam("id", id).
		SetResult(&env).
		Get("/households/{id}/people")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: household fetch returned %s", ErrUpstreamUnavailable, resp.Status())
	}

	return parseHouseholdPeople(env)
}
