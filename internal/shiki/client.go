package shiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Shikimori GraphQL and REST APIs.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	now       func() time.Time
}

const (
	DefaultOrigin    = "https://shikimori.one"
	defaultUserAgent = "shikidesk/0.1"
	graphQLPath      = "/api/graphql"
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header. Shikimori rejects requests
// without one.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given site origin. Catalog queries carry
// no client-side timeout; callers bound them through ctx.
func NewClient(origin string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(origin)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the scheme://host the client talks to.
func (c *Client) Origin() string {
	return c.baseURL.String()
}

// Animes runs a paginated animes search.
func (c *Client) Animes(ctx context.Context, params AnimeParams) ([]Media, error) {
	var payload struct {
		Animes []Media `json:"animes"`
	}
	query := fmt.Sprintf(animesQuery, animeSummaryFields)
	if err := c.graphQL(ctx, query, params.variables(), &payload); err != nil {
		return nil, err
	}
	return payload.Animes, nil
}

// AnimeDetail fetches one anime with the full field set. It returns nil when
// the id matches nothing.
func (c *Client) AnimeDetail(ctx context.Context, id int64, censored *bool) (*Media, error) {
	var payload struct {
		Animes []Media `json:"animes"`
	}
	params := AnimeParams{IDs: []int64{id}, Limit: 1, Censored: censored}
	query := fmt.Sprintf(animesQuery, animeDetailFields)
	if err := c.graphQL(ctx, query, params.variables(), &payload); err != nil {
		return nil, err
	}
	if len(payload.Animes) == 0 {
		return nil, nil
	}
	return &payload.Animes[0], nil
}

// Mangas runs a paginated mangas search.
func (c *Client) Mangas(ctx context.Context, params MangaParams) ([]Media, error) {
	var payload struct {
		Mangas []Media `json:"mangas"`
	}
	query := fmt.Sprintf(mangasQuery, mangaSummaryFields)
	if err := c.graphQL(ctx, query, params.variables(), &payload); err != nil {
		return nil, err
	}
	return payload.Mangas, nil
}

// MangaDetail fetches one manga with the full field set.
func (c *Client) MangaDetail(ctx context.Context, id int64, censored *bool) (*Media, error) {
	var payload struct {
		Mangas []Media `json:"mangas"`
	}
	params := MangaParams{IDs: []int64{id}, Limit: 1, Censored: censored}
	query := fmt.Sprintf(mangasQuery, mangaDetailFields)
	if err := c.graphQL(ctx, query, params.variables(), &payload); err != nil {
		return nil, err
	}
	if len(payload.Mangas) == 0 {
		return nil, nil
	}
	return &payload.Mangas[0], nil
}

// Characters runs a paginated characters search.
func (c *Client) Characters(ctx context.Context, params CharacterParams) ([]Character, error) {
	var payload struct {
		Characters []Character `json:"characters"`
	}
	if err := c.graphQL(ctx, charactersQuery, params.variables(), &payload); err != nil {
		return nil, err
	}
	return payload.Characters, nil
}

// People runs a paginated people search.
func (c *Client) People(ctx context.Context, params PeopleParams) ([]Person, error) {
	var payload struct {
		People []Person `json:"people"`
	}
	if err := c.graphQL(ctx, peopleQuery, params.variables(), &payload); err != nil {
		return nil, err
	}
	return payload.People, nil
}

// Character fetches GET /api/characters/:id. A 404 yields (nil, nil).
func (c *Client) Character(ctx context.Context, id int64) (*RESTCharacter, error) {
	var payload RESTCharacter
	found, err := c.rest(ctx, "/api/characters/"+strconv.FormatInt(id, 10), &payload)
	if err != nil || !found {
		return nil, err
	}
	return &payload, nil
}

// Person fetches GET /api/people/:id. A 404 yields (nil, nil).
func (c *Client) Person(ctx context.Context, id int64) (*RESTPerson, error) {
	var payload RESTPerson
	found, err := c.rest(ctx, "/api/people/"+strconv.FormatInt(id, 10), &payload)
	if err != nil || !found {
		return nil, err
	}
	return &payload, nil
}

// Genres fetches GET /api/genres.
func (c *Client) Genres(ctx context.Context) ([]RESTGenre, error) {
	var payload []RESTGenre
	if _, err := c.rest(ctx, "/api/genres", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Studios fetches GET /api/studios.
func (c *Client) Studios(ctx context.Context) ([]RESTStudio, error) {
	var payload []RESTStudio
	if _, err := c.rest(ctx, "/api/studios", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Publishers fetches GET /api/publishers.
func (c *Client) Publishers(ctx context.Context) ([]RESTPublisher, error) {
	var payload []RESTPublisher
	if _, err := c.rest(ctx, "/api/publishers", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type graphQLRequest struct {
	Query     string    `json:"query"`
	Variables variables `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) graphQL(ctx context.Context, query string, vars variables, dest any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return &DecodeError{Endpoint: graphQLPath, Err: fmt.Errorf("encode request: %w", err)}
	}
	rel := &url.URL{Path: graphQLPath}
	resp, err := c.send(ctx, http.MethodPost, rel, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp, graphQLPath); err != nil {
		return err
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &DecodeError{Endpoint: graphQLPath, Err: err}
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return &QueryError{Messages: messages}
	}
	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return &DecodeError{Endpoint: graphQLPath, Err: fmt.Errorf("response has no data")}
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return &DecodeError{Endpoint: graphQLPath, Err: err}
	}
	return nil
}

// rest performs a GET and decodes into dest. It reports found=false on 404.
func (c *Client) rest(ctx context.Context, path string, dest any) (bool, error) {
	rel := &url.URL{Path: path}
	resp, err := c.send(ctx, http.MethodGet, rel, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if err := c.checkStatus(resp, path); err != nil {
		return false, err
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return false, &DecodeError{Endpoint: path, Err: err}
	}
	return true, nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, body io.Reader) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, &TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "execute request", Err: err}
	}
	return resp, nil
}

func (c *Client) checkStatus(resp *http.Response, endpoint string) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Endpoint:   endpoint,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return nil
}

func parseBaseURL(origin string) (*url.URL, error) {
	trimmed := strings.TrimSpace(origin)
	if trimmed == "" {
		trimmed = DefaultOrigin
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api origin %q: %w", origin, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api origin %q: missing host", origin)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
