// Package mobygames implements catalog.Client against the MobyGames v2 API.
package mobygames

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/agentstation/gamelist/internal/transport"
	"github.com/agentstation/gamelist/pkg/catalog"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
)

// Response structures for the MobyGames API.
type gamesResponse struct {
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	GameID      gameID          `json:"game_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	OfficialURL *string         `json:"official_url"`
	Covers      []coverResponse `json:"covers"`
}

type coverResponse struct {
	Images []imageResponse `json:"images"`
}

type imageResponse struct {
	ImageURL string `json:"image_url"`
}

// gameID accepts the id as either a JSON number or a string.
type gameID string

func (g *gameID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*g = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*g = gameID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*g = gameID(n.String())
	return nil
}

// Client implements catalog.Client for MobyGames.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// Option configures a Client.
type Option func(*config)

type config struct {
	baseURL string
	opts    []transport.Option
}

// WithBaseURL overrides the API base URL, mostly for tests.
func WithBaseURL(u string) Option {
	return func(c *config) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTransportOptions passes options through to the HTTP transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *config) {
		c.opts = append(c.opts, opts...)
	}
}

// NewClient creates a MobyGames client. An empty apiKey is a configuration
// error reported as ErrAPIKeyRequired.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewConfigError("mobygames", "MOBY_API_KEY is not set", errors.ErrAPIKeyRequired)
	}

	cfg := &config{baseURL: constants.MobyGamesBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	topts := append([]transport.Option{transport.WithAPIKey(apiKey)}, cfg.opts...)
	return &Client{
		baseURL:   cfg.baseURL,
		transport: transport.New(&transport.QueryAuth{Param: constants.MobyGamesAPIKeyParam}, topts...),
	}, nil
}

// LookupByTitle implements catalog.Client.
func (c *Client) LookupByTitle(ctx context.Context, title string) ([]catalog.Entry, error) {
	games, err := c.games(ctx, "lookup_title", "title", title)
	if err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(games))
	for _, g := range games {
		entries = append(entries, convertToEntry(g))
	}

	logging.Ctx(ctx).Debug().
		Str("title", title).
		Int("candidates", len(entries)).
		Msg("Looked up title in MobyGames")

	return entries, nil
}

// LookupByID implements catalog.Client. It returns nil when no game has id.
func (c *Client) LookupByID(ctx context.Context, id string) (*catalog.Entry, error) {
	games, err := c.games(ctx, "lookup_id", "id", id)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}

	entry := convertToEntry(games[0])
	return &entry, nil
}

func (c *Client) games(ctx context.Context, operation, param, value string) ([]gameResponse, error) {
	q := url.Values{}
	q.Set("include", constants.MobyGamesInclude)
	q.Set(param, value)
	endpoint := c.baseURL + "/games?" + q.Encode()

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, errors.WrapCatalog(operation, value, err)
	}

	var result gamesResponse
	if err := transport.DecodeResponse(resp, operation, value, &result); err != nil {
		return nil, err
	}
	return result.Games, nil
}

// convertToEntry maps an API game to a catalog entry. The cover is the first
// image of the first cover group, when there is one.
func convertToEntry(g gameResponse) catalog.Entry {
	e := catalog.Entry{
		ID:    string(g.GameID),
		Title: g.Title,
	}
	if g.Description != nil {
		e.Description = *g.Description
	}
	if g.OfficialURL != nil {
		e.OfficialURL = *g.OfficialURL
	}
	if len(g.Covers) > 0 && len(g.Covers[0].Images) > 0 && g.Covers[0].Images[0].ImageURL != "" {
		cover := g.Covers[0].Images[0].ImageURL
		e.CoverImageURL = &cover
	}
	return e
}
