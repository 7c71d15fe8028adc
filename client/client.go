// Package client is the API client for the recipebook service. It mirrors
// the browser application: it fetches the recipe catalog once, caches it,
// filters it locally without further round-trips, and tracks login state
// from auth responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/user/recipebook-go/apperror"
	"github.com/user/recipebook-go/auth"
	"github.com/user/recipebook-go/recipes"
	"github.com/user/recipebook-go/users"
)

// Client talks to the recipebook API. The session cookie issued on login is
// held in the jar and sent automatically. Client is not safe for concurrent
// use; it models a single-threaded UI loop.
type Client struct {
	baseURL string
	http    *http.Client

	// cached is the last fully fetched catalog, replaced wholesale on each
	// successful fetch and left untouched on failure.
	cached   []recipes.Recipe
	loggedIn bool
}

// New creates a Client for the API at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}, nil
}

// FetchRecipes loads the full catalog from GET /recipes and replaces the
// cache. On error the previous cache is kept so the caller can keep showing
// what it had.
func (c *Client) FetchRecipes(ctx context.Context) ([]recipes.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recipes", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var fetched []recipes.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	c.cached = fetched
	return c.Recipes(), nil
}

// Recipes returns a copy of the cached catalog.
func (c *Client) Recipes() []recipes.Recipe {
	out := make([]recipes.Recipe, len(c.cached))
	copy(out, c.cached)
	return out
}

// Filter returns the visible subset of the cached catalog for the given
// search term and category. It is pure and performs no network access.
func (c *Client) Filter(term, category string) []recipes.Recipe {
	return FilterRecipes(c.cached, term, category)
}

// Register creates an account. No session is established.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.postAuth(ctx, auth.AuthRequest{Action: auth.ActionRegister, Email: email, Password: password})
}

// Login authenticates and, on success, marks the client logged in; the
// session cookie lands in the jar. A failed login changes nothing.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if err := c.postAuth(ctx, auth.AuthRequest{Action: auth.ActionLogin, Email: email, Password: password}); err != nil {
		return err
	}
	c.loggedIn = true
	return nil
}

// Logout destroys the server-side session and clears the local flag. It
// succeeds even when no session exists.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.postAuth(ctx, auth.AuthRequest{Action: auth.ActionLogout}); err != nil {
		return err
	}
	c.loggedIn = false
	return nil
}

// LoggedIn reports the client's local login flag.
func (c *Client) LoggedIn() bool {
	return c.loggedIn
}

// CurrentUser fetches the authenticated user's profile via GET /users/me.
func (c *Client) CurrentUser(ctx context.Context) (*users.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var profile users.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// postAuth sends an action to POST /auth and folds error bodies into errors.
func (c *Client) postAuth(ctx context.Context, payload auth.AuthRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call auth endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	var out auth.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success {
		return errors.New("request did not succeed")
	}
	return nil
}

// decodeError turns a non-2xx response into an error carrying the server's
// message verbatim, so callers can show it to the user as-is.
func decodeError(resp *http.Response) error {
	var body apperror.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return errors.New(body.Error)
}
