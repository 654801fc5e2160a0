package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/lmicro/gomero/internal/shared"
	"golang.org/x/oauth2"
)

// Gateway is a session-holding JSON client for the remote-object gateway.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	csrfToken    string
	sessionToken string
	userID       int64
	groupID      int64
}

// Opts contains construction options for a Gateway.
type Opts struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// New creates a Gateway for the given base URL (e.g. "http://localhost:4064/api/v0").
func New(opts Opts) *Gateway {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:4064/api/v0"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Gateway{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// BaseURL returns the gateway base URL.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Connected reports whether a session token is held.
func (g *Gateway) Connected() bool { return g.sessionToken != "" }

// UserID returns the authenticated user's ID, valid after Login.
func (g *Gateway) UserID() int64 { return g.userID }

// GroupID returns the authenticated user's default group ID, valid after Login.
func (g *Gateway) GroupID() int64 { return g.groupID }

// Login performs the session handshake: fetches a CSRF token, posts the
// credentials, and stores the resulting session token.
func (g *Gateway) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password required", shared.ErrMissingCredentials)
	}

	var tokenResp struct {
		Data string `json:"data"`
	}
	if err := g.doRequest(ctx, http.MethodGet, "/token", nil, nil, &tokenResp); err != nil {
		return fmt.Errorf("failed to fetch CSRF token: %w", err)
	}
	g.csrfToken = tokenResp.Data

	body := map[string]string{"username": username, "password": password}

	var loginResp struct {
		EventContext struct {
			SessionUUID string `json:"sessionUuid"`
			UserID      int64  `json:"userId"`
			GroupID     int64  `json:"groupId"`
		} `json:"eventContext"`
	}
	if err := g.doRequest(ctx, http.MethodPost, "/login", nil, body, &loginResp); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if loginResp.EventContext.SessionUUID == "" {
		return fmt.Errorf("%w: no session in login response", shared.ErrAuthFailed)
	}

	g.sessionToken = loginResp.EventContext.SessionUUID
	g.userID = loginResp.EventContext.UserID
	g.groupID = loginResp.EventContext.GroupID

	g.logger.Debug("session established", "user", loginResp.EventContext.UserID)
	return nil
}

// SetSessionToken installs a previously established session token, e.g. one
// imported from a saved session file or a copied web session.
func (g *Gateway) SetSessionToken(token string) {
	g.sessionToken = token
}

// SessionToken returns the held session token.
func (g *Gateway) SessionToken() string { return g.sessionToken }

// SetCSRFToken installs a CSRF token for an imported web session.
func (g *Gateway) SetCSRFToken(token string) {
	g.csrfToken = token
}

// SetBearerToken switches the transport to OAuth2 bearer authentication for
// deployments fronted by an OIDC proxy. The session handshake is skipped.
func (g *Gateway) SetBearerToken(ctx context.Context, token *oauth2.Token) {
	src := oauth2.StaticTokenSource(token)
	g.httpClient = oauth2.NewClient(ctx, src)
	// The proxy establishes the gateway session from the bearer token.
	g.sessionToken = token.AccessToken
}

// Logout closes the remote session and clears local session state.
func (g *Gateway) Logout(ctx context.Context) error {
	if !g.Connected() {
		return nil
	}

	err := g.doRequest(ctx, http.MethodPost, "/logout", nil, nil, nil)

	g.sessionToken = ""
	g.csrfToken = ""
	g.userID = 0
	g.groupID = 0

	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Browser returns the read-only query facility.
func (g *Gateway) Browser() *Browser { return &Browser{gw: g} }

// DataManager returns the write facility for save, delete and link operations.
func (g *Gateway) DataManager() *DataManager { return &DataManager{gw: g} }

// doRequest performs a JSON request against the gateway and decodes the
// response into result (when non-nil). Failures map to typed errors.
func (g *Gateway) doRequest(ctx context.Context, method, endpoint string, query url.Values, body, result any) error {
	op := method + " " + endpoint

	apiURL := g.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ServiceError{Op: op, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return &ServiceError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	g.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &ServiceError{Op: op, Err: fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &ServiceError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

// doRaw performs a request returning the raw response body, used for
// thumbnails and file downloads.
func (g *Gateway) doRaw(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error) {
	op := method + " " + endpoint

	apiURL := g.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(op, resp.StatusCode, readErrorMessage(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return data, nil
}

func (g *Gateway) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if g.sessionToken != "" {
		req.Header.Set("X-Session-Token", g.sessionToken)
	}
	if g.csrfToken != "" {
		req.Header.Set("X-CSRFToken", g.csrfToken)
	}
}

// readErrorMessage pulls a human-readable message out of an error response.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	return string(bytes.TrimSpace(data))
}
