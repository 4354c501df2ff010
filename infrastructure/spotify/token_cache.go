package spotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	errs "github.com/spettacolo/squalo/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// Flow names the strategy that produced a token.
type Flow string

const (
	FlowStatic            Flow = "STATIC"
	FlowRefresh           Flow = "REFRESH"
	FlowClientCredentials Flow = "CLIENT_CREDENTIALS"
)

const (
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
	// ExpiryMargin is how long before expiry a cached token stops being handed out.
	ExpiryMargin = 5 * time.Second

	grantRefreshToken      = "refresh_token"
	grantClientCredentials = "client_credentials"
	exchangeKey            = "token"
	forcedRefreshKey       = "refresh"
)

// UserScoped reports whether tokens of this flow may call per-user endpoints.
func (f Flow) UserScoped() bool {
	return f != FlowClientCredentials
}

type Credentials struct {
	AccessToken  string
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	Flow        Flow
	Cached      bool
}

// ExchangeError is a failed call to the token endpoint.
type ExchangeError struct {
	Grant  string
	Status int
	Body   string
	Err    error
}

func (e *ExchangeError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s exchange failed with status %d: %s", e.Grant, e.Status, e.Body)
	}
	return fmt.Sprintf("%s exchange failed: %v", e.Grant, e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// RefreshResult describes a forced refresh-token exchange.
type RefreshResult struct {
	Token            Token
	Rotated          bool
	UsedRefreshToken string
}

// TokenCache hands out Spotify access tokens and keeps the last exchanged
// one in memory until it gets close to expiry.
// Concurrent callers that find the cache stale share a single exchange.
type TokenCache struct {
	creds  Credentials
	client *http.Client
	log    *slog.Logger
	now    func() time.Time

	mu           sync.Mutex
	cached       *Token
	refreshToken string

	group singleflight.Group
}

func NewTokenCache(creds Credentials, client *http.Client, log *slog.Logger) *TokenCache {
	if strings.TrimSpace(creds.TokenURL) == "" {
		creds.TokenURL = DefaultTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TokenCache{
		creds:        creds,
		client:       client,
		log:          log,
		now:          time.Now,
		refreshToken: creds.RefreshToken,
	}
}

// WithClock replaces the time source, for tests.
func (c *TokenCache) WithClock(now func() time.Time) *TokenCache {
	c.now = now
	return c
}

func (c *TokenCache) hasClientCredentials() bool {
	return c.creds.ClientID != "" && c.creds.ClientSecret != ""
}

// GetToken returns a usable token. ok is false, with a nil error, when no
// credentials are configured at all.
func (c *TokenCache) GetToken(ctx context.Context) (Token, bool, error) {
	if c.creds.AccessToken != "" {
		return Token{AccessToken: c.creds.AccessToken, Flow: FlowStatic}, true, nil
	}
	if !c.hasClientCredentials() {
		return Token{}, false, nil
	}
	if tok, ok := c.fresh(); ok {
		return tok, true, nil
	}

	v, err, _ := c.group.Do(exchangeKey, func() (any, error) {
		if tok, ok := c.fresh(); ok {
			return tok, nil
		}
		return c.exchange(ctx)
	})
	if err != nil {
		return Token{}, false, err
	}
	return v.(Token), true, nil
}

// ActiveFlow is the flow of the cached token, or the flow the next exchange will try first.
func (c *TokenCache) ActiveFlow() Flow {
	if c.creds.AccessToken != "" {
		return FlowStatic
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil {
		return c.cached.Flow
	}
	if c.refreshToken != "" {
		return FlowRefresh
	}
	return FlowClientCredentials
}

// ForceRefresh runs a refresh-token exchange regardless of the cache state.
func (c *TokenCache) ForceRefresh(ctx context.Context) (RefreshResult, error) {
	if !c.hasClientCredentials() {
		return RefreshResult{}, errs.ErrNoClientCredential
	}
	used := c.currentRefreshToken()
	if used == "" {
		return RefreshResult{}, errs.ErrNoRefreshToken
	}
	v, err, _ := c.group.Do(forcedRefreshKey, func() (any, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return RefreshResult{}, err
	}
	return RefreshResult{
		Token:            v.(Token),
		Rotated:          c.currentRefreshToken() != used,
		UsedRefreshToken: MaskSecret(used),
	}, nil
}

func (c *TokenCache) fresh() (Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil || !c.now().Add(ExpiryMargin).Before(c.cached.ExpiresAt) {
		return Token{}, false
	}
	tok := *c.cached
	tok.Cached = true
	return tok, true
}

func (c *TokenCache) currentRefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken
}

// exchange prefers the user-scoped refresh flow and falls back to client credentials.
func (c *TokenCache) exchange(ctx context.Context) (Token, error) {
	if c.currentRefreshToken() != "" {
		tok, err := c.refresh(ctx)
		if err == nil {
			return tok, nil
		}
		c.log.Warn("Refresh token flow failed, falling back to client credentials", "error", err)
	}
	return c.clientCredentials(ctx)
}

func (c *TokenCache) refresh(ctx context.Context) (Token, error) {
	current := c.currentRefreshToken()
	config := &oauth2.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.creds.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	tok, err := config.TokenSource(ctx, &oauth2.Token{RefreshToken: current}).Token()
	if err != nil {
		return Token{}, toExchangeError(grantRefreshToken, err)
	}
	if tok.RefreshToken != "" && tok.RefreshToken != current {
		c.mu.Lock()
		c.refreshToken = tok.RefreshToken
		c.mu.Unlock()
		c.log.Info("Spotify rotated the refresh token")
	}
	return c.store(tok, FlowRefresh), nil
}

func (c *TokenCache) clientCredentials(ctx context.Context) (Token, error) {
	config := &clientcredentials.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		TokenURL:     c.creds.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	tok, err := config.Token(ctx)
	if err != nil {
		return Token{}, toExchangeError(grantClientCredentials, err)
	}
	return c.store(tok, FlowClientCredentials), nil
}

// store caches the token. oauth2 computes Expiry from the wall clock, so the
// remaining lifetime is re-anchored on the cache clock.
func (c *TokenCache) store(tok *oauth2.Token, flow Flow) Token {
	now := c.now()
	expiresAt := now
	if !tok.Expiry.IsZero() {
		expiresAt = now.Add(time.Until(tok.Expiry))
	}
	entry := Token{AccessToken: tok.AccessToken, ExpiresAt: expiresAt, Flow: flow}

	c.mu.Lock()
	c.cached = &entry
	c.mu.Unlock()

	c.log.Debug("Cached spotify token", "flow", flow, "expires_at", expiresAt)
	return entry
}

func toExchangeError(grant string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		exchangeErr := &ExchangeError{Grant: grant, Body: string(retrieveErr.Body), Err: err}
		if retrieveErr.Response != nil {
			exchangeErr.Status = retrieveErr.Response.StatusCode
		}
		return exchangeErr
	}
	return &ExchangeError{Grant: grant, Err: err}
}

// MaskSecret keeps the first and last six characters of a secret.
func MaskSecret(secret string) string {
	if len(secret) <= 12 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:6] + "…" + secret[len(secret)-6:]
}
