package spotify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	errs "github.com/spettacolo/squalo/errors"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type tokenServer struct {
	*httptest.Server
	refreshCalls atomic.Int32
	ccCalls      atomic.Int32
}

// newTokenServer answers both grants. A nil handler for a grant answers 400 invalid_grant.
func newTokenServer(t *testing.T, refresh, clientCredentials http.HandlerFunc) *tokenServer {
	t.Helper()
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		var handler http.HandlerFunc
		switch r.PostForm.Get("grant_type") {
		case "refresh_token":
			ts.refreshCalls.Add(1)
			handler = refresh
		case "client_credentials":
			ts.ccCalls.Add(1)
			handler = clientCredentials
		}
		if handler == nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func grantToken(token string, extra map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body := map[string]any{"access_token": token, "token_type": "Bearer", "expires_in": 3600}
		for k, v := range extra {
			body[k] = v
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func TestTokenCache_Static_Token_Never_Calls_Network(t *testing.T) {
	req := require.New(t)
	server := newTokenServer(t, nil, nil)
	cache := NewTokenCache(Credentials{
		AccessToken:  "static-token",
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     server.URL,
	}, server.Client(), slog.Default())

	for i := 0; i < 3; i++ {
		tok, ok, err := cache.GetToken(context.Background())
		req.NoError(err)
		req.True(ok)
		req.Equal("static-token", tok.AccessToken)
		req.Equal(FlowStatic, tok.Flow)
	}
	req.Zero(server.refreshCalls.Load())
	req.Zero(server.ccCalls.Load())
	req.Equal(FlowStatic, cache.ActiveFlow())
}

func TestTokenCache_Without_Credentials_Reports_Unavailable(t *testing.T) {
	req := require.New(t)
	cache := NewTokenCache(Credentials{ClientID: "only-id"}, nil, slog.Default())

	tok, ok, err := cache.GetToken(context.Background())
	req.NoError(err)
	req.False(ok)
	req.Empty(tok.AccessToken)
}

func TestTokenCache_Client_Credentials_Cached_Until_Margin(t *testing.T) {
	req := require.New(t)
	server := newTokenServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.PostForm.Get("client_id") != "id" || r.PostForm.Get("client_secret") != "secret" {
			t.Errorf("credentials not sent in body: %v", r.PostForm)
		}
		grantToken("app-token", nil)(w, r)
	})
	clock := newFakeClock()
	cache := NewTokenCache(Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: server.URL},
		server.Client(), slog.Default()).WithClock(clock.Now)
	ctx := context.Background()

	tok, ok, err := cache.GetToken(ctx)
	req.NoError(err)
	req.True(ok)
	req.Equal("app-token", tok.AccessToken)
	req.Equal(FlowClientCredentials, tok.Flow)
	req.False(tok.Cached)

	clock.Advance(3590 * time.Second)
	tok, _, err = cache.GetToken(ctx)
	req.NoError(err)
	req.True(tok.Cached)
	req.Equal(int32(1), server.ccCalls.Load())

	clock.Advance(6 * time.Second)
	tok, _, err = cache.GetToken(ctx)
	req.NoError(err)
	req.False(tok.Cached)
	req.Equal(int32(2), server.ccCalls.Load())
}

func TestTokenCache_Refresh_Flow_Preferred_And_Rotated(t *testing.T) {
	req := require.New(t)
	var seenRefreshTokens []string
	var mu sync.Mutex
	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok || id != "id" || secret != "secret" {
			t.Errorf("expected basic auth, got %q %q %v", id, secret, ok)
		}
		mu.Lock()
		seenRefreshTokens = append(seenRefreshTokens, r.PostForm.Get("refresh_token"))
		mu.Unlock()
		grantToken("user-token", map[string]any{"refresh_token": "rt-2"})(w, r)
	}, grantToken("app-token", nil))

	cache := NewTokenCache(Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
		TokenURL:     server.URL,
	}, server.Client(), slog.Default())

	tok, ok, err := cache.GetToken(context.Background())
	req.NoError(err)
	req.True(ok)
	req.Equal("user-token", tok.AccessToken)
	req.Equal(FlowRefresh, tok.Flow)
	req.Zero(server.ccCalls.Load())

	result, err := cache.ForceRefresh(context.Background())
	req.NoError(err)
	req.False(result.Rotated)
	req.Equal([]string{"rt-1", "rt-2"}, seenRefreshTokens)
}

func TestTokenCache_Refresh_Failure_Falls_Back_To_Client_Credentials(t *testing.T) {
	req := require.New(t)
	server := newTokenServer(t, nil, grantToken("app-token", nil))
	cache := NewTokenCache(Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		RefreshToken: "revoked",
		TokenURL:     server.URL,
	}, server.Client(), slog.Default())

	tok, ok, err := cache.GetToken(context.Background())
	req.NoError(err)
	req.True(ok)
	req.Equal("app-token", tok.AccessToken)
	req.Equal(FlowClientCredentials, tok.Flow)
	req.False(tok.Flow.UserScoped())
	req.Equal(int32(1), server.refreshCalls.Load())
	req.Equal(int32(1), server.ccCalls.Load())
	req.Equal(FlowClientCredentials, cache.ActiveFlow())
}

func TestTokenCache_Client_Credentials_Failure_Is_Returned(t *testing.T) {
	req := require.New(t)
	server := newTokenServer(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid_client"})
	})
	cache := NewTokenCache(Credentials{ClientID: "id", ClientSecret: "bad", TokenURL: server.URL},
		server.Client(), slog.Default())

	_, ok, err := cache.GetToken(context.Background())
	req.False(ok)
	var exchangeErr *ExchangeError
	req.ErrorAs(err, &exchangeErr)
	req.Equal(http.StatusUnauthorized, exchangeErr.Status)
	req.Equal("client_credentials", exchangeErr.Grant)
	req.Contains(exchangeErr.Body, "invalid_client")
}

func TestTokenCache_Concurrent_Expiry_Triggers_One_Exchange(t *testing.T) {
	req := require.New(t)
	server := newTokenServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		grantToken("app-token", nil)(w, r)
	})
	cache := NewTokenCache(Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: server.URL},
		server.Client(), slog.Default())

	const callers = 10
	var wg sync.WaitGroup
	errCh := make(chan error, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, _, err := cache.GetToken(context.Background())
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		req.NoError(err)
	}
	req.Equal(int32(1), server.ccCalls.Load())
}

func TestTokenCache_ForceRefresh_Requires_Configuration(t *testing.T) {
	req := require.New(t)

	_, err := NewTokenCache(Credentials{}, nil, slog.Default()).ForceRefresh(context.Background())
	req.ErrorIs(err, errs.ErrNoClientCredential)

	_, err = NewTokenCache(Credentials{ClientID: "id", ClientSecret: "secret"}, nil, slog.Default()).
		ForceRefresh(context.Background())
	req.ErrorIs(err, errs.ErrNoRefreshToken)
}

func TestMaskSecret(t *testing.T) {
	req := require.New(t)
	req.Equal("AQBcde…uvwxyz", MaskSecret("AQBcdefghijklmnopqrstuvwxyz"))
	req.Equal("*****", MaskSecret("short"))
}
