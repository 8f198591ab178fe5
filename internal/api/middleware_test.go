package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, secret []byte, role, typ string, ttl time.Duration) string {
	t.Helper()
	claims := &TokenClaims{
		UserID:    "mod-1",
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestRequireModerator(t *testing.T) {
	secret := []byte("test-secret")
	h, _ := newTestServer(t, AuthConfig{Secret: secret})
	path := "/videos/funny_dogs_video_id/flag"

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + makeToken(t, []byte("other"), "moderator", "access", time.Minute), http.StatusUnauthorized},
		{"expired", "Bearer " + makeToken(t, secret, "moderator", "access", -time.Minute), http.StatusUnauthorized},
		{"refresh token", "Bearer " + makeToken(t, secret, "moderator", "refresh", time.Minute), http.StatusUnauthorized},
		{"listener role", "Bearer " + makeToken(t, secret, "listener", "access", time.Minute), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers []string
			if tt.header != "" {
				headers = []string{"Authorization", tt.header}
			}
			w, _ := do(t, h, http.MethodPost, path, nil, headers...)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	token := makeToken(t, secret, "moderator", "access", time.Minute)
	w, body := do(t, h, http.MethodPost, path, nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Not supplied", body["reason"])

	// Non moderation routes stay open.
	w, _ = do(t, h, http.MethodGet, "/videos", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClaimsFromContext(t *testing.T) {
	secret := []byte("s")
	srv := &Server{auth: AuthConfig{Secret: secret, ModeratorRole: "moderator"}}

	var got *TokenClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, secret, "moderator", "access", time.Minute))
	srv.requireModerator(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "mod-1", got.UserID)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://app.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/videos", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/videos", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitDisabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(0)(next)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, "broadcast")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewRedisPublisher(rdb, "broadcast")
	srv := NewServer(nil, pub, AuthConfig{})
	srv.publishEvent(ctx, "playlist.created", map[string]any{"name": "fun"})

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"type":"playlist.created"`)
		assert.Contains(t, msg.Payload, `"name":"fun"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}
