package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	itemRequestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := gin.New()
	r.GET("/ok", Healthz(fakePinger{}))
	r.GET("/down", Healthz(fakePinger{err: errors.New("connection refused")}))

	w := serve(r, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/down", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRateLimitPerCaller(t *testing.T) {
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		auth.SetCaller(c, c.GetHeader("X-User"), "")
	}, RateLimit(1, 2), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))
	assert.Equal(t, http.StatusNoContent, call("bob"))
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/ping", RateLimit(0, 0), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", "").Code)
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example,,https://b.example "))
	assert.Nil(t, splitOrigins(""))
}

// stubBookings answers renter listings with an empty page. Other methods
// are left to the nil embedded interface and must not be reached.
type stubBookings struct {
	booking.Service
	calls int
}

func (s *stubBookings) ListForRenter(context.Context, string, booking.Bucket, int, int) ([]*booking.Booking, int, error) {
	s.calls++
	return []*booking.Booking{}, 0, nil
}

func newTestRouter(t *testing.T, rps float64, burst int, bookings booking.Service) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	r := NewRouter(Config{
		Logger:             zerolog.Nop(),
		DB:                 fakePinger{},
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		JWTManager:         jwtManager,
		UserHandler:        userHttp.NewHandler(nil, jwtManager, 20),
		ItemHandler:        itemHttp.NewHandler(nil, nil, 20),
		BookingHandler:     bookingHttp.NewHandler(bookings, 20),
		ItemRequestHandler: itemRequestHttp.NewHandler(nil, 20),
		FileHandler:        fileHttp.NewHandler(nil, zerolog.Nop()),
	})
	return r, jwtManager
}

func TestRouterRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, 0, 0, &stubBookings{})

	for _, path := range []string{"/v1/bookings", "/v1/bookings/owner", "/v1/items", "/v1/requests", "/v1/me"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterLimitsAuthenticatedCallers(t *testing.T) {
	bookings := &stubBookings{}
	r, jwtManager := newTestRouter(t, 1, 1, bookings)
	token, err := jwtManager.GenerateAccessToken("3f1c6a52-0c7e-4a0b-9a55-0f2f5f6b9e01", "a@example.com")
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/v1/bookings?state=current", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, bookings.calls)

	w = serve(r, http.MethodGet, "/v1/bookings?state=current", token)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, bookings.calls)
}

func TestRouterRejectsUnknownBucket(t *testing.T) {
	bookings := &stubBookings{}
	r, jwtManager := newTestRouter(t, 0, 0, bookings)
	token, err := jwtManager.GenerateAccessToken("3f1c6a52-0c7e-4a0b-9a55-0f2f5f6b9e01", "a@example.com")
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/v1/bookings?state=nope", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, bookings.calls)
}
