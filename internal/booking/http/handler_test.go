package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

const (
	callerID  = "3f1c6a52-0c7e-4a0b-9a55-0f2f5f6b9e01"
	itemID    = "7b0d7c8e-5d0a-4a53-8f58-2f2b3e6a4c11"
	bookingID = "c2a3d1e4-9b7f-4d61-b0a2-8e5f6d7c9a21"
)

var start = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, bookerID string, req booking.CreateRequest) (*booking.Booking, error) {
	args := m.Called(ctx, bookerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockService) Decide(ctx context.Context, ownerID, id string, action booking.Action) (*booking.Booking, error) {
	args := m.Called(ctx, ownerID, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockService) GetForParticipant(ctx context.Context, viewerID, id string) (*booking.Booking, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockService) ListForRenter(ctx context.Context, userID string, bucket booking.Bucket, offset, size int) ([]*booking.Booking, int, error) {
	args := m.Called(ctx, userID, bucket, offset, size)
	return args.Get(0).([]*booking.Booking), args.Int(1), args.Error(2)
}
func (m *mockService) ListForOwner(ctx context.Context, userID string, bucket booking.Bucket, offset, size int) ([]*booking.Booking, int, error) {
	args := m.Called(ctx, userID, bucket, offset, size)
	return args.Get(0).([]*booking.Booking), args.Int(1), args.Error(2)
}

func setupRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		auth.SetCaller(c, callerID, "caller@example.com")
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, 20), fakeAuth)
	return r
}

func executeRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking(status booking.Status) *booking.Booking {
	return &booking.Booking{
		ID:         bookingID,
		ItemID:     itemID,
		ItemName:   "Drill",
		BookerID:   callerID,
		BookerName: "Bob",
		Start:      start,
		End:        start.Add(24 * time.Hour),
		Status:     status,
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, callerID, booking.CreateRequest{
			ItemID: itemID, Start: start, End: start.Add(24 * time.Hour),
		}).Return(sampleBooking(booking.StatusWaiting), nil)

		w := executeRequest(setupRouter(svc), http.MethodPost, "/v1/bookings", CreateBookingRequest{
			ItemID: itemID, Start: start, End: start.Add(24 * time.Hour),
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, bookingID, resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, ItemTag{ID: itemID, Name: "Drill"}, resp.Item)
		assert.Equal(t, UserTag{ID: callerID, Name: "Bob"}, resp.Booker)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidRangeIs400", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, callerID, mock.Anything).Return(nil, booking.ErrInvalidDateRange)

		w := executeRequest(setupRouter(svc), http.MethodPost, "/v1/bookings", CreateBookingRequest{
			ItemID: itemID, Start: start, End: start,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_date_range", resp.Kind)
	})

	t.Run("SelfBookingIs404", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, callerID, mock.Anything).Return(nil, item.ErrNotFound)

		w := executeRequest(setupRouter(svc), http.MethodPost, "/v1/bookings", CreateBookingRequest{
			ItemID: itemID, Start: start, End: start.Add(time.Hour),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingItemID", func(t *testing.T) {
		svc := new(mockService)
		w := executeRequest(setupRouter(svc), http.MethodPost, "/v1/bookings", map[string]any{
			"start": start, "end": start.Add(time.Hour),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})
}

func TestDecideBooking(t *testing.T) {
	t.Run("Approve", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Decide", mock.Anything, callerID, bookingID, booking.ActionApprove).
			Return(sampleBooking(booking.StatusApproved), nil)

		w := executeRequest(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
	})

	t.Run("Reject", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Decide", mock.Anything, callerID, bookingID, booking.ActionReject).
			Return(sampleBooking(booking.StatusRejected), nil)

		w := executeRequest(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=false", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"REJECTED"`)
	})

	t.Run("AlreadyApproved", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Decide", mock.Anything, callerID, bookingID, booking.ActionApprove).
			Return(nil, booking.ErrAlreadyApproved)

		w := executeRequest(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "booking already confirmed")
	})

	t.Run("MissingFlag", func(t *testing.T) {
		svc := new(mockService)
		w := executeRequest(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Decide")
	})
}

func TestGetBooking(t *testing.T) {
	svc := new(mockService)
	svc.On("GetForParticipant", mock.Anything, callerID, bookingID).Return(nil, booking.ErrNotFound)

	w := executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings/"+bookingID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "booking not found")

	w = executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookings(t *testing.T) {
	t.Run("RenterStateIsCaseInsensitive", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListForRenter", mock.Anything, callerID, booking.BucketFuture, 0, 20).
			Return([]*booking.Booking{sampleBooking(booking.StatusWaiting)}, 1, nil)

		w := executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings?state=future", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.PageResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, bookingID, resp.Items[0].ID)
	})

	t.Run("OwnerDefaultsToAll", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListForOwner", mock.Anything, callerID, booking.BucketAll, 10, 5).
			Return([]*booking.Booking{}, 0, nil)

		w := executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings/owner?from=10&size=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[],"from":10,"size":5,"total":0}`, w.Body.String())
	})

	t.Run("UnknownState", func(t *testing.T) {
		svc := new(mockService)
		w := executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings?state=SOMEDAY", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", resp.Error)
		assert.Equal(t, "unsupported_bucket", resp.Kind)
		svc.AssertNotCalled(t, "ListForRenter")
	})

	t.Run("PageTooLarge", func(t *testing.T) {
		svc := new(mockService)
		w := executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings?size=500", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NegativeFrom", func(t *testing.T) {
		svc := new(mockService)
		w := executeRequest(setupRouter(svc), http.MethodGet, "/v1/bookings?from=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
