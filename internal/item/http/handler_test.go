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
	"github.com/nekogravitycat/shareit-backend/internal/item"
)

const (
	ownerID  = "3f1c6a52-0c7e-4a0b-9a55-0f2f5f6b9e01"
	renterID = "5a9e2b41-7d3c-4f18-8b26-1c4d5e6f7a82"
	itemID   = "7b0d7c8e-5d0a-4a53-8f58-2f2b3e6a4c11"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, ownerID string, req item.CreateRequest) (*item.Item, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}
func (m *mockService) Update(ctx context.Context, ownerID, itemID string, req item.UpdateRequest) (*item.Item, error) {
	args := m.Called(ctx, ownerID, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}
func (m *mockService) Delete(ctx context.Context, ownerID, itemID string) error {
	return m.Called(ctx, ownerID, itemID).Error(0)
}
func (m *mockService) GetByID(ctx context.Context, id string) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}
func (m *mockService) Get(ctx context.Context, viewerID, itemID string) (item.View, error) {
	args := m.Called(ctx, viewerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(item.View), args.Error(1)
}
func (m *mockService) ListByOwner(ctx context.Context, ownerID string, offset, size int) ([]*item.OwnerView, int, error) {
	args := m.Called(ctx, ownerID, offset, size)
	return args.Get(0).([]*item.OwnerView), args.Int(1), args.Error(2)
}
func (m *mockService) Search(ctx context.Context, viewerID, text string, offset, size int) ([]*item.Item, int, error) {
	args := m.Called(ctx, viewerID, text, offset, size)
	return args.Get(0).([]*item.Item), args.Int(1), args.Error(2)
}
func (m *mockService) CreateComment(ctx context.Context, userID, itemID, text string) (*item.Comment, error) {
	args := m.Called(ctx, userID, itemID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Comment), args.Error(1)
}
func (m *mockService) AttachPhoto(ctx context.Context, ownerID, itemID, fileID string) (*item.Item, error) {
	args := m.Called(ctx, ownerID, itemID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func setupRouter(svc item.Service, callerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		auth.SetCaller(c, callerID, "")
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, nil, 20), fakeAuth)
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

func drill() *item.Item {
	return &item.Item{ID: itemID, Name: "Drill", Description: "cordless", Available: true, OwnerID: ownerID}
}

func TestGetItemProjections(t *testing.T) {
	comments := []*item.Comment{{ID: "c1", Text: "great", AuthorName: "Bob", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}}

	t.Run("OwnerSeesBookingWindow", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, ownerID, itemID).Return(&item.OwnerView{
			PublicView:  item.PublicView{Item: drill(), Comments: comments},
			LastBooking: &item.BookingRef{ID: "b1", BookerID: renterID},
		}, nil)

		w := executeRequest(setupRouter(svc, ownerID), http.MethodGet, "/v1/items/"+itemID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]any{"id": "b1", "booker_id": renterID}, body["last_booking"])
		assert.Contains(t, body, "next_booking")
		assert.Nil(t, body["next_booking"])
		assert.Len(t, body["comments"], 1)
	})

	t.Run("OthersSeePublicFieldsOnly", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, renterID, itemID).Return(&item.PublicView{Item: drill(), Comments: comments}, nil)

		w := executeRequest(setupRouter(svc, renterID), http.MethodGet, "/v1/items/"+itemID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotContains(t, body, "last_booking")
		assert.NotContains(t, body, "next_booking")
		assert.Equal(t, "Drill", body["name"])
		assert.Len(t, body["comments"], 1)
	})

	t.Run("Missing", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, renterID, itemID).Return(nil, item.ErrNotFound)

		w := executeRequest(setupRouter(svc, renterID), http.MethodGet, "/v1/items/"+itemID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateCommentWithoutBooking(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateComment", mock.Anything, renterID, itemID, "great").Return(nil, item.ErrDidNotBook)

	w := executeRequest(setupRouter(svc, renterID), http.MethodPost, "/v1/items/"+itemID+"/comment", CreateCommentRequest{Text: "great"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "action_not_permitted")
}

func TestCreateItemRequiresAvailableFlag(t *testing.T) {
	svc := new(mockService)

	w := executeRequest(setupRouter(svc, ownerID), http.MethodPost, "/v1/items", map[string]any{
		"name": "Drill", "description": "cordless",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadPhotoHidesForeignItem(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByID", mock.Anything, itemID).Return(drill(), nil)

	w := executeRequest(setupRouter(svc, renterID), http.MethodPost, "/v1/items/"+itemID+"/photo", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "AttachPhoto", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
