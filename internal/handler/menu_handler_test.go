package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafe-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuHandler_List(t *testing.T) {
	svc := new(MockMenuService)
	handler := NewMenuHandler(svc, zerolog.Nop())

	items := []model.MenuItem{
		{ID: 1, Name: "Latte", Price: decimal.NewFromInt(25000), Stock: 10, MinStock: 5, Category: "coffee"},
	}
	svc.On("List", mock.Anything, "coffee").Return(items, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/menu?category=coffee", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Latte", got[0]["name"])
	assert.Equal(t, float64(25000), got[0]["price"])
	assert.Equal(t, float64(5), got[0]["min_stock"])
	svc.AssertExpectations(t)
}

func TestMenuHandler_GetByID(t *testing.T) {
	stored := &model.MenuItem{
		ID:          7,
		Name:        "Croissant",
		Price:       decimal.NewFromInt(15000),
		Stock:       3,
		MinStock:    5,
		Category:    "pastry",
		LastUpdated: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		id             string
		setup          func(svc *MockMenuService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Found",
			id:   "7",
			setup: func(svc *MockMenuService) {
				svc.On("GetByID", mock.Anything, int64(7)).Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"id":7,"name":"Croissant","price":15000,"stock":3,"min_stock":5,` +
				`"category":"pastry","description":"","image":"","last_updated":"2025-03-01T08:00:00Z"}`,
		},
		{
			name: "Not found",
			id:   "8",
			setup: func(svc *MockMenuService) {
				svc.On("GetByID", mock.Anything, int64(8)).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Menu item not found"}`,
		},
		{
			name: "Zero ID",
			id:   "0",
			setup: func(svc *MockMenuService) {
				svc.On("GetByID", mock.Anything, int64(0)).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Menu item not found"}`,
		},
		{
			name: "Negative ID",
			id:   "-1",
			setup: func(svc *MockMenuService) {
				svc.On("GetByID", mock.Anything, int64(-1)).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Menu item not found"}`,
		},
		{
			name:           "Invalid ID",
			id:             "latte",
			setup:          func(*MockMenuService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid menu item ID"}`,
		},
		{
			name: "Store failure",
			id:   "7",
			setup: func(svc *MockMenuService) {
				svc.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to fetch menu item"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMenuService)
			tt.setup(svc)
			handler := NewMenuHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/menu/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestMenuHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Created",
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"Menu item created","id":12}`,
		},
		{
			name:           "Validation error",
			mockError:      model.NewValidationError("Price is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Price is required"}`,
		},
		{
			name:           "Duplicate name",
			mockError:      fmt.Errorf("failed to create menu item: %w", model.ErrAlreadyExists),
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Menu item name already exists"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMenuService)
			handler := NewMenuHandler(svc, zerolog.Nop())

			svc.On("Create", mock.Anything, mock.MatchedBy(func(in *model.MenuItemInput) bool {
				return in.Name == "Latte" && in.Price != nil && in.MinStock != nil && *in.MinStock == 3
			})).Return(int64(12), tt.mockError)

			body := bytes.NewBufferString(`{"name":"Latte","price":25000,"stock":10,"minStock":3,"category":"coffee"}`)
			w := httptest.NewRecorder()
			handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/menu", body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestMenuHandler_UpdateAndDelete(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		id             string
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Update",
			method:         http.MethodPut,
			id:             "4",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Menu item updated"}`,
		},
		{
			name:           "Update missing",
			method:         http.MethodPut,
			id:             "5",
			mockError:      fmt.Errorf("menu item 5: %w", model.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Menu item not found"}`,
		},
		{
			name:           "Delete",
			method:         http.MethodDelete,
			id:             "4",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Menu item deleted"}`,
		},
		{
			name:           "Delete missing",
			method:         http.MethodDelete,
			id:             "5",
			mockError:      fmt.Errorf("menu item 5: %w", model.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Menu item not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMenuService)
			handler := NewMenuHandler(svc, zerolog.Nop())

			var body *bytes.Buffer
			if tt.method == http.MethodPut {
				body = bytes.NewBufferString(`{"name":"Latte","price":26000,"stock":10,"category":"coffee"}`)
				svc.On("Update", mock.Anything, mock.AnythingOfType("int64"), mock.Anything).Return(tt.mockError)
			} else {
				body = &bytes.Buffer{}
				svc.On("Delete", mock.Anything, mock.AnythingOfType("int64")).Return(tt.mockError)
			}

			req := httptest.NewRequest(tt.method, "/api/menu/"+tt.id, body)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			if tt.method == http.MethodPut {
				handler.Update(w, req)
			} else {
				handler.Delete(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
