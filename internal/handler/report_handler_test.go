package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportHandler(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc, zerolog.Nop())

	svc.On("Omset", mock.Anything).Return(&model.OmsetReport{
		Daily:   decimal.Zero,
		Monthly: decimal.NewFromInt(40000),
		Yearly:  decimal.NewFromInt(40000),
	}, nil)
	svc.On("SalesChart", mock.Anything).Return([]model.SalesChartPoint{
		{Date: "2025-03-01", Total: decimal.NewFromInt(40000)},
	}, nil)
	svc.On("TopProducts", mock.Anything).Return([]model.TopProduct{
		{MenuName: "Latte", TotalSold: 4},
	}, nil)
	svc.On("LowStock", mock.Anything).Return([]model.LowStockItem{}, nil)

	tests := []struct {
		name         string
		serve        http.HandlerFunc
		expectedBody string
	}{
		{
			name:         "Omset",
			serve:        handler.Omset,
			expectedBody: `{"daily":0,"monthly":40000,"yearly":40000}`,
		},
		{
			name:         "Sales chart",
			serve:        handler.SalesChart,
			expectedBody: `[{"date":"2025-03-01","total":40000}]`,
		},
		{
			name:         "Top products",
			serve:        handler.TopProducts,
			expectedBody: `[{"menu_name":"Latte","total_sold":4}]`,
		},
		{
			name:         "Low stock",
			serve:        handler.LowStock,
			expectedBody: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.serve(w, httptest.NewRequest(http.MethodGet, "/api/reports", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestReportHandler_Omset_Error(t *testing.T) {
	svc := new(MockReportService)
	handler := NewReportHandler(svc, zerolog.Nop())
	svc.On("Omset", mock.Anything).Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	handler.Omset(w, httptest.NewRequest(http.MethodGet, "/api/reports/omset", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch omset"}`, w.Body.String())
}
