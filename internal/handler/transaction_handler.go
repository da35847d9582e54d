package handler

import (
	"net/http"
	"time"

	"cafe-pos/internal/model"
	"cafe-pos/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IdempotencyKeyHeader carries the optional client supplied sale key.
const IdempotencyKeyHeader = "Idempotency-Key"

const dateLayout = "2006-01-02"

type saleResponse struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"transactionId"`
}

// TransactionHandler handles sale-related HTTP requests.
type TransactionHandler struct {
	service service.SaleService
	logger  zerolog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(service service.SaleService, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		logger:  logger.With().Str("handler", "transaction").Logger(),
	}
}

// Create handles POST /api/transactions requests.
// A replayed Idempotency-Key answers 200 with the original transaction ID.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SaleRequest

	if raw := r.Header.Get(IdempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid Idempotency-Key header", h.logger)
			return
		}
		req.IdempotencyKey = &key
	}

	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.service.RecordSale(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrSaleFailed.Message, h.logger)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, saleResponse{Message: "Transaction created", TransactionID: result.TransactionID})
}

// List handles GET /api/transactions requests with optional
// startDate and endDate (YYYY-MM-DD, inclusive) query parameters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.TransactionFilter

	query := r.URL.Query()
	for param, dst := range map[string]**time.Time{
		"startDate": &filter.StartDate,
		"endDate":   &filter.EndDate,
	} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid "+param+", expected YYYY-MM-DD", h.logger)
			return
		}
		*dst = &d
	}

	list, err := h.service.GetTransactions(r.Context(), filter)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, msg, h.logger)
			return
		}
		h.logger.Error().Err(err).Msg("failed to list transactions")
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetByID handles GET /api/transactions/{id} requests.
func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid transaction ID", h.logger)
		return
	}

	detail, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("transaction_id", id).Msg("failed to get transaction")
		writeError(w, http.StatusInternalServerError, "Failed to fetch transaction", h.logger)
		return
	}

	if detail == nil {
		writeError(w, http.StatusNotFound, "Transaction not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
