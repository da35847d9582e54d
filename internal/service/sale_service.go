package service

import (
	"context"
	"errors"
	"fmt"

	"cafe-pos/internal/metrics"
	"cafe-pos/internal/model"
	"cafe-pos/internal/repository"

	"github.com/rs/zerolog"
)

// saleService implements SaleService.
type saleService struct {
	txRepo   repository.TransactionRepository
	menuRepo repository.MenuRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewSaleService creates a new sale service.
func NewSaleService(
	txRepo repository.TransactionRepository,
	menuRepo repository.MenuRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) SaleService {
	return &saleService{
		txRepo:   txRepo,
		menuRepo: menuRepo,
		metrics:  m,
		logger:   logger.With().Str("service", "sale").Logger(),
	}
}

// RecordSale records a cart as one sale. Malformed carts and store failures
// alike are reported as model.ErrSaleFailed; the cause is only logged.
func (s *saleService) RecordSale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error) {
	if err := validateSaleRequest(req); err != nil {
		s.logger.Warn().Err(err).Msg("rejected malformed sale")
		s.metrics.SaleFailed()
		return nil, fmt.Errorf("%w: %v", model.ErrSaleFailed, err)
	}

	if req.IdempotencyKey != nil {
		id, err := s.txRepo.GetIDByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err != nil {
			s.metrics.SaleFailed()
			return nil, fmt.Errorf("%w: %v", model.ErrSaleFailed, err)
		}
		if id != 0 {
			return s.replayed(id, req), nil
		}
	}

	id, err := s.persist(ctx, req)
	if err != nil {
		// A concurrent submission with the same key committed first
		if req.IdempotencyKey != nil && errors.Is(err, model.ErrAlreadyExists) {
			existing, lookupErr := s.txRepo.GetIDByIdempotencyKey(ctx, *req.IdempotencyKey)
			if lookupErr == nil && existing != 0 {
				return s.replayed(existing, req), nil
			}
		}

		s.logger.Error().
			Err(err).
			Int("item_count", len(req.Items)).
			Str("total", req.Total.String()).
			Msg("sale rolled back")
		s.metrics.SaleFailed()
		return nil, fmt.Errorf("%w: %v", model.ErrSaleFailed, err)
	}

	s.metrics.SaleRecorded(len(req.Items))
	s.logger.Info().
		Int64("transaction_id", id).
		Int("item_count", len(req.Items)).
		Str("total", req.Total.String()).
		Str("method", req.Method).
		Msg("sale recorded")

	return &model.SaleResult{TransactionID: id}, nil
}

func (s *saleService) replayed(id int64, req *model.SaleRequest) *model.SaleResult {
	s.metrics.SaleReplayed()
	s.logger.Info().
		Int64("transaction_id", id).
		Str("idempotency_key", req.IdempotencyKey.String()).
		Msg("sale already recorded for idempotency key")
	return &model.SaleResult{TransactionID: id, Replayed: true}
}

// persist writes the header, every line item and every stock decrement in a
// single database transaction. The transaction ends exactly once: by Commit
// on success or by Rollback on any earlier failure.
func (s *saleService) persist(ctx context.Context, req *model.SaleRequest) (id int64, err error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}

	committing := false
	defer func() {
		if err != nil && !committing {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	location := req.Location
	if location == "" {
		location = model.DefaultLocation
	}

	header := &model.Transaction{
		Total:          *req.Total,
		PaymentMethod:  req.Method,
		DineType:       req.DineType,
		Location:       location,
		IdempotencyKey: req.IdempotencyKey,
	}

	id, err = s.txRepo.CreateTransaction(ctx, tx, header)
	if err != nil {
		return 0, err
	}

	for i, item := range req.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		line := &model.TransactionItem{
			TransactionID: id,
			MenuItemID:    item.ID,
			MenuName:      item.Name,
			Price:         item.Price,
			Quantity:      quantity,
		}

		if err = s.txRepo.CreateItem(ctx, tx, line); err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}

		if err = s.menuRepo.DecrementStock(ctx, tx, item.Name, quantity); err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}
	}

	// A failed Commit already ends the transaction and releases its connection
	committing = true
	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func validateSaleRequest(req *model.SaleRequest) error {
	if req == nil {
		return errors.New("sale request is nil")
	}
	if len(req.Items) == 0 {
		return errors.New("sale must contain at least one item")
	}
	if req.Total == nil {
		return errors.New("total is required")
	}
	if req.Total.IsNegative() {
		return errors.New("total cannot be negative")
	}

	for i, item := range req.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("item %d: price cannot be negative", i)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("item %d: quantity cannot be negative", i)
		}
	}

	return nil
}

func (s *saleService) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionSummary, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, model.NewValidationError("startDate must not be after endDate")
	}

	list, err := s.txRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return list, nil
}

func (s *saleService) GetTransaction(ctx context.Context, id int64) (*model.TransactionDetail, error) {
	detail, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return detail, nil
}
