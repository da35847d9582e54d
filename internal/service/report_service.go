package service

import (
	"context"
	"fmt"

	"cafe-pos/internal/model"
	"cafe-pos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reportService implements ReportService.
type reportService struct {
	reportRepo repository.ReportRepository
	menuRepo   repository.MenuRepository
	logger     zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(
	reportRepo repository.ReportRepository,
	menuRepo repository.MenuRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		menuRepo:   menuRepo,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

// Omset queries the three periods concurrently.
func (s *reportService) Omset(ctx context.Context) (*model.OmsetReport, error) {
	report := &model.OmsetReport{
		Daily:   decimal.Zero,
		Monthly: decimal.Zero,
		Yearly:  decimal.Zero,
	}

	targets := map[model.Period]*decimal.Decimal{
		model.PeriodDay:   &report.Daily,
		model.PeriodMonth: &report.Monthly,
		model.PeriodYear:  &report.Yearly,
	}

	g, gctx := errgroup.WithContext(ctx)
	for period, dst := range targets {
		g.Go(func() error {
			total, err := s.reportRepo.Omset(gctx, period)
			if err != nil {
				return err
			}
			*dst = total
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to compute omset")
		return nil, fmt.Errorf("failed to compute omset: %w", err)
	}

	return report, nil
}

func (s *reportService) SalesChart(ctx context.Context) ([]model.SalesChartPoint, error) {
	points, err := s.reportRepo.SalesChart(ctx, SalesChartDays)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales chart: %w", err)
	}
	return points, nil
}

func (s *reportService) TopProducts(ctx context.Context) ([]model.TopProduct, error) {
	products, err := s.reportRepo.TopProducts(ctx, TopProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	return products, nil
}

func (s *reportService) LowStock(ctx context.Context) ([]model.LowStockItem, error) {
	items, err := s.menuRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}
	return items, nil
}
