package service

import (
	"context"
	"fmt"

	"cafe-pos/internal/model"
	"cafe-pos/internal/repository"

	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	repo   repository.MenuRepository
	logger zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(repo repository.MenuRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		repo:   repo,
		logger: logger.With().Str("service", "menu").Logger(),
	}
}

func (s *menuService) List(ctx context.Context, category string) ([]model.MenuItem, error) {
	items, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

func (s *menuService) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) Create(ctx context.Context, input *model.MenuItemInput) (int64, error) {
	item, err := menuItemFromInput(input)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().Int64("menu_item_id", id).Str("name", item.Name).Msg("menu item created")

	return id, nil
}

func (s *menuService) Update(ctx context.Context, id int64, input *model.MenuItemInput) error {
	item, err := menuItemFromInput(input)
	if err != nil {
		return err
	}
	item.ID = id

	if err := s.repo.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	s.logger.Info().Int64("menu_item_id", id).Msg("menu item updated")

	return nil
}

func (s *menuService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.logger.Info().Int64("menu_item_id", id).Msg("menu item deleted")

	return nil
}

// menuItemFromInput validates a create/replace payload.
func menuItemFromInput(input *model.MenuItemInput) (*model.MenuItem, error) {
	if input == nil {
		return nil, model.NewValidationError("Menu item is required")
	}
	if input.Name == "" {
		return nil, model.NewValidationError("Name is required")
	}
	if input.Price == nil {
		return nil, model.NewValidationError("Price is required")
	}
	if input.Price.IsNegative() {
		return nil, model.NewValidationError("Price cannot be negative")
	}
	if input.Stock == nil {
		return nil, model.NewValidationError("Stock is required")
	}

	minStock := model.DefaultMinStock
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return nil, model.NewValidationError("Minimum stock cannot be negative")
		}
		minStock = *input.MinStock
	}

	return &model.MenuItem{
		Name:        input.Name,
		Price:       *input.Price,
		Stock:       *input.Stock,
		MinStock:    minStock,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
	}, nil
}
