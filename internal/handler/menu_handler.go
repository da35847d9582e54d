package handler

import (
	"errors"
	"net/http"

	"cafe-pos/internal/model"
	"cafe-pos/internal/service"

	"github.com/rs/zerolog"
)

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu requests. Supports an optional category filter.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list menu")
		writeError(w, http.StatusInternalServerError, "Failed to fetch menu", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/menu/{id} requests.
func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid menu item ID", h.logger)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to get menu item")
		writeError(w, http.StatusInternalServerError, "Failed to fetch menu item", h.logger)
		return
	}

	if item == nil {
		writeError(w, http.StatusNotFound, "Menu item not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.MenuItemInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create menu item")
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{Message: "Menu item created", ID: id})
}

// Update handles PUT /api/menu/{id} requests.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid menu item ID", h.logger)
		return
	}

	var input model.MenuItemInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.service.Update(r.Context(), id, &input); err != nil {
		h.writeServiceError(w, err, "Failed to update menu item")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Menu item updated"})
}

// Delete handles DELETE /api/menu/{id} requests.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid menu item ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "Failed to delete menu item")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Menu item deleted"})
}

func (h *MenuHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if msg, ok := validationMessage(err); ok {
		writeError(w, http.StatusBadRequest, msg, h.logger)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "Menu item not found", h.logger)
	case errors.Is(err, model.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Menu item name already exists", h.logger)
	default:
		h.logger.Error().Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, fallback, h.logger)
	}
}
