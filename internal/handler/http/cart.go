package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.StorefrontService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// Only the product id is accepted; the snapshot is read from the catalog.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"omitempty,gte=1,lte=100"`
}

// UpdateQuantityRequest is the JSON request body for updating an item's quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=100"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Cart(r.Context(), sessionID(r))
	h.respond(w, r, state, err)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequest(err), h.logger)
		return
	}

	state, err := h.service.AddToCart(r.Context(), sessionID(r), req.ProductID, max(req.Quantity, 1))
	h.respond(w, r, state, err)
}

// UpdateItem handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, badRequest(err), h.logger)
		return
	}

	state, err := h.service.UpdateQuantity(r.Context(), sessionID(r), productID, *req.Quantity)
	h.respond(w, r, state, err)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	state, err := h.service.RemoveFromCart(r.Context(), sessionID(r), productID)
	h.respond(w, r, state, err)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.ClearCart(r.Context(), sessionID(r))
	h.respond(w, r, state, err)
}

// DismissConfirmation handles DELETE /api/v1/cart/confirmation
func (h *CartHandler) DismissConfirmation(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.DismissConfirmation(r.Context(), sessionID(r))
	h.respond(w, r, state, err)
}

// DismissError handles DELETE /api/v1/cart/error
func (h *CartHandler) DismissError(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.DismissError(r.Context(), sessionID(r))
	h.respond(w, r, state, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, state domain.CartState, err error) {
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, state)
}
