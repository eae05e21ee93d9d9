package handler

import (
	"errors"
	"net/http"
	"strings"

	"ostocare-be/internal/cart"
	"ostocare-be/internal/logger"
	"ostocare-be/internal/product"
	"ostocare-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Variant   string `json:"variant"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Variant  string `json:"variant"`
	Quantity *int   `json:"quantity"`
}

type addItemResponse struct {
	Item cart.LineItem `json:"item"`
	Cart cart.Snapshot `json:"cart"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.sessionStore(r).Snapshot())
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	snap := h.sessionStore(r).Snapshot()
	utils.WriteJSON(w, http.StatusOK, cart.Summarize(snap, h.pricing))
}

// addItem looks the product up so that price, name and image are taken from
// the catalog rather than from the client. Quantity defaults to 1.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, "invalid_request", http.StatusBadRequest)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		writeError(w, "invalid_product", http.StatusBadRequest)
		return
	}

	p, err := h.products.Get(r.Context(), productID)
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}

	store := h.sessionStore(r)
	item, err := store.AddItem(r.Context(), *p, quantity, strings.TrimSpace(req.Variant))
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, addItemResponse{Item: item, Cart: store.Snapshot()})
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.Quantity == nil {
		writeError(w, "invalid_request", http.StatusBadRequest)
		return
	}

	store := h.sessionStore(r)
	err := store.SetQuantity(r.Context(), chi.URLParam(r, "productId"), strings.TrimSpace(req.Variant), *req.Quantity)
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, store.Snapshot())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(r)
	store.RemoveItem(r.Context(), chi.URLParam(r, "productId"), strings.TrimSpace(r.URL.Query().Get("variant")))
	utils.WriteJSON(w, http.StatusOK, store.Snapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(r)
	store.Clear(r.Context())
	utils.WriteJSON(w, http.StatusOK, store.Snapshot())
}

func (h *Handler) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		writeError(w, "product_not_found", http.StatusNotFound)
	case errors.Is(err, product.ErrLoadFailed):
		writeError(w, "catalog_unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, cart.ErrCartItemNotFound):
		writeError(w, "item_not_found", http.StatusNotFound)
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, "invalid_quantity", http.StatusBadRequest)
	case errors.Is(err, cart.ErrInvalidPrice):
		writeError(w, "invalid_price", http.StatusBadRequest)
	case errors.Is(err, cart.ErrInvalidProduct):
		writeError(w, "invalid_product", http.StatusBadRequest)
	case errors.Is(err, cart.ErrOutOfStock):
		writeError(w, "out_of_stock", http.StatusConflict)
	case errors.Is(err, cart.ErrInsufficientStock):
		writeError(w, "insufficient_stock", http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("unexpected cart error",
			zap.String("layer", "handler"),
			zap.Error(err),
		)
		writeError(w, "internal_error", http.StatusInternalServerError)
	}
}
