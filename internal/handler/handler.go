package handler

import (
	"net/http"

	"ostocare-be/internal/cart"
	"ostocare-be/internal/metrics"
	"ostocare-be/internal/middleware"
	"ostocare-be/internal/product"
	"ostocare-be/internal/user"
	"ostocare-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Products         product.Provider
	Carts            *cart.Registry
	Users            user.Service
	Pricing          cart.Pricing
	CatalogCounters  *metrics.CatalogCounters
	CartRequiresAuth bool
}

type Handler struct {
	products    product.Provider
	carts       *cart.Registry
	users       user.Service
	pricing     cart.Pricing
	catalogStat *metrics.CatalogCounters
	cartAuth    bool
}

func New(d Deps) *Handler {
	if d.CatalogCounters == nil {
		d.CatalogCounters = &metrics.CatalogCounters{}
	}
	return &Handler{
		products:    d.Products,
		carts:       d.Carts,
		users:       d.Users,
		pricing:     d.Pricing,
		catalogStat: d.CatalogCounters,
		cartAuth:    d.CartRequiresAuth,
	}
}

// Routes wires every endpoint onto r. Session and auth middleware must run
// before these handlers.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.health)
	r.Get("/products", h.listProducts)

	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.RequireUser(h.cartAuth))
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Get("/summary", h.getSummary)
		r.Post("/items", h.addItem)
		r.Put("/items/{productId}", h.setQuantity)
		r.Delete("/items/{productId}", h.removeItem)
	})

	r.Get("/users/username-availability", h.usernameAvailability)
}

func (h *Handler) sessionStore(r *http.Request) *cart.Store {
	return h.carts.Get(r.Context(), middleware.SessionFromContext(r.Context()))
}

func writeError(w http.ResponseWriter, code string, status int) {
	utils.WriteJSONError(w, code, status)
}
