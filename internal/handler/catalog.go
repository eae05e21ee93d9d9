package handler

import (
	"errors"
	"net/http"

	"ostocare-be/internal/catalog"
	"ostocare-be/internal/utils"
)

type productsResponse struct {
	Filters catalog.FilterState   `json:"filters"`
	Total   int                   `json:"total"`
	Count   int                   `json:"count"`
	Items   []catalog.ProductView `json:"items"`
}

// listProducts fetches the catalog once per request and narrows it by the
// query filters. A failed fetch is reported as unavailable, never as an
// empty catalog; the client retries by repeating the request.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	patch, err := catalog.ParseFilters(r.URL.Query())
	if err != nil {
		var invalid *catalog.InvalidFilterError
		if errors.As(err, &invalid) {
			writeError(w, "invalid_"+invalid.Field, http.StatusBadRequest)
			return
		}
		writeError(w, "invalid_request", http.StatusBadRequest)
		return
	}

	view := catalog.NewView(h.products, h.sessionStore(r), h.catalogStat)
	if err := view.Load(r.Context()); err != nil {
		if r.Context().Err() != nil {
			// client went away; nothing to write
			return
		}
		writeError(w, "catalog_unavailable", http.StatusServiceUnavailable)
		return
	}

	view.SetFilters(patch)
	items := view.Items()

	utils.WriteJSON(w, http.StatusOK, productsResponse{
		Filters: view.Filters(),
		Total:   view.Total(),
		Count:   len(items),
		Items:   items,
	})
}
