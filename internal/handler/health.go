package handler

import (
	"net/http"

	"ostocare-be/internal/metrics"
	"ostocare-be/internal/utils"
)

type healthResponse struct {
	Status      string           `json:"status"`
	ActiveCarts int              `json:"activeCarts"`
	CartUnits   int              `json:"cartUnits"`
	Metrics     metrics.Snapshot `json:"metrics"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, healthResponse{
		Status:      "OK",
		ActiveCarts: h.carts.Len(),
		CartUnits:   h.carts.Units(),
		Metrics:     metrics.Collect(h.carts.Counters(), h.catalogStat),
	})
}
