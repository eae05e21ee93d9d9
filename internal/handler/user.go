package handler

import (
	"context"
	"errors"
	"net/http"

	"ostocare-be/internal/middleware"
	"ostocare-be/internal/user"
	"ostocare-be/internal/utils"
)

type availabilityError struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

func (h *Handler) usernameAvailability(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	result, err := h.users.CheckUsername(r.Context(), session, r.URL.Query().Get("username"))
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, result)
	case errors.Is(err, user.ErrUsernameTooShort):
		utils.WriteJSON(w, http.StatusBadRequest, availabilityError{"username_too_short", err.Error(), result.Username})
	case errors.Is(err, user.ErrUsernameInvalid):
		utils.WriteJSON(w, http.StatusBadRequest, availabilityError{"username_invalid", err.Error(), result.Username})
	case errors.Is(err, user.ErrSuperseded):
		writeError(w, "superseded", http.StatusConflict)
	case errors.Is(err, context.Canceled):
		return
	default:
		writeError(w, "username_check_failed", http.StatusServiceUnavailable)
	}
}
