package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ostocare-be/internal/logger"
	"ostocare-be/internal/utils"

	"github.com/google/uuid"
)

const (
	SessionCookie = "cart_session"
	sessionMaxAge = 30 * 24 * time.Hour
)

// Session resolves the cart session for the request. Signed-in users get
// "user:<id>" so their cart follows them across devices; anonymous visitors
// get "guest:<uuid>" carried in the cart_session cookie.
func Session(secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session string
			if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
				session = "user:" + userID
			} else {
				session = "guest:" + guestID(w, r, secureCookie)
			}

			ctx := logger.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func guestID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(strings.TrimSpace(c.Value)); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// SessionFromContext returns the session resolved by Session, or "".
func SessionFromContext(ctx context.Context) string {
	return logger.SessionFrom(ctx)
}
