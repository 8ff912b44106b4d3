package auth

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/logger"
)

const sessionName = "gardenhub_session"
const sessionGardenerIDKey = "gardener_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the GardenerID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a valid gardener_id.
//
// After this middleware, handlers can safely call auth.GardenerIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			gardenerIDStr, ok := session.Values[sessionGardenerIDKey].(string)
			if !ok || gardenerIDStr == "" {
				log.WarnContext(r.Context(), "session missing gardener_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			gardenerID, err := uuid.Parse(gardenerIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid gardener_id in session", "gardener_id", gardenerIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			ctx := WithGardenerID(r.Context(), gardenerID)
			ctx = logger.WithAttrs(ctx, slog.String("gardener_id", gardenerID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StartSession binds gardenerID to the session cookie written to w.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, gardenerID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Values[sessionGardenerIDKey] = gardenerID.String()
	return session.Save(r, w)
}

// EndSession expires the session cookie and drops the stored session.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return err
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
