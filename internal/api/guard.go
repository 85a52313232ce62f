package api

import (
	"net/http"
	"strings"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ctxSessionKey is where the guard stashes the authorized session
const ctxSessionKey = "session"

// Guard gates a route group behind the portal access check. The decision
// procedure short-circuits on the first failing step:
//
//  1. no token / unknown token / invalid session  -> 401, redirect /login
//  2. primary role's portal != requiredUIAccess   -> 403, redirect to the
//     primary role's default landing path
//  3. allowedRoles given and primary role not in it -> 403, same landing path
//
// Only the user's primary role is consulted. Every failing branch logs
// before responding; failures resolve by redirect, never by panic.
func Guard(sessions auth.SessionStore, log zerolog.Logger, requiredUIAccess string, allowedRoles ...string) gin.HandlerFunc {
	guardLog := log.With().Str("component", "guard").Str("portal", requiredUIAccess).Logger()

	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			guardLog.Warn().Str("path", c.Request.URL.Path).Msg("Unauthenticated: no token")
			respondRedirect(c, http.StatusUnauthorized, "authentication required", models.LoginPath)
			return
		}

		session, ok := sessions.Get(token)
		if !ok {
			guardLog.Warn().Str("path", c.Request.URL.Path).Msg("Unauthenticated: unknown token")
			respondRedirect(c, http.StatusUnauthorized, "session expired", models.LoginPath)
			return
		}
		if !session.Valid() {
			guardLog.Warn().Str("user_id", session.User.ID).Msg("Unauthenticated: session has no roles")
			respondRedirect(c, http.StatusUnauthorized, "session invalid", models.LoginPath)
			return
		}

		primary, _ := models.PrimaryRole(&session.User)
		landing := models.DefaultLandingPath(primary)

		if primary.UIAccess != requiredUIAccess {
			guardLog.Warn().
				Str("user_id", session.User.ID).
				Str("role", primary.SystemRole).
				Str("role_portal", primary.UIAccess).
				Msg("Unauthorized: portal mismatch")
			respondRedirect(c, http.StatusForbidden, "access denied", landing)
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[primary.SystemRole]; !ok {
				guardLog.Warn().
					Str("user_id", session.User.ID).
					Str("role", primary.SystemRole).
					Msg("Unauthorized: role not permitted")
				respondRedirect(c, http.StatusForbidden, "access denied", landing)
				return
			}
		}

		c.Set(ctxSessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session the guard authorized for this
// request. The bool is false on unguarded routes.
func SessionFromContext(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
