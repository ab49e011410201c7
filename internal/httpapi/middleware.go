package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kmorishita/tasklane/internal/service"
	"github.com/kmorishita/tasklane/internal/tenancy"
)

const userIDKey = "tasklane.user_id"

// requireSession resolves the guest session cookie into a user id. Requests
// without a live session get 401 before any handler runs.
func requireSession(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := readCookie(c, sessionCookie)
			session, err := auth.ResolveToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrSessionInvalid) {
					return c.JSON(http.StatusUnauthorized, errorBody("invalid or expired session"))
				}
				return err
			}
			c.Set(userIDKey, session.UserID)
			return next(c)
		}
	}
}

func currentUserID(c echo.Context) string {
	if v, ok := c.Get(userIDKey).(string); ok {
		return v
	}
	return ""
}

// resolveTeam runs tenant resolution for the request: sticky cookie in,
// validated team out, with the cookie self-healed whenever the resolver says
// so. The bool result reports whether a team was resolved; when false the
// response has already been written.
func resolveTeam(c echo.Context, resolver *tenancy.Resolver) (string, bool, error) {
	res, err := resolver.Resolve(c.Request().Context(), currentUserID(c), readCookie(c, stickyTeamCookie))
	if err != nil {
		return "", false, err
	}

	switch res.Outcome {
	case tenancy.OutcomeUnauthenticated:
		return "", false, c.JSON(http.StatusUnauthorized, errorBody("authentication required"))
	case tenancy.OutcomeNoTeam:
		return "", false, c.JSON(http.StatusConflict, map[string]string{"outcome": "no_team"})
	}

	if res.PersistPreference {
		setStickyTeamCookie(c, res.TeamID)
	}
	return res.TeamID, true, nil
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
