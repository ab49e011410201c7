package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// stickyTeamCookie stores the last-resolved active team. Readable by the
	// client, re-validated server-side on every tenant-scoped request.
	stickyTeamCookie = "current_team_id"
	stickyTeamMaxAge = 365 * 24 * time.Hour

	// sessionCookie carries the opaque guest session token.
	sessionCookie       = "tl_session"
	sessionCookieMaxAge = 30 * 24 * time.Hour
)

func readCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setStickyTeamCookie(c echo.Context, teamID string) {
	c.SetCookie(&http.Cookie{
		Name:     stickyTeamCookie,
		Value:    teamID,
		Path:     "/",
		MaxAge:   int(stickyTeamMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
