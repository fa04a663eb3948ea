package gardenpub

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/gardenpub/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminPublish runs the publish pipeline and reports the result.
func (a *App) handleAdminPublish(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	res, err := a.Publisher.PublishAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	a.Cache.Invalidate()
	msg := fmt.Sprintf("Published %d, unchanged %d, removed %d, assets %d",
		res.Published, res.Unchanged, res.Removed, res.Assets)
	return a.renderAdminDashboard(c, msg)
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	notes, err := a.Store.ListNotes("")
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.site(), toViewNotes(notes), msg, CsrfToken(c)))
}
