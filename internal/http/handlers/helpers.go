package handlers

import (
	"bytes"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
	dbpkg "watchlist/internal/db"
	httpctx "watchlist/internal/http/ctx"
	"watchlist/internal/session"
	ui "watchlist/web"
)

// PageData is passed to the layout template for every rendered page.
type PageData struct {
	Title        string
	PageTemplate string

	// User is the designated account shown in the page header. It is set
	// whether or not the request is authenticated, and nil only before
	// the admin command has been run.
	User *dbpkg.User

	// LoggedIn reports whether this request carries a valid session.
	LoggedIn bool

	Flashes []string

	Movies []dbpkg.Movie
	Movie  *dbpkg.Movie
}

// MustUser returns the session user placed on the context by the route
// guard, redirecting to the login page when it is absent.
func MustUser(ctx *fasthttp.RequestCtx) (*dbpkg.User, bool) {
	user, ok := httpctx.UserFromCtx(ctx)
	if !ok {
		ctx.Redirect("/login", fasthttp.StatusSeeOther)
		return nil, false
	}
	return user, true
}

// newPageData assembles the layout data common to all pages: the header
// user and any queued flash messages, which are consumed here.
func newPageData(ctx *fasthttp.RequestCtx, db *gorm.DB, cfg *config.Config, title, pageTemplate string) PageData {
	data := PageData{
		Title:        title,
		PageTemplate: pageTemplate,
		Flashes:      session.TakeFlashes(ctx),
	}
	if user, ok := httpctx.UserFromCtx(ctx); ok {
		data.User = user
		data.LoggedIn = true
	} else if user, err := dbpkg.AdminUser(db, cfg); err == nil {
		data.User = user
	}
	return data
}

// renderPage executes the layout template with the given data.
func renderPage(ctx *fasthttp.RequestCtx, status int, data PageData) {
	var buf bytes.Buffer
	if err := ui.Templates().ExecuteTemplate(&buf, "layout", data); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString("render error")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.Bytes())
}

// redirectWithFlash queues a flash message and redirects to location.
func redirectWithFlash(ctx *fasthttp.RequestCtx, location, message string) {
	session.Flash(ctx, message)
	ctx.Redirect(location, fasthttp.StatusSeeOther)
}
