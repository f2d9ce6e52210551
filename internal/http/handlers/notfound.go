package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
)

// NotFound renders the dedicated 404 page. Registered as the router's
// fallback and invoked directly for missing movie ids.
func NotFound(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		renderPage(ctx, fasthttp.StatusNotFound, newPageData(ctx, db, cfg, "Page Not Found", "notfound"))
	}
}
