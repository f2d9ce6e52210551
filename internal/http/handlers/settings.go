package handlers

import (
	"unicode/utf8"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
	dbpkg "watchlist/internal/db"
)

func SettingsForm(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		renderPage(ctx, fasthttp.StatusOK, newPageData(ctx, db, cfg, "Settings", "settings"))
	}
}

// SettingsSubmit updates the session user's display name. Nothing else on
// the row is touched.
func SettingsSubmit(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		name := string(ctx.PostArgs().Peek("name"))
		if name == "" || utf8.RuneCountInString(name) > 20 {
			redirectWithFlash(ctx, "/settings", "Invalid input.")
			return
		}

		if err := db.Model(&dbpkg.User{}).Where("id = ?", user.ID).Update("name", name).Error; err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to update settings")
			return
		}
		redirectWithFlash(ctx, "/", "Settings updated.")
	}
}
