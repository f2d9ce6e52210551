package handlers

import (
	"errors"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
	dbpkg "watchlist/internal/db"
	"watchlist/internal/session"
)

func LoginForm(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		renderPage(ctx, fasthttp.StatusOK, newPageData(ctx, db, cfg, "Login", "login"))
	}
}

// LoginSubmit authenticates the form credentials against the designated
// admin user and establishes a session on success.
func LoginSubmit(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		username := string(ctx.PostArgs().Peek("username"))
		password := string(ctx.PostArgs().Peek("password"))

		if username == "" || password == "" {
			redirectWithFlash(ctx, "/login", "Invalid input.")
			return
		}

		user, err := dbpkg.AdminUser(db, cfg)
		if err != nil {
			if errors.Is(err, dbpkg.ErrNotConfigured) {
				renderSetupRequired(ctx)
				return
			}
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("database error")
			return
		}

		if username != user.Username || !user.ValidatePassword(password) {
			redirectWithFlash(ctx, "/login", "Invalid username or password.")
			return
		}

		token, err := session.NewToken(user.ID, []byte(cfg.SecretKey))
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to sign session")
			return
		}
		session.Set(ctx, token)
		redirectWithFlash(ctx, "/", "Login success.")
	}
}

// renderSetupRequired is shown when no admin user row exists: the login
// form cannot work until `watchlist admin` has been run.
func renderSetupRequired(ctx *fasthttp.RequestCtx) {
	renderPage(ctx, fasthttp.StatusInternalServerError, PageData{
		Title:        "Setup Required",
		PageTemplate: "setup",
	})
}

func Logout() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		session.Clear(ctx)
		redirectWithFlash(ctx, "/", "Goodbye.")
	}
}
