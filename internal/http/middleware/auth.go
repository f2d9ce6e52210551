package middleware

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
	dbpkg "watchlist/internal/db"
	httpctx "watchlist/internal/http/ctx"
	"watchlist/internal/session"
)

// RequireUser guards mutating routes: it resolves the session cookie to a
// user row and sets it on the context, redirecting to the login page when
// the session is missing or invalid.
func RequireUser(db *gorm.DB, cfg *config.Config) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			user, ok := resolveUser(ctx, db, cfg)
			if !ok {
				ctx.Redirect("/login", fasthttp.StatusSeeOther)
				return
			}
			httpctx.SetUser(ctx, user)
			next(ctx)
		}
	}
}

// OptionalUser resolves the session user when present and always continues.
// Used on routes that render differently for visitors and for the signed-in
// user, and on the create route, which treats an unauthenticated POST as a
// no-op rather than rejecting it.
func OptionalUser(db *gorm.DB, cfg *config.Config) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if user, ok := resolveUser(ctx, db, cfg); ok {
				httpctx.SetUser(ctx, user)
			}
			next(ctx)
		}
	}
}

func resolveUser(ctx *fasthttp.RequestCtx, db *gorm.DB, cfg *config.Config) (*dbpkg.User, bool) {
	token, ok := session.Token(ctx)
	if !ok {
		return nil, false
	}
	userID, err := session.UserIDFromToken(token, []byte(cfg.SecretKey))
	if err != nil {
		return nil, false
	}
	var user dbpkg.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}
