package ctx

import (
	"github.com/valyala/fasthttp"

	dbpkg "watchlist/internal/db"
)

const UserKey = "user"

// SetUser stores the authenticated user on the request context.
func SetUser(ctx *fasthttp.RequestCtx, user *dbpkg.User) {
	ctx.SetUserValue(UserKey, user)
}

// UserFromCtx returns the authenticated user placed on the context by the
// session middleware.
func UserFromCtx(ctx *fasthttp.RequestCtx) (*dbpkg.User, bool) {
	v := ctx.UserValue(UserKey)
	if v == nil {
		return nil, false
	}
	user, ok := v.(*dbpkg.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
