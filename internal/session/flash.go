package session

import (
	"net/url"

	"github.com/valyala/fasthttp"
)

// FlashCookieName carries a queued flash message until the next render.
const FlashCookieName = "watchlist_flash"

// Flash queues a one-time notice to show on the next rendered page. Only
// the most recent flash in a response survives, which matches how the
// handlers use it: one notice per redirect.
func Flash(ctx *fasthttp.RequestCtx, message string) {
	var c fasthttp.Cookie
	c.SetKey(FlashCookieName)
	c.SetValue(url.QueryEscape(message))
	c.SetPath("/")
	c.SetHTTPOnly(true)
	ctx.Response.Header.SetCookie(&c)
}

// TakeFlashes drains queued flash messages from the request and expires
// the cookie on the response.
func TakeFlashes(ctx *fasthttp.RequestCtx) []string {
	raw := ctx.Request.Header.Cookie(FlashCookieName)
	if len(raw) == 0 {
		return nil
	}

	var c fasthttp.Cookie
	c.SetKey(FlashCookieName)
	c.SetValue("")
	c.SetPath("/")
	c.SetMaxAge(-1)
	ctx.Response.Header.SetCookie(&c)

	msg, err := url.QueryUnescape(string(raw))
	if err != nil || msg == "" {
		return nil
	}
	return []string{msg}
}
