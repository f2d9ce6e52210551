package handlers

import (
	"strconv"
	"unicode/utf8"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
	dbpkg "watchlist/internal/db"
	httpctx "watchlist/internal/http/ctx"
)

// Index lists every movie in insertion order. No session required.
func Index(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var movies []dbpkg.Movie
		if err := db.Order("id").Find(&movies).Error; err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to load movies")
			return
		}
		data := newPageData(ctx, db, cfg, "Watchlist", "index")
		data.Movies = movies
		renderPage(ctx, fasthttp.StatusOK, data)
	}
}

// CreateMovie handles POST /. An unauthenticated POST is accepted as a
// no-op redirect rather than rejected.
func CreateMovie(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := httpctx.UserFromCtx(ctx); !ok {
			ctx.Redirect("/", fasthttp.StatusSeeOther)
			return
		}

		title := string(ctx.PostArgs().Peek("title"))
		year := string(ctx.PostArgs().Peek("year"))
		if title == "" || year == "" || utf8.RuneCountInString(year) > 4 || utf8.RuneCountInString(title) > 60 {
			redirectWithFlash(ctx, "/", "Invalid input.")
			return
		}

		if err := db.Create(&dbpkg.Movie{Title: title, Year: year}).Error; err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to create movie")
			return
		}
		redirectWithFlash(ctx, "/", "Item created.")
	}
}

// movieFromRoute loads the movie named by the {id} route parameter,
// rendering the 404 page when it does not exist.
func movieFromRoute(ctx *fasthttp.RequestCtx, db *gorm.DB, cfg *config.Config) (*dbpkg.Movie, bool) {
	idStr, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		NotFound(db, cfg)(ctx)
		return nil, false
	}

	var movie dbpkg.Movie
	if err := db.First(&movie, id).Error; err != nil {
		NotFound(db, cfg)(ctx)
		return nil, false
	}
	return &movie, true
}

func EditForm(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		movie, ok := movieFromRoute(ctx, db, cfg)
		if !ok {
			return
		}
		data := newPageData(ctx, db, cfg, "Edit item", "edit")
		data.Movie = movie
		renderPage(ctx, fasthttp.StatusOK, data)
	}
}

// EditSubmit updates a movie in place. Unlike create, edit requires the
// year to be exactly four characters.
func EditSubmit(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		movie, ok := movieFromRoute(ctx, db, cfg)
		if !ok {
			return
		}

		title := string(ctx.PostArgs().Peek("title"))
		year := string(ctx.PostArgs().Peek("year"))
		if title == "" || year == "" || utf8.RuneCountInString(year) != 4 || utf8.RuneCountInString(title) > 60 {
			redirectWithFlash(ctx, "/movie/edit/"+strconv.FormatUint(uint64(movie.ID), 10), "Invalid input.")
			return
		}

		movie.Title = title
		movie.Year = year
		if err := db.Save(movie).Error; err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to update movie")
			return
		}
		redirectWithFlash(ctx, "/", "Item updated.")
	}
}

func DeleteMovie(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		movie, ok := movieFromRoute(ctx, db, cfg)
		if !ok {
			return
		}

		if err := db.Delete(movie).Error; err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to delete movie")
			return
		}
		redirectWithFlash(ctx, "/", "Item deleted.")
	}
}
