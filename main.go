package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"watchlist/internal/config"
	dbpkg "watchlist/internal/db"
	"watchlist/internal/http/handlers"
	appmw "watchlist/internal/http/middleware"
	ui "watchlist/web"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

func main() {
	app := &cli.Command{
		Name:  "watchlist",
		Usage: "A personal movie watchlist web application",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Action: serveAction,
			},
			{
				Name:  "initdb",
				Usage: "Initialize the database",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "drop",
						Usage: "Create after drop",
					},
				},
				Action: initDBAction,
			},
			{
				Name:   "forge",
				Usage:  "Generate fake data",
				Action: forgeAction,
			},
			{
				Name:  "admin",
				Usage: "Create or update the admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Usage:    "The username used to login",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "The password used to login",
						Required: true,
					},
				},
				Action: adminAction,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// loadEnv loads .env if present and returns the resulting configuration.
func loadEnv() *config.Config {
	_ = godotenv.Load()
	cfg, insecure := config.Load()
	if insecure {
		logger.Warn("SECRET_KEY is not set; using the insecure development default")
	}
	return cfg
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg := loadEnv()

	db, err := dbpkg.Connect(cfg)
	if err != nil {
		return err
	}

	handlers.InitPrometheusMetrics()

	r := newRouter(db, cfg)
	handler := handlers.RequestLogger(logger, r.Handler)

	logger.Info("watchlist listening", "addr", cfg.ListenAddr, "db", cfg.DatabaseFile)
	return fasthttp.ListenAndServe(cfg.ListenAddr, handler)
}

// newRouter registers every route. The guard middleware protects mutating
// routes; the create route is deliberately left on the optional middleware
// so an unauthenticated POST stays a no-op redirect.
func newRouter(db *gorm.DB, cfg *config.Config) *router.Router {
	r := router.New()

	guard := appmw.RequireUser(db, cfg)
	optional := appmw.OptionalUser(db, cfg)

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})
	r.GET("/metricsz", handlers.MetricsHandler())
	r.ServeFS("/static/{filepath:*}", ui.StaticFS())

	r.GET("/login", optional(handlers.LoginForm(db, cfg)))
	r.POST("/login", handlers.LoginSubmit(db, cfg))
	r.GET("/logout", guard(handlers.Logout()))

	r.GET("/", optional(handlers.Index(db, cfg)))
	r.POST("/", optional(handlers.CreateMovie(db, cfg)))

	r.GET("/movie/edit/{id}", guard(handlers.EditForm(db, cfg)))
	r.POST("/movie/edit/{id}", guard(handlers.EditSubmit(db, cfg)))
	r.POST("/movie/delete/{id}", guard(handlers.DeleteMovie(db, cfg)))

	r.GET("/settings", guard(handlers.SettingsForm(db, cfg)))
	r.POST("/settings", guard(handlers.SettingsSubmit(db, cfg)))

	r.NotFound = handlers.NotFound(db, cfg)

	return r
}

func initDBAction(ctx context.Context, cmd *cli.Command) error {
	cfg := loadEnv()

	db, err := dbpkg.Open(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.InitSchema(db, cmd.Bool("drop")); err != nil {
		return err
	}
	logger.Info("initialized database", "db", cfg.DatabaseFile)
	return nil
}

func forgeAction(ctx context.Context, cmd *cli.Command) error {
	cfg := loadEnv()

	db, err := dbpkg.Connect(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Forge(db); err != nil {
		return err
	}
	logger.Info("seeded fake data", "db", cfg.DatabaseFile)
	return nil
}

func adminAction(ctx context.Context, cmd *cli.Command) error {
	cfg := loadEnv()

	db, err := dbpkg.Connect(cfg)
	if err != nil {
		return err
	}
	created, err := dbpkg.EnsureAdmin(db, cfg, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	if created {
		logger.Info("created admin user", "id", cfg.AdminUserID)
	} else {
		logger.Info("updated admin user", "id", cfg.AdminUserID)
	}
	return nil
}
