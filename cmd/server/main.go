package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	accounts "github.com/example/go-accounts"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("accounts"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	log := lgr.GetLogger("main")

	cfg, err := LoadConfig()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if cfg.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybePrettyJSON(cfg))
		fmt.Println("============")
	}

	if cfg.SigningMethod != "HS256" {
		log.Error("unsupported signing algorithm", "algorithm", cfg.SigningMethod)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	if err := repo.Users().CreateSchema(ctx); err != nil {
		log.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	tokens := accounts.NewTokenService(
		[]byte(cfg.SigningKey),
		time.Duration(cfg.TokenExpirationMinutes)*time.Minute,
		cfg.Issuer,
		lgr.GetLogger("tokens"),
	)

	controller := accounts.NewAuthController(func(c *accounts.AuthController) *accounts.AuthController {
		c.Debug = cfg.Debug
		c.Repo = repo
		c.Tokens = tokens
		c.Config = cfg
		c.Logger = lgr.GetLogger("auth:ctrl")
		return c
	})

	app := fiber.New(fiber.Config{
		AppName:               "go-accounts",
		DisableStartupMessage: !cfg.Debug,
	})
	app.Use(recover.New())

	accounts.RegisterAuthRoutes(app, controller)

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("listening", "addr", cfg.ListenAddr)

	WaitExitSignal()

	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}
}

func openDatabase(ctx context.Context, cfg *Config) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to open database")
	}

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "database unreachable")
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
