package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // Loads .env files into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/campora/campground-api/internal/config"
	"github.com/campora/campground-api/internal/database"
	"github.com/campora/campground-api/internal/geocode"
	"github.com/campora/campground-api/internal/handler"
	"github.com/campora/campground-api/internal/imagehost"
	"github.com/campora/campground-api/internal/mailer"
	"github.com/campora/campground-api/internal/middleware"
	"github.com/campora/campground-api/internal/payment"
	"github.com/campora/campground-api/internal/queue"
	"github.com/campora/campground-api/internal/repository"
	"github.com/campora/campground-api/internal/router"
	queue_publisher "github.com/campora/campground-api/internal/service"
	"github.com/campora/campground-api/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(schemaCtx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		// Sessions require Redis; rate limiting and caching merely degrade.
		log.Fatal("redis: connection failed, cannot serve sessions")
	}
	sessions := session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)

	users := repository.NewUserRepo(db)
	campgrounds := repository.NewCampgroundRepo(db)
	comments := repository.NewCommentRepo(db)

	geocoder := geocode.New(cfg.GeocoderURL, cfg.GeocoderKey)
	images := imagehost.New(cfg.ImageHostURL, cfg.ImageHostKey)
	charger := payment.New(cfg.PaymentURL, cfg.PaymentKey)

	// Outbound mail is decoupled through RabbitMQ: handlers publish
	// events, a consumer goroutine delivers them over SMTP.
	smtp := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	go func() {
		if err := queue.StartMailConsumer(smtp.Send); err != nil {
			log.Printf("mail consumer stopped: %v", err)
		}
	}()

	authH := handler.NewAuthHandler(cfg, users, sessions)
	resetH := handler.NewResetHandler(cfg, users, sessions, queue_publisher.PublishMailRequested)
	payH := handler.NewPaymentHandler(users, charger)
	campH := handler.NewCampgroundHandler(campgrounds, comments, geocoder, images)
	commH := handler.NewCommentHandler(campgrounds, comments)
	userH := handler.NewUserHandler(users, campgrounds)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Identity(sessions, users, cfg.JWTSecret))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, resetH)
	router.RegisterPayment(e, payH)
	router.RegisterCampgrounds(e, campH, commH, campgrounds, comments, cacheMW)
	router.RegisterUsers(e, userH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
