package main // Entry point package

import (
	"context" // context for startup deadlines
	"log"     // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-night/internal/booking"    // session store and flow state machine
	"github.com/iliyamo/movie-night/internal/catalog"    // similarity dataset loader
	"github.com/iliyamo/movie-night/internal/config"     // environment configuration
	"github.com/iliyamo/movie-night/internal/database"   // MySQL connection and schema
	"github.com/iliyamo/movie-night/internal/handler"    // HTTP handlers
	"github.com/iliyamo/movie-night/internal/middleware" // cache and rate limit middleware
	"github.com/iliyamo/movie-night/internal/notify"     // SMS notification service
	"github.com/iliyamo/movie-night/internal/poster"     // poster lookup client
	"github.com/iliyamo/movie-night/internal/queue"      // booking.confirmed consumer
	"github.com/iliyamo/movie-night/internal/recommend"  // recommendation engine
	"github.com/iliyamo/movie-night/internal/repository" // seat ledger
	"github.com/iliyamo/movie-night/internal/router"     // route registration
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// Open the seat ledger database and make sure the bookings table exists.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	// Load the precomputed movie dataset and similarity matrix.
	cat, err := catalog.Load(cfg.MovieDataPath, cfg.SimilarityPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("catalog loaded: %d movies", len(cat.Titles()))

	// Wire the domain: posters -> recommendations -> flow over ledger + SMS.
	posters := poster.NewClient(config.LoadPosterConfig(), cfg.MetadataAPIKey)
	engine := recommend.NewEngine(cat, posters)
	ledger := repository.NewBookingRepo(db)
	notifier := notify.NewSMSNotifier(cfg.SMSAccountID, cfg.SMSAuthToken, cfg.SMSSenderNumber)
	flow := booking.NewFlow(engine, ledger, notifier)
	sessions := booking.NewStore()

	// Redis is optional; cache and rate limiting turn into no-ops without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(cat), limitMW, cacheMW)
	router.RegisterBooking(e, handler.NewBookingHandler(sessions, flow, cfg.SessionSecret, cfg.SessionTTLMin), cfg.SessionSecret)

	// Background consumer appends confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
