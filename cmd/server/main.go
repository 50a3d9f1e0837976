package main // Entry point package

import (
	"os" // Environment access for optional services

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log" // Structured logging

	"github.com/hiremefor/backend/internal/config"   // Internal config loader
	"github.com/hiremefor/backend/internal/database" // MySQL connection pool
	"github.com/hiremefor/backend/internal/handler"  // HTTP handlers
	"github.com/hiremefor/backend/internal/logger"   // zerolog setup
	"github.com/hiremefor/backend/internal/queue"    // outbound SMS dispatcher
	"github.com/hiremefor/backend/internal/repository"
	"github.com/hiremefor/backend/internal/router" // Internal router setup
	"github.com/hiremefor/backend/internal/sms"    // BulkSMS gateway client
	"github.com/hiremefor/backend/internal/validation"
	queue_publisher "github.com/hiremefor/backend/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load()    // Load environment config
	logger.Init(cfg.Env)    // Configure zerolog for the environment

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when REDIS_ADDR is unset

	smsClient := sms.NewClient(cfg.SMSTokenID, cfg.SMSTokenSecret, cfg.SMSSenderID)
	if smsClient.DevMode() {
		log.Warn().Msg("SMS credentials missing, running in development mode (codes are logged, not sent)")
	}

	// Background SMS delivery off the sms.outbound queue.  Without a broker
	// the dispatcher keeps retrying in the background and publishes fall
	// back to synchronous sends, so the API stays functional either way.
	go queue.StartSMSDispatcher(queue_publisher.BrokerURL(os.Getenv("RABBITMQ_URL")), smsClient)

	// Repositories share the single connection pool.
	workers := repository.NewWorkerRepo(db)
	workerSkills := repository.NewWorkerSkillRepo(db)
	workerSessions := repository.NewWorkerSessionRepo(db)
	adminSessions := repository.NewAdminSessionRepo(db)
	admins := repository.NewAdminRepo(db)
	skills := repository.NewSkillRepo(db)
	areas := repository.NewAreaRepo(db)
	ratings := repository.NewRatingRepo(db)
	otps := repository.NewOtpRepo(db)

	e := echo.New()                        // Create Echo instance
	e.HideBanner = true                    // zerolog owns startup output
	e.Validator = validation.EchoValidator{} // struct-tag validation for bound DTOs
	e.Use(echomw.Recover())                // convert panics into 500s
	e.Use(echomw.CORS())                   // the panel and app are served from other origins

	e.Static("/uploads", cfg.UploadDir) // processed profile photos

	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(cfg, workers, workerSessions, otps, smsClient),
		Worker:    handler.NewWorkerHandler(cfg, workers, workerSkills, ratings, workerSessions),
		Search:    handler.NewSearchHandler(workers, workerSkills, ratings),
		Reference: handler.NewReferenceHandler(skills, areas),
		Admin:     handler.NewAdminHandler(cfg, admins, adminSessions, workers, skills, areas, ratings),
		Redis:     rdb,
	})

	addr := ":" + cfg.Port                                             // Address string with port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening") // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal().Err(err).Msg("server stopped") // Log and exit if server fails
	}
}
