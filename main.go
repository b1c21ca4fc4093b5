package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"journal/internal/handlers"
	"journal/internal/middleware"
	"journal/internal/models"
	"journal/internal/repositories"
	"journal/internal/services"
	"journal/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// All runtime knobs come from the environment, read once at startup and
	// passed explicitly into the components that need them.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "journal.db")
	viper.SetDefault("JWT_SECRET", "your_jwt_secret")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbDriver := viper.GetString("DB_DRIVER")
	dbDSN := viper.GetString("DB_DSN")
	jwtSecret := viper.GetString("JWT_SECRET")
	corsOrigins := viper.GetString("CORS_ORIGINS")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Database ---
	var dialector gorm.Dialector
	switch dbDriver {
	case "postgres":
		dialector = postgres.Open(dbDSN)
	default:
		dialector = sqlite.Open(dbDSN)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", dbDriver, err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	// The broker is optional: without RABBITMQ_URL the services simply skip
	// event publication.
	var mqClient *rabbitmq.Client
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	entryRepo := repositories.NewGORMEntryRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo, entryRepo, authService, events)
	entryService := services.NewEntryService(entryRepo, events)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	entryHandler := handlers.NewEntryHandler(entryService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
	}))

	// --- API Routes ---
	authRequired := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app, authRequired)
	entryHandler.RegisterRoutes(app, authRequired)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to your journal!")
	})

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Logs every journal event; a real deployment would fan these out to
	// e.g. a mailer or an analytics sink.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for journal events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received journal event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeJournalEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
