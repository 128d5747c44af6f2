package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"katalog/internal/app"
	"katalog/internal/config"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/database"
	"katalog/pkg/logger"
	"katalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logger")
	}

	// --- Storage ---
	productRepo, db, err := openProductRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize product storage")
	}
	var ping func() error
	if db != nil {
		defer database.Close(db)
		ping = func() error { return database.Ping(db) }
	}

	if cfg.Seed {
		if err := seedProducts(productRepo); err != nil {
			log.Error().Err(err).Msg("Failed to seed products")
		}
	}

	// --- Product events ---
	// publisher stays a nil interface when no broker is configured
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(cfg.RabbitMQ)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient

		err = mqClient.Consume(func(msg amqp.Delivery) error {
			return services.LogProductEvent(msg.Body)
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to start product event consumer")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL is not set, product events are disabled")
	}

	productService := services.NewProductService(productRepo, publisher)
	server := app.New(productService, app.Options{Name: cfg.App.Name, Ping: ping})

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("port", cfg.App.Port).Str("driver", cfg.Database.Driver).Msg("Starting server")
		if err := server.Listen(cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if err := server.ShutdownWithTimeout(cfg.App.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	log.Info().Msg("Server gracefully stopped")
}

// openProductRepository returns the repository for the configured driver.
// The *gorm.DB is nil for the in-memory driver.
func openProductRepository(cfg *config.Config) (repositories.ProductRepository, *gorm.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return repositories.NewMemoryProductRepository(), nil, nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db, &models.Product{}); err != nil {
			database.Close(db)
			return nil, nil, err
		}
	}
	return repositories.NewGORMProductRepository(db), db, nil
}

// seedProducts inserts the sample catalog when no product exists yet.
func seedProducts(repo repositories.ProductRepository) error {
	existing, err := repo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug().Int("count", len(existing)).Msg("Catalog not empty, skipping seed")
		return nil
	}

	products := []models.Product{
		{Name: "Mango Sago", Price: 25000},
		{Name: "Nasi Kuning", Price: 15000},
	}
	for i := range products {
		created, err := repo.Create(&products[i])
		if err != nil {
			return fmt.Errorf("seed %s: %w", products[i].Name, err)
		}
		if created {
			log.Info().Str("name", products[i].Name).Uint("id", products[i].ID).Msg("Seeded product")
		}
	}
	return nil
}
