package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"stunting/config"
	"stunting/services/stunting/delivery"
	"stunting/services/stunting/recommender"
	"stunting/services/stunting/repository"
	"stunting/services/stunting/usecase"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	log = config.GetLogrusInstance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using process environment")
	}
	time.Local = config.GetTimeLocation()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	ctx := context.Background()
	redisClient := config.InitRedis(ctx)
	cache := repository.NewStatsCache(redisClient, config.GetCacheTTL())
	rec := recommender.New(config.InitGenerator(ctx), config.GetAITimeout(), log)
	timeout := config.GetUseCaseTimeout()

	// Repositories
	addressRepo := repository.NewAddressRepository(db)
	childRepo := repository.NewChildRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Usecases
	authUC := usecase.NewAuthUseCase(userRepo, timeout)
	userUC := usecase.NewUserUseCase(userRepo, timeout)
	addressUC := usecase.NewAddressUseCase(addressRepo, cache, timeout)
	childUC := usecase.NewChildUseCase(childRepo, cache, config.GetPublicBaseURL(), timeout)
	statsUC := usecase.NewStatsUseCase(childRepo, cache, timeout)
	recUC := usecase.NewRecommendationUseCase(childRepo, rec, cache, timeout)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "OK",
		})
	})

	delivery.NewAuthDelivery(app, authUC)
	delivery.NewUserDelivery(app, userUC)
	delivery.NewAddressDelivery(app, addressUC)
	delivery.NewChildDelivery(app, childUC, recUC)
	delivery.NewStatsDelivery(app, statsUC, recUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on %s", config.GetListenAddress())
		if err := app.Listen(config.GetListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("Error closing redis: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server shut down gracefully")
}
