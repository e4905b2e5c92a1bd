package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/okfde/froide-campaign-service/docs"
	"github.com/okfde/froide-campaign-service/internal/config"
	"github.com/okfde/froide-campaign-service/internal/database"
	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/router"
	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
	"github.com/okfde/froide-campaign-service/internal/utils"
)

// @title Campaign Service API
// @version 1.0
// @description Campaigns of request targets: listing, search, map and questionaire widgets and request links
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by a platform access token

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	docs.SwaggerInfo.BasePath = cfg.BasePath + "/"

	configureLogging(cfg.LogLevel)

	if utils.InitSentry(cfg.SentryDSN) {
		defer utils.FlushSentry()
	}

	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.NewRedis(context.Background(), cfg)
	if err != nil {
		logrus.Warnf("Failed to connect to Redis, page cache disabled: %v", err)
	} else if rdb != nil {
		logrus.Info("Redis page cache enabled")
		defer rdb.Close()
	}

	geoIP := services.NewGeoIPService(cfg.GeoIPCityDB)
	defer geoIP.Close()

	// Connect requests made from campaign links to their targets
	if cfg.RabbitMQURL != "" {
		requestQueue, err := services.NewRequestQueue(cfg.RabbitMQURL, cfg.RequestQueue)
		if err != nil {
			logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
		} else {
			defer requestQueue.Close()

			iobjRepo := repository.NewInformationObjectRepository(db)
			foiRequestRepo := repository.NewFoiRequestRepository(db)
			providers := provider.NewFactory(iobjRepo, foiRequestRepo, provider.URLConfig{
				BasePath:       cfg.BasePath,
				MakeRequestURL: cfg.MakeRequestURL,
			})
			campaignService := services.NewCampaignService(repository.NewCampaignRepository(db), iobjRepo, providers, cfg.BasePath)
			eventService := services.NewRequestEventService(campaignService, foiRequestRepo)

			msgs, err := requestQueue.Deliveries("campaign-service")
			if err != nil {
				logrus.Warnf("Failed to start request event consumer: %v", err)
			} else {
				eventService.Start(msgs)
				defer eventService.Stop()
				logrus.Infof("Request event consumer started on %s", requestQueue.Name())
			}
		}
	}

	r := router.SetupRouter(router.Dependencies{
		DB:     db,
		Redis:  rdb,
		GeoIP:  geoIP,
		Config: cfg,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		logrus.Infof("API Health Check: http://localhost:%s%s/api/v1/health", cfg.Port, cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
