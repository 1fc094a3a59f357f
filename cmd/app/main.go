package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/redislocation"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const dbConnectAttempts = 5

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := connectDB(configs, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	producer, err := kafka.NewSyncProducerFor(strings.Split(configs.KafkaBrokers, ","))
	if err != nil {
		log.Fatalf("Failed to create kafka producer: %v", err)
	}
	publisher := kafka.NewPublisher(producer, configs.KafkaEventsTopic)
	defer publisher.Close()

	locationStore, err := redislocation.NewStoreFromURL(configs.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer locationStore.Close()

	root := cmd.NewCompositionRoot(gormDB, publisher, locationStore, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		KafkaBrokers:     goDotEnvVariable("KAFKA_BROKERS"),
		KafkaEventsTopic: goDotEnvVariable("KAFKA_EVENTS_TOPIC"),
		RedisURL:         goDotEnvVariable("REDIS_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// connectDB waits for the database to accept connections before handing the
// DSN to gorm. Container orchestration often starts the app before postgres
// is ready.
func connectDB(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	defer probe.Close()

	for attempt := 1; ; attempt++ {
		if err = probe.Ping(); err == nil {
			break
		}
		if attempt == dbConnectAttempts {
			return nil, fmt.Errorf("database is not reachable after %d attempts: %w", dbConnectAttempts, err)
		}
		logger.Warn("database is not ready, retrying", "attempt", attempt, "error", err)
		time.Sleep(5 * time.Second)
	}

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.RatingDTO{},
	)
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
