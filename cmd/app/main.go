package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"warehousing/cmd"
	"warehousing/internal/adapters/out/postgres/inventoryrepo"
	"warehousing/internal/adapters/out/postgres/ledgerrepo"
	"warehousing/internal/adapters/out/postgres/pickingrepo"
	"warehousing/internal/adapters/out/postgres/receivingrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := connectToDatabase(configs)
	migrateDatabase(gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:           goDotEnvVariable("KAFKA_HOST"),
		KafkaMovementsTopic: goDotEnvVariable("KAFKA_MOVEMENTS_TOPIC"),
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

func connectToDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&inventoryrepo.ItemDTO{},
		&ledgerrepo.MovementDTO{},
		&pickingrepo.TaskDTO{},
		&pickingrepo.LineDTO{},
		&receivingrepo.TaskDTO{},
		&receivingrepo.ExpectedLineDTO{},
		&receivingrepo.ActualLineDTO{},
		&receivingrepo.DiscrepancyDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
