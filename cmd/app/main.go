package main

import (
	"fmt"
	nethttp "net/http"
	"os"
	"time"

	"workshop/cmd"
	httpin "workshop/internal/adapters/in/http"
	"workshop/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:    goDotEnvVariable("HTTP_PORT"),
		DBHost:      goDotEnvVariable("DB_HOST"),
		DBPort:      goDotEnvVariable("DB_PORT"),
		DBUser:      goDotEnvVariable("DB_USER"),
		DBPassword:  goDotEnvVariable("DB_PASSWORD"),
		DBName:      goDotEnvVariable("DB_NAME"),
		DBSslMode:   goDotEnvVariable("DB_SSLMODE"),
		LockTimeout: lockTimeout(),
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

// lockTimeout reads the optional LOCK_TIMEOUT_MINUTES variable, falling back
// to the domain default.
func lockTimeout() time.Duration {
	raw := goDotEnvVariable("LOCK_TIMEOUT_MINUTES")
	if raw == "" {
		return order.DefaultLockTimeout
	}

	var minutes int
	if _, err := fmt.Sscanf(raw, "%d", &minutes); err != nil || minutes <= 0 {
		log.Fatalf("Invalid LOCK_TIMEOUT_MINUTES: %q", raw)
	}
	return time.Duration(minutes) * time.Minute
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(httpin.ServerHandlers{
		CreateOrder:           app.CreateCreateOrderCommandHandler(),
		UpdateOrderInfo:       app.CreateUpdateOrderInfoCommandHandler(),
		ChangeOrderStatus:     app.CreateChangeOrderStatusCommandHandler(),
		UpdatePaymentStatus:   app.CreateUpdatePaymentStatusCommandHandler(),
		LockOrder:             app.CreateLockOrderCommandHandler(),
		UnlockOrder:           app.CreateUnlockOrderCommandHandler(),
		AddSection:            app.CreateAddSectionCommandHandler(),
		RemoveSection:         app.CreateRemoveSectionCommandHandler(),
		AddItem:               app.CreateAddItemToSectionCommandHandler(),
		RemoveItem:            app.CreateRemoveItemFromSectionCommandHandler(),
		CreateModifier:        app.CreateCreatePriceModifierCommandHandler(),
		UpdateModifier:        app.CreateUpdatePriceModifierCommandHandler(),
		ActivateModifier:      app.CreateActivatePriceModifierCommandHandler(),
		DeactivateModifier:    app.CreateDeactivatePriceModifierCommandHandler(),
		GetOrder:              app.CreateGetOrderQueryHandler(),
		GetOrders:             app.CreateGetOrdersQueryHandler(),
		CalculatePrice:        app.CreateCalculatePriceQueryHandler(),
		CalculateProductPrice: app.CreateCalculateProductPriceQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
