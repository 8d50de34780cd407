package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"event-reward-system/handlers"
	"event-reward-system/middleware"
	"event-reward-system/models"
	"event-reward-system/services"
	"event-reward-system/utils"
	"event-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Only Gateway requests allowed — no exceptions.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	originList := strings.Split(allowedOrigins, ",")
	for i, origin := range originList {
		originList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-User-ID, X-User-Role, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitObjectStorage(); err != nil {
		log.Fatal("failed to initialize object storage client:", err)
	}

	// TranslateError makes duplicate-key violations detectable as
	// gorm.ErrDuplicatedKey — the claim settlement relies on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	itemService := services.NewItemService(db)
	inventoryService := services.NewInventoryService(db)
	attendanceService := services.NewAttendanceService(db)
	evaluator := services.NewConditionEvaluator(attendanceService, inventoryService, itemService)
	eventService := services.NewEventService(db, itemService, evaluator)
	groupService := services.NewGroupService(db, eventService)
	requestService := services.NewRequestService(db, evaluator, inventoryService)

	authSyncURL := os.Getenv("AUTH_SYNC_URL")
	if authSyncURL == "" {
		log.Fatal("AUTH_SYNC_URL environment variable not set")
	}
	serviceToken := os.Getenv("EVENT_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("EVENT_SERVICE_TOKEN environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker := workers.NewEventUserSyncWorker(db, authSyncURL, "/api/v1/internal/users", serviceToken)
	syncWorker.Start(ctx)

	eventService.StartExpirySweep()

	handlers.SetupEventRoutes(app, eventService, attendanceService)
	handlers.SetupGroupRoutes(app, groupService)
	handlers.SetupRequestRoutes(app, requestService)
	handlers.SetupItemRoutes(app, itemService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Event reward service running on http://localhost:%s", port)
	log.Println("✅ Event User Sync Worker running")
	log.Println("✅ Expiry sweep running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
