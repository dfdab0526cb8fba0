package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"

	config "github.com/jordibrook/marketing-api/configs"
	"github.com/jordibrook/marketing-api/internal/api/handlers"
	"github.com/jordibrook/marketing-api/internal/api/middleware"
	"github.com/jordibrook/marketing-api/internal/database"
	job "github.com/jordibrook/marketing-api/internal/jobs"
	"github.com/jordibrook/marketing-api/internal/queue"
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/internal/wizard"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sqlx.Connect("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := database.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer rdb.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)
	postRepo := repository.NewPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	mediaItemRepo := repository.NewMediaItemRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	onboardingService := service.NewOnboardingService(onboardingRepo)
	r2Service := service.NewR2Service(*cfg)
	assetService := service.NewAssetService(*cfg, mediaAssetRepo, r2Service)
	postService := service.NewPostService(postRepo, socialAccountRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo, cfg.AnalyticsTimezone)
	platformService := service.NewPlatformService(*cfg, socialAccountRepo)
	instagramService := service.NewInstagramService(*cfg, socialAccountRepo, mediaItemRepo)
	campaignService := service.NewCampaignService(service.NewStubGenerator())
	knowledgeService := service.NewKnowledgeService(documentRepo, collectionRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	wizardStore := wizard.NewStore(rdb, 24*time.Hour)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Get("/logout", auth.Logout)

	platform := handlers.NewPlatformHandler(platformService, instagramService, *cfg)
	app.Get("/auth/:platform", platform.AddSocialAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(*cfg, userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/remove", user.RemoveUser)

	onboarding := handlers.NewOnboardingHandler(onboardingService)
	api.Post("/onboarding", onboarding.Submit)
	api.Get("/onboarding", onboarding.Get)

	post := handlers.NewPostHandler(postService, client)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.DeletePost)

	analytics := handlers.NewAnalyticsHandler(analyticsService)
	api.Get("/analytics/posts", analytics.ListPostAnalytics)
	api.Get("/analytics/performance", analytics.Performance)

	campaign := handlers.NewCampaignHandler(campaignService, wizardStore)
	api.Post("/campaigns/wizard", campaign.StartWizard)
	api.Get("/campaigns/wizard/:id", campaign.GetWizard)
	api.Post("/campaigns/wizard/:id/mode", campaign.ChooseMode)
	api.Post("/campaigns/wizard/:id/next", campaign.WizardNext)
	api.Post("/campaigns/wizard/:id/back", campaign.WizardBack)
	api.Post("/campaigns/generate", campaign.Generate)

	knowledge := handlers.NewKnowledgeHandler(knowledgeService)
	api.Post("/knowledge/documents", knowledge.CreateDocument)
	api.Get("/knowledge/documents", knowledge.ListDocuments)
	api.Get("/knowledge/documents/:id", knowledge.GetDocument)
	api.Delete("/knowledge/documents/:id", knowledge.DeleteDocument)
	api.Post("/knowledge/collections", knowledge.CreateCollection)
	api.Get("/knowledge/collections", knowledge.ListCollections)
	api.Delete("/knowledge/collections/:id", knowledge.DeleteCollection)

	asset := handlers.NewAssetHandler(assetService)
	api.Post("/assets/upload", asset.Upload)
	api.Get("/assets", asset.ListAssets)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveKey)

	// social accounts api routes
	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts/remove", platform.DeleteSocialAccount)
	api.Post("/accounts/refresh", platform.RefreshToken)
	api.Post("/accounts/sync", platform.SyncMedia)

	mediaSyncJob := job.NewMediaSyncJob(socialAccountRepo, instagramService)

	queueW := queue.NewQueue(postRepo, socialAccountRepo, instagramService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", mediaSyncJob.SyncAll)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sqlx.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sqlx.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
