package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/socialdash/configs"
	"github.com/maheshrc27/socialdash/internal/api/handlers"
	"github.com/maheshrc27/socialdash/internal/api/middleware"
	job "github.com/maheshrc27/socialdash/internal/jobs"
	"github.com/maheshrc27/socialdash/internal/queue"
	"github.com/maheshrc27/socialdash/internal/repository"
	"github.com/maheshrc27/socialdash/internal/service"
	"github.com/maheshrc27/socialdash/internal/ws"
	"github.com/maheshrc27/socialdash/pkg/utils"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: handlers.AppErrorHandler,
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
	accountRepo := repository.NewAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tokenRefreshRepo := repository.NewTokenRefreshRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	hub := ws.NewHub()
	go hub.Run()

	graphClient := service.NewGraphClient(*cfg)
	tokenService := service.NewTokenService(graphClient, tokenRefreshRepo)
	mediaService := service.NewMediaService(*cfg)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	platformService := service.NewPlatformService(*cfg, graphClient, tokenService, accountRepo)
	socialService := service.NewSocialService(*cfg, graphClient, tokenService, accountRepo, postRepo, commentRepo, tokenRefreshRepo, mediaService, notificationService)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	// websocket endpoint authenticates with a token query param since
	// browsers can't set headers on upgrade requests.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := utils.ValidateToken(cfg.SecretKey, c.Query("token"))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("user_id", claims.UserID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		hub.ServeConn(conn)
	}))

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(*cfg, userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/logout", user.Logout)
	api.Post("/user/remove", user.DeleteUser)

	apiKeys := handlers.NewKeysHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Delete("/api_key/:id", apiKeys.DeleteKey)

	account := handlers.NewAccountHandler(platformService, client)
	api.Get("/accounts", account.ListAccounts)
	api.Post("/accounts/connect", account.ConnectAccount)
	api.Delete("/accounts/:id", account.DeleteAccount)
	api.Post("/accounts/:id/sync", account.SyncAccount)
	api.Get("/accounts/available/:platform", account.ListAvailablePages)

	social := handlers.NewSocialHandler(socialService)
	api.Get("/accounts/:id/posts", social.ListPosts)
	api.Post("/accounts/:id/posts", social.CreatePost)
	api.Post("/accounts/:id/posts/:postId/comments", social.AddComment)
	api.Post("/accounts/:id/comments/:commentId/hide", social.HideComment)
	api.Delete("/accounts/:id/comments/:commentId", social.DeleteComment)
	api.Get("/accounts/:id/messages", social.ListMessages)
	api.Post("/accounts/:id/messages", social.SendMessage)

	notification := handlers.NewNotificationHandler(notificationService)
	api.Get("/notifications", notification.ListNotifications)
	api.Post("/notifications/:id/read", notification.MarkRead)
	api.Post("/notifications/read_all", notification.MarkAllRead)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(*cfg, accountRepo, tokenRefreshRepo, tokenService)

	//queue
	queueW := queue.NewQueue(socialService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeSyncAccount, queueW.HandleSyncAccountTask)

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

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
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
