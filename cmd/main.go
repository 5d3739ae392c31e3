package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dms-web-server/config"
	_ "dms-web-server/docs"
	"dms-web-server/internal/handler"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/repository"
	"dms-web-server/internal/security"
	"dms-web-server/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

const otpSweepInterval = 15 * time.Minute

// @title DMS-web-server
// @version 1.0
// @description REST API для работы с workspace и документами

// @host localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	mongoDB, err := config.SetupMongo(&cfg.MongoConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к MongoDB: %v", err)
	}
	defer func() {
		if err := mongoDB.Close(context.Background()); err != nil {
			log.Printf("Ошибка при закрытии MongoDB: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(mongoDB)
	docRepo := repository.NewDocumentRepository(mongoDB)
	favoriteRepo := repository.NewFavoriteRepository(mongoDB)
	permissionRepo := repository.NewPermissionRepository(mongoDB)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.WorkspaceCache)*time.Second)

	if err := favoriteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Ошибка создания индексов MongoDB: %v", err)
	}

	storage, err := setupStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка создания файлового хранилища: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	mailer := service.NewSMTPMailer(&cfg.SMTP)

	userService := service.NewUserService(userRepo, jwtService)
	otpService := service.NewOTPService(otpRepo, userRepo, mailer)
	workspaceService := service.NewWorkspaceService(workspaceRepo, docRepo, permissionRepo, cacheRepo, storage)
	docService := service.NewDocumentService(docRepo, workspaceRepo, cacheRepo, storage)
	favoriteService := service.NewFavoriteService(favoriteRepo, workspaceRepo)

	userHandler := handler.NewUserHandler(userService)
	otpHandler := handler.NewOTPHandler(otpService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	docHandler := handler.NewDocumentHandler(docService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupUserRoutes(router, userHandler, otpHandler, jwtService, cfg)
	setupWorkspaceRoutes(router, workspaceHandler, docHandler, jwtService, cfg)
	setupDocumentRoutes(router, docHandler, jwtService, cfg)
	setupFavoriteRoutes(router, favoriteHandler, jwtService, cfg)

	go otpService.RunSweeper(ctx, otpSweepInterval)

	runServer(ctx, srv)
}

func setupStorage(ctx context.Context, cfg *config.AppConfig) (ports.FileStorage, error) {
	if cfg.Storage.Mode == "local" {
		storage, err := service.NewLocalStorageService(cfg.Storage.LocalDir)
		if err != nil {
			return nil, err
		}
		return storage, nil
	}

	storage, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		return nil, err
	}
	return storage, nil
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, otp *handler.OTPHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/register", h.Register)
		r.Post("/users/login", h.Login)
		r.Post("/otp/generate", otp.GenerateOTP)
		r.Post("/otp/verify", otp.VerifyOTP)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService))

			r.Get("/users", h.ListUsers)
			r.Get("/users/{email}", h.GetUser)
			r.Delete("/users/{email}", h.DeleteUser)
		})
	})
}

func setupWorkspaceRoutes(r chi.Router, h *handler.WorkspaceHandler, docs *handler.DocumentHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/v1/workspaces", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService))

		r.Post("/", h.CreateWorkspace)
		r.Get("/", h.ListWorkspaces)
		r.Get("/public", h.ListPublicWorkspaces)
		r.Get("/recent", h.ListRecentWorkspaces)
		r.Get("/shared", h.ListSharedWorkspaces)
		r.Get("/deleted", h.ListDeletedWorkspaces)

		r.Route("/{workspace_id}", func(r chi.Router) {
			r.Get("/", h.GetWorkspace)
			r.Put("/", h.UpdateWorkspace)
			r.Delete("/", h.SoftDeleteWorkspace)
			r.Post("/restore", h.RestoreWorkspace)
			r.Delete("/permanent", h.PermanentDeleteWorkspace)
			r.Post("/share", h.ShareWorkspace)
			r.Delete("/share", h.RevokeWorkspaceShare)
			r.Post("/documents", docs.UploadDocument)
			r.Delete("/documents/{document_id}", docs.RemoveDocumentFromWorkspace)
		})
	})
}

func setupDocumentRoutes(r chi.Router, h *handler.DocumentHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/v1/documents", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService))

		r.Post("/upload", h.UploadDocument)
		r.Get("/", h.ListDocuments)
		r.Get("/filter", h.FilterDocuments)
		r.Get("/recycle-bin", h.RecycleBin)

		r.Route("/{document_id}", func(r chi.Router) {
			r.Get("/", h.GetDocument)
			r.Delete("/", h.SoftDeleteDocument)
			r.Post("/restore", h.RestoreDocument)
			r.Delete("/permanent", h.PermanentDeleteDocument)
			r.Get("/download", h.DownloadDocument)
			r.Get("/preview", h.PreviewDocument)
		})
	})
}

func setupFavoriteRoutes(r chi.Router, h *handler.FavoriteHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/v1/favorites", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtService))

		r.Get("/", h.ListFavorites)
		r.Post("/{workspace_id}", h.AddFavorite)
		r.Delete("/{workspace_id}", h.RemoveFavorite)
		r.Get("/{workspace_id}/check", h.CheckFavorite)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
