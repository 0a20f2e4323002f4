package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "github.com/gvanmetre/BiteBook/internal/handler/http"
	redisclient "github.com/gvanmetre/BiteBook/internal/infrastructure/cache"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/config"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/database"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/external_services"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/jwt"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/logger"
	passwordservice "github.com/gvanmetre/BiteBook/internal/infrastructure/password_service"
	randomgenerator "github.com/gvanmetre/BiteBook/internal/infrastructure/random_generator"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/repository/mongodb"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/storage"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/store"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/uuidgen"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/validator"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}

	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	smtpHost := os.Getenv("EMAIL_HOST")
	smtpPort := os.Getenv("EMAIL_PORT")
	smtpUsername := os.Getenv("EMAIL_USERNAME")
	smtpPassword := os.Getenv("EMAIL_APP_PASSWORD")
	smtpFrom := os.Getenv("EMAIL_FROM")

	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.tmpl")

	// Dependency Injection: Repositories
	db := mongoClient.Client.Database(dbName)
	userRepo := mongodb.NewMongoUserRepository(db.Collection("users"))
	tokenRepo := mongodb.NewTokenRepository(db.Collection("tokens"))
	recipeRepo := mongodb.NewRecipeRepository(db)

	// Dependency Injection: Services
	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()
	hasher := passwordservice.NewHasher()
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	jwtService := jwt.NewJWTManager(jwtSecret, appConfig.GetSessionTokenExpiry())
	mailService := external_services.NewEmailService(smtpHost, smtpPort, smtpUsername, smtpPassword, smtpFrom)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	imageStore, err := storage.NewLocalImageStore(appConfig.GetImagesDir(), appConfig.GetMaxUploadBytes())
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Dependency Injection: Usecases
	verificationUC := usecase.NewEmailVerificationUsecase(tokenRepo, userRepo, hasher, randomGenerator, uuidGenerator, mailService, appConfig, appLogger)
	userUC := usecase.NewUserUsecase(userRepo, hasher, uuidGenerator, jwtService, appValidator, appConfig, appLogger, verificationUC)
	recipeUC := usecase.NewRecipeUsecase(recipeRepo, userRepo, uuidGenerator, appLogger)
	engagementUC := usecase.NewEngagementUsecase(recipeRepo, uuidGenerator, appLogger)
	adminUC := usecase.NewAdminUsecase(userRepo, recipeRepo, tokenRepo, appValidator, appLogger)

	// Optional Dependency Injection: Redis tag cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rdb := redisclient.NewRedisFromURL(context.Background(), redisURL)
		defer redisclient.Close(rdb)
		tagCache := store.NewTagCacheStore(rdb)
		recipeUC.SetTagCache(tagCache)
		adminUC.SetTagCache(tagCache)
	}

	appRouter := handlerHttp.NewRouter(userUC, recipeUC, engagementUC, adminUC, verificationUC, imageStore, appConfig, appLogger)
	appRouter.SetupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
