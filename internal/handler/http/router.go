package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/metrics"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// Router wires handlers onto the route surface: HTML pages, card fragments
// and the JSON engagement endpoints.
type Router struct {
	authHandler       *AuthHandler
	recipeHandler     *RecipeHandler
	engagementHandler *EngagementHandler
	userHandler       *UserHandler
	adminHandler      *AdminHandler
	userUsecase       usecase.IUserUseCase
	config            usecasecontract.IConfigProvider
}

func NewRouter(
	userUC usecase.IUserUseCase,
	recipeUC usecase.IRecipeUseCase,
	engagementUC usecase.IEngagementUseCase,
	adminUC usecase.IAdminUseCase,
	verificationUC usecase.IEmailVerificationUC,
	storage contract.IFileStorage,
	config usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *Router {
	return &Router{
		authHandler:       NewAuthHandler(userUC, verificationUC, config, logger),
		recipeHandler:     NewRecipeHandler(recipeUC, storage, logger),
		engagementHandler: NewEngagementHandler(engagementUC, logger),
		userHandler:       NewUserHandler(userUC, recipeUC, storage, logger),
		adminHandler:      NewAdminHandler(adminUC, storage, logger),
		userUsecase:       userUC,
		config:            config,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(metrics.RequestMetrics())

	// Rate limit the credential and mutation endpoints.
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	rateLimited := middleware.RateLimiter(lmt)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/images", r.config.GetImagesDir())

	loadUser := middleware.LoadUser(r.userUsecase)
	requireAuthPage := middleware.RequireAuthPage(r.userUsecase)
	requireAuthAPI := middleware.RequireAuthAPI(r.userUsecase)
	requireVerifiedPage := middleware.RequireVerifiedPage(r.userUsecase)
	requireVerifiedAPI := middleware.RequireVerifiedAPI(r.userUsecase)

	// Session endpoints.
	router.GET("/", loadUser, r.authHandler.Index)
	router.GET("/login", loadUser, r.authHandler.ShowLogin)
	router.POST("/login", rateLimited, r.authHandler.Login)
	router.GET("/register", loadUser, r.authHandler.ShowRegister)
	router.POST("/register", rateLimited, r.authHandler.Register)
	router.GET("/logout", r.authHandler.Logout)
	router.GET("/verify", requireAuthPage, r.authHandler.ShowVerify)
	router.POST("/verify/resend", requireAuthPage, rateLimited, r.authHandler.ResendVerification)
	router.GET("/verify-email", loadUser, r.authHandler.VerifyEmail)

	// Recipe listing pages and their filter fragments.
	router.GET("/find", requireVerifiedPage, r.recipeHandler.Find)
	router.GET("/find/filter", requireVerifiedAPI, r.recipeHandler.FilterFind)
	router.GET("/find/all-ingredients", requireVerifiedAPI, r.recipeHandler.AllIngredients)
	router.GET("/find/all-types", requireVerifiedAPI, r.recipeHandler.AllTypes)
	router.GET("/liked", requireVerifiedPage, r.recipeHandler.Liked)
	router.GET("/liked/filter", requireVerifiedAPI, r.recipeHandler.FilterLiked)

	recipes := router.Group("/recipes", requireVerifiedPage)
	{
		recipes.GET("", r.recipeHandler.MyRecipes)
		recipes.GET("/add", r.recipeHandler.ShowAdd)
		recipes.POST("/add", r.recipeHandler.Create)
		recipes.GET("/edit/:id", r.recipeHandler.ShowEdit)
		recipes.POST("/edit/:id", r.recipeHandler.Update)
		recipes.POST("/delete/:id", r.recipeHandler.Delete)
		recipes.GET("/:id", r.recipeHandler.Detail)
	}
	router.GET("/recipes/filter", requireVerifiedAPI, r.recipeHandler.FilterMine)

	// Engagement JSON endpoints. Likes only need a session; everything that
	// writes text needs a verified account.
	router.POST("/recipes/:id/like", requireAuthAPI, r.engagementHandler.LikeRecipe)
	router.POST("/recipes/:id/comments", requireVerifiedAPI, r.engagementHandler.AddComment)
	router.PUT("/recipes/:id/comments/:commentId", requireVerifiedAPI, r.engagementHandler.EditComment)
	router.DELETE("/recipes/:id/comments/:commentId", requireVerifiedAPI, r.engagementHandler.DeleteComment)
	router.POST("/recipes/:id/comments/:commentId/like", requireVerifiedAPI, r.engagementHandler.LikeComment)
	router.POST("/recipes/share/:id", requireVerifiedAPI, r.recipeHandler.Share)

	// Profiles.
	router.GET("/user/:id", requireVerifiedPage, r.userHandler.Profile)
	router.GET("/user/edit/:id", requireVerifiedPage, r.userHandler.ShowEditProfile)
	router.POST("/user/edit/:id", requireVerifiedPage, r.userHandler.UpdateProfile)

	// Admin.
	admin := router.Group("/admin", requireVerifiedPage, middleware.RequireAdmin())
	{
		admin.GET("", r.adminHandler.Users)
		admin.GET("/edit/:id", r.adminHandler.ShowEditUser)
		admin.POST("/edit/:id", r.adminHandler.UpdateUser)
		admin.POST("/delete/:id", r.adminHandler.DeleteUser)
	}
}
