package app

import (
	"time"

	"propboard/internal/auth"
	"propboard/internal/cache"
	"propboard/internal/config"
	"propboard/internal/handlers"
	"propboard/internal/repo"
	"propboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, 24*time.Hour)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	proposalRepo := repo.NewPGProposalRepo(db)
	proposalCache := cache.NewProposalCache(rdb, cfg.Redis.DefaultTTL.Duration())
	proposalSvc := service.NewProposalService(proposalRepo, proposalCache)
	proposalHandler := handlers.NewProposalHandler(proposalSvc)
	registerProposalRoutes(protected, proposalHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Proposal Board API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerProposalRoutes(api *gin.RouterGroup, h *handlers.ProposalHandler) {
	api.POST("/proposals", h.Create)
	api.GET("/proposals", h.List)
	api.GET("/proposals/view", h.View)
	api.GET("/proposals/stats", h.Stats)
	api.GET("/proposals/search", h.Search)
	api.GET("/proposals/overdue", h.Overdue)
	api.POST("/proposals/bulk-status", h.BulkStatus)
	api.GET("/proposals/:id", h.GetByID)
	api.PATCH("/proposals/:id", h.Update)
	api.DELETE("/proposals/:id", h.Delete)
	api.POST("/proposals/:id/status", h.SetStatus)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}
