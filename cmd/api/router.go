package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"noteboard-backend/internal/shared/middleware"
	"noteboard-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/db-test", databaseTestHandler(c))

		setupAuthRoutes(v1, c)
		setupAccountRoutes(v1, c)
		setupNoteRoutes(v1, c)
		setupWalletRoutes(v1, c)
		setupActivityRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AccountHandler.Register)
		auth.POST("/login", c.AccountHandler.Login)
		auth.POST("/refresh", c.AccountHandler.Refresh)
	}
}

// ========================================
// ACCOUNT ROUTES
// ========================================
func setupAccountRoutes(v1 *gin.RouterGroup, c *container.Container) {
	accounts := v1.Group("/accounts")
	accounts.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		accounts.GET("/me", c.AccountHandler.Me)
	}
}

// ========================================
// NOTE ROUTES
// ========================================
func setupNoteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public note routes
	notes := v1.Group("/notes")
	{
		notes.GET("/:id", c.NoteHandler.GetNote)
	}

	// Author note routes
	authNotes := v1.Group("/notes")
	authNotes.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authNotes.POST("", c.NoteHandler.CreateNote)
		authNotes.GET("/mine", c.NoteHandler.ListMyNotes)
		authNotes.PUT("/:id", c.NoteHandler.UpdateNote)
		authNotes.DELETE("/:id", c.NoteHandler.DeleteNote)
		authNotes.POST("/:id/tip", c.NoteHandler.TipNote)
	}
}

// ========================================
// WALLET ROUTES
// ========================================
func setupWalletRoutes(v1 *gin.RouterGroup, c *container.Container) {
	wallet := v1.Group("/wallet")
	wallet.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		wallet.GET("", c.WalletHandler.GetWallet)
		wallet.POST("/topup", c.WalletHandler.TopUp)
	}
}

// ========================================
// ACTIVITY ROUTES
// ========================================
func setupActivityRoutes(v1 *gin.RouterGroup, c *container.Container) {
	activity := v1.Group("/activity")
	{
		activity.GET("", c.ActivityHandler.ListActivity)
		activity.GET("/export", c.ActivityHandler.ExportActivity)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

// ========================================
// DATABASE TEST HANDLER
// ========================================
func databaseTestHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Database not connected",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var version string
		err := appCtx.DB.Pool.QueryRow(ctx, "SELECT version()").Scan(&version)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Query failed: %v", err),
			})
			return
		}

		poolStats, err := appCtx.DB.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Pool stats failed: %v", err),
			})
			return
		}

		cacheTest := "not tested"
		if appCtx.Cache != nil {
			testKey := "test:connection"
			testValue := map[string]string{"test": "data", "timestamp": time.Now().Format(time.RFC3339)}

			if err := appCtx.Cache.Set(ctx, testKey, testValue, 10*time.Second); err == nil {
				var retrieved map[string]string
				found, _ := appCtx.Cache.Get(ctx, testKey, &retrieved)
				if found {
					cacheTest = "ok - set/get working"
				} else {
					cacheTest = "warning - set ok but get failed"
				}
				_ = appCtx.Cache.Delete(ctx, testKey)
			} else {
				cacheTest = fmt.Sprintf("error: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Database test successful",
			"database": gin.H{
				"postgres_version": version,
				"pool_stats":       poolStats,
			},
			"cache": gin.H{
				"status": cacheTest,
			},
		})
	}
}
