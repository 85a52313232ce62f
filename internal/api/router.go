package api

import (
	"net/http"
	"time"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/config"
	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const serviceName = "admin-console-api"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, sessions auth.SessionStore, repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg))
	router.Use(telemetry.Middleware(serviceName))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	roleHandler := NewRoleHandler(services, log)
	userHandler := NewUserHandler(services, log)
	auditHandler := NewAuditHandler(services, log)
	vendorHandler := NewVendorHandler(services, log)
	warehouseHandler := NewWarehouseHandler(services, log)
	routeHandler := NewRouteHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(repos))

	// API v1
	v1 := router.Group("/v1")
	{
		// Auth endpoints are the only unguarded surface
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// Admin panel: every signed-in admin role may read
		admin := v1.Group("/admin", Guard(sessions, log, models.PortalAdmin))
		{
			admin.GET("/roles", roleHandler.List)
			admin.GET("/roles/:id", roleHandler.Get)
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.Get)
			admin.GET("/audit-logs", auditHandler.List)
			admin.GET("/audit-logs/export", auditHandler.ExportPDF)
		}

		// Mutations require the super_admin primary role
		adminSuper := v1.Group("/admin", Guard(sessions, log, models.PortalAdmin, models.RoleSuperAdmin))
		{
			adminSuper.POST("/roles", roleHandler.Create)
			adminSuper.PUT("/roles/:id", roleHandler.Update)
			adminSuper.DELETE("/roles/:id", roleHandler.Delete)
			adminSuper.POST("/users", userHandler.Create)
			adminSuper.PUT("/users/:id", userHandler.Update)
			adminSuper.PUT("/users/:id/roles", userHandler.SetRoles)
			adminSuper.DELETE("/users/:id", userHandler.Delete)
		}

		// Vendor portal reads
		vendor := v1.Group("/vendor", Guard(sessions, log, models.PortalVendor))
		{
			vendor.GET("/vendors", vendorHandler.List)
			vendor.GET("/vendors/:id", vendorHandler.Get)
		}

		// Vendor portal mutations are limited to vendor_admin
		vendorAdmin := v1.Group("/vendor", Guard(sessions, log, models.PortalVendor, models.RoleVendorAdmin))
		{
			vendorAdmin.POST("/vendors", vendorHandler.Create)
			vendorAdmin.PUT("/vendors/:id", vendorHandler.Update)
			vendorAdmin.DELETE("/vendors/:id", vendorHandler.Delete)
		}

		// Warehouse portal reads
		warehouse := v1.Group("/warehouse", Guard(sessions, log, models.PortalWarehouse))
		{
			warehouse.GET("/warehouses", warehouseHandler.List)
			warehouse.GET("/warehouses/:id", warehouseHandler.Get)
			warehouse.GET("/warehouses/:id/bins", warehouseHandler.ListBins)
			warehouse.GET("/warehouses/:id/movements", warehouseHandler.ListMovements)
			warehouse.GET("/warehouses/:id/stock-sheet", warehouseHandler.StockSheet)
			warehouse.GET("/routes", routeHandler.List)
			warehouse.GET("/routes/:id", routeHandler.Get)

			// Any warehouse role may record movements
			warehouse.POST("/warehouses/:id/movements", warehouseHandler.RecordMovement)
		}

		// Structural changes are limited to warehouse_manager
		warehouseManager := v1.Group("/warehouse", Guard(sessions, log, models.PortalWarehouse, models.RoleWarehouseManager))
		{
			warehouseManager.POST("/warehouses", warehouseHandler.Create)
			warehouseManager.PUT("/warehouses/:id", warehouseHandler.Update)
			warehouseManager.DELETE("/warehouses/:id", warehouseHandler.Delete)
			warehouseManager.POST("/warehouses/:id/bins", warehouseHandler.CreateBin)
			warehouseManager.PUT("/warehouses/:id/bins/:binID", warehouseHandler.UpdateBin)
			warehouseManager.POST("/routes", routeHandler.Create)
			warehouseManager.PUT("/routes/:id", routeHandler.Update)
			warehouseManager.DELETE("/routes/:id", routeHandler.Delete)
			warehouseManager.POST("/routes/:id/areas", routeHandler.AssignArea)
			warehouseManager.DELETE("/routes/:id/areas/:areaID", routeHandler.RemoveArea)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// metricsHandler returns entity counts
func metricsHandler(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCount, _ := repos.User.Count(ctx)
		rolesCount, _ := repos.Role.Count(ctx)
		vendorsCount, _ := repos.Vendor.Count(ctx)
		warehousesCount, _ := repos.Warehouse.Count(ctx)
		auditCount, _ := repos.Audit.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"users":      usersCount,
				"roles":      rolesCount,
				"vendors":    vendorsCount,
				"warehouses": warehousesCount,
				"audit_logs": auditCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	return cors.New(corsCfg)
}
