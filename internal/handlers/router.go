package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SEACET-CSE/edugroup-service/internal/models"
	"github.com/SEACET-CSE/edugroup-service/internal/repositories"
	"github.com/SEACET-CSE/edugroup-service/internal/services"
	"github.com/SEACET-CSE/edugroup-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	groupHandler     *GroupHandler
	optionHandler    *OptionHandler
	uploadHandler    *UploadHandler
	chatHandler      *ChatHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *AuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		groupHandler:     NewGroupHandler(serviceManager.Group(), logger),
		optionHandler:    NewOptionHandler(serviceManager.Option(), logger),
		uploadHandler:    NewUploadHandler(serviceManager.Upload(), logger),
		chatHandler:      NewChatHandler(serviceManager.Chat(), serviceManager.Auth(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Export(), logger),
		authMiddleware:   NewAuthMiddleware(userRepo),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Auth routes are the only unauthenticated surface
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
		auth.GET("/me", hm.authMiddleware.Authenticate(), hm.authHandler.GetMe)
	}

	authenticated := v1.Group("")
	authenticated.Use(hm.authMiddleware.Authenticate())
	{
		// Topic catalog and availability
		options := authenticated.Group("/options")
		{
			options.GET("", hm.optionHandler.ListOptions)
			options.GET("/:id/stats", hm.optionHandler.GetOptionStats)
			options.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.optionHandler.UpdateOption)
		}

		// Group allocation and chat
		groups := authenticated.Group("/groups")
		{
			groups.POST("/join", hm.authMiddleware.RequireRole(models.RoleStudent), hm.groupHandler.JoinGroup)
			groups.GET("/me", hm.authMiddleware.RequireRole(models.RoleStudent), hm.groupHandler.GetMyGroup)
			groups.GET("", hm.groupHandler.ListGroups)
			groups.GET("/:id", hm.groupHandler.GetGroup)
			groups.PUT("/:id/name", hm.groupHandler.UpdateGroupName)

			groups.POST("/:id/chat", hm.chatHandler.SendMessage)
			groups.GET("/:id/chat", hm.chatHandler.GetGroupChat)
		}

		// Milestone catalog
		authenticated.GET("/sections", hm.uploadHandler.ListSections)

		// Submission ledger
		uploads := authenticated.Group("/uploads")
		{
			uploads.POST("", hm.authMiddleware.RequireRole(models.RoleStudent), hm.uploadHandler.UploadFile)
			uploads.GET("/me", hm.authMiddleware.RequireRole(models.RoleStudent), hm.uploadHandler.GetMyUploads)
			uploads.DELETE("/:section_id", hm.authMiddleware.RequireRole(models.RoleStudent), hm.uploadHandler.DeleteUpload)

			uploads.GET("", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.uploadHandler.ListUploads)
			uploads.PUT("/:student_id/:section_id/remark", hm.authMiddleware.RequireRole(models.RoleAdmin), hm.uploadHandler.AddRemark)
		}

		// Instructor dashboard and exports - Admins only
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			dashboard.GET("/admin", hm.dashboardHandler.GetAdminStats)
		}

		export := authenticated.Group("/export")
		export.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			export.GET("/groups", hm.dashboardHandler.ExportGroups)
			export.GET("/uploads", hm.dashboardHandler.ExportUploads)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := 200
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			status = "unhealthy"
			code = 503
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "edugroup-service",
		})
	})
}
