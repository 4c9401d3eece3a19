package handlers

import (
	"chemviz/internal/logger"
	"chemviz/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerSessionRoutes(router)

	// Dashboard endpoints, gated on an active session
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerSessionRoutes(r *gin.Engine) {
	session := r.Group("/session")
	{
		session.GET("", h.getSession)
		session.POST("/login", h.login)
		session.POST("/logout", h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		api.GET("/view", h.getView)
		h.registerHistoryRoutes(api)
		h.registerUploadRoutes(api)
		h.registerAnalyticsRoutes(api)
		h.registerReportRoutes(api)
		api.GET("/notices", h.getNotices)
		api.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	history := api.Group("/history")
	{
		history.GET("", h.getHistory)
		history.POST("/refresh", h.refreshHistory)
	}
}

func (h *Handler) registerUploadRoutes(api *gin.RouterGroup) {
	uploads := api.Group("/uploads")
	{
		// Body example: {"path":"/data/batch1.csv"}
		uploads.POST("/select", h.selectUpload)
		uploads.POST("/submit", h.submitUpload)
	}
}

func (h *Handler) registerAnalyticsRoutes(api *gin.RouterGroup) {
	analytics := api.Group("/analytics")
	{
		analytics.POST("/:id/select", h.selectAnalytics)
		analytics.GET("/active", h.getActiveAnalytics)
	}
}

func (h *Handler) registerReportRoutes(api *gin.RouterGroup) {
	reports := api.Group("/reports")
	{
		// ":id" also accepts "active"
		reports.GET("/:id", h.getReport)
	}
}
