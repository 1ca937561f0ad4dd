package handlers

import (
	"net/http"

	"task_manager/internal/logger"
	"task_manager/internal/service"

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

	// Public endpoints: signup and sign-in
	router.POST("/users", h.signUp)
	auth := router.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}

	// Task endpoints (protected)
	h.registerTaskRoutes(router)

	// Live task feed over WebSocket (HTTP upgrade), behind the same guard
	router.GET("/ws", h.authMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerTaskRoutes(r *gin.Engine) {
	task := r.Group("/task", h.authMiddleware)
	{
		task.POST("", h.createTask)
		task.GET("", h.listTasks)
		task.GET("/:id", h.getTask)
		task.PUT("/:id", h.updateTask)
		task.DELETE("/:id", h.deleteTask)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
