package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fncs-api/internal/service"
)

const requestIDHeader = "X-Request-ID"

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	tokens *service.TokenService,
	authH *AuthHandler,
	categoryH *CategoryHandler,
	healthH *HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Middlewares basicos: request id, logging, recovery, CORS y JSON content-type.
	r.Use(
		requestIDMiddleware(),
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		corsMiddleware(corsOrigins),
		jsonContentTypeMiddleware(),
	)

	r.GET("/health", healthH.Health)
	r.GET("/diagnostic/db-test", healthH.DBTest)

	auth := r.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/verify", authH.Verify)
	auth.POST("/logout", authH.Logout)
	auth.GET("/me", AuthRequired(logger, tokens), authH.Me)

	categories := r.Group("/categories")
	categories.Use(AuthRequired(logger, tokens))
	categories.GET("", categoryH.List)
	categories.GET("/:id", categoryH.Get)
	categories.POST("", categoryH.Create)
	categories.PUT("/:id", categoryH.Update)
	categories.DELETE("/:id", categoryH.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorJSON("Endpoint not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorJSON("Method not allowed"))
	})

	return r
}

// requestIDMiddleware asigna un id por request, respetando el del cliente.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDHeader, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}

// corsMiddleware habilita los orígenes configurados para el frontend.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(cfg)
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
