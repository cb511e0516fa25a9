package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// HealthHandler expone endpoints de diagnóstico.
type HealthHandler struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func NewHealthHandler(logger *zap.Logger, pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{logger: logger, pool: pool}
}

// Health maneja GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  "healthy",
		"message": "API is running",
	})
}

// DBTest maneja GET /diagnostic/db-test: ping y query de prueba contra la base.
func (h *HealthHandler) DBTest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tests := make([]gin.H, 0, 2)

	if err := h.pool.Ping(ctx); err != nil {
		h.logger.Warn("db ping failed", zap.Error(err))
		tests = append(tests, gin.H{"name": "PostgreSQL Connection", "status": "FAIL"})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "tests": tests})
		return
	}
	tests = append(tests, gin.H{"name": "PostgreSQL Connection", "status": "PASS"})

	var one int
	if err := h.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		h.logger.Warn("db test query failed", zap.Error(err))
		tests = append(tests, gin.H{"name": "Query Execution", "status": "FAIL"})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "tests": tests})
		return
	}
	tests = append(tests, gin.H{"name": "Query Execution", "status": "PASS"})

	c.JSON(http.StatusOK, gin.H{"success": true, "tests": tests})
}
