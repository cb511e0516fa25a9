package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"fncs-api/internal/domain"
	"fncs-api/internal/repository"
	"fncs-api/internal/service"
)

// CategoryHandler mantiene dependencias para los endpoints de categorías.
type CategoryHandler struct {
	logger     *zap.Logger
	categories repository.CategoryRepository
	cache      service.CategoryCache
}

// NewCategoryHandler crea una instancia de CategoryHandler. El cache puede
// ser nil; en ese caso cada listado consulta la base.
func NewCategoryHandler(logger *zap.Logger, categories repository.CategoryRepository, cache service.CategoryCache) *CategoryHandler {
	return &CategoryHandler{
		logger:     logger,
		categories: categories,
		cache:      cache,
	}
}

// List maneja GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx); ok {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    cached,
				"count":   len(cached),
			})
			return
		}
	}

	categories, err := h.categories.List(ctx)
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorJSON("Failed to retrieve categories"))
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, categories)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
		"count":   len(categories),
	})
}

// Get maneja GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, errorJSON(fmt.Sprintf("Category with id %d not found", id)))
			return
		}
		h.logger.Error("get category failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorJSON("Failed to retrieve category"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// Create maneja POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(msgInvalidBody))
		return
	}

	if req.Name == nil {
		c.JSON(http.StatusBadRequest, errorJSON("Field 'name' is required"))
		return
	}
	if msg := validateCategoryName(*req.Name); msg != "" {
		c.JSON(http.StatusBadRequest, errorJSON(msg))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category, err := h.categories.Create(c.Request.Context(), *req.Name, req.Description, isActive)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, errorJSON("A category with this name already exists"))
			return
		}
		h.logger.Error("create category failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorJSON("Failed to create category"))
		return
	}

	h.invalidateCache(c)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}

// Update maneja PUT /categories/:id con actualización parcial de campos.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(msgInvalidBody))
		return
	}

	patch := domain.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, errorJSON(msgInvalidBody))
		return
	}
	if patch.Name != nil {
		if msg := validateCategoryName(*patch.Name); msg != "" {
			c.JSON(http.StatusBadRequest, errorJSON(msg))
			return
		}
	}

	category, err := h.categories.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			c.JSON(http.StatusNotFound, errorJSON(fmt.Sprintf("Category with id %d not found", id)))
		case repository.IsUniqueViolation(err):
			c.JSON(http.StatusBadRequest, errorJSON("A category with this name already exists"))
		default:
			h.logger.Error("update category failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorJSON("Failed to update category"))
		}
		return
	}

	h.invalidateCache(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

// Delete maneja DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	name, err := h.categories.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, errorJSON(fmt.Sprintf("Category with id %d not found", id)))
			return
		}
		h.logger.Error("delete category failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorJSON("Failed to delete category"))
		return
	}

	h.invalidateCache(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Category %q deleted successfully", name),
	})
}

func (h *CategoryHandler) invalidateCache(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
}

func categoryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorJSON("Invalid category id"))
		return 0, false
	}
	return id, true
}

func validateCategoryName(name string) string {
	if name == "" {
		return "Field 'name' must be a non-empty string"
	}
	if len(name) > 100 {
		return "Field 'name' must not exceed 100 characters"
	}
	return ""
}
