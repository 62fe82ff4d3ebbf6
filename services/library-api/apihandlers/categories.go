package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnmontoya/library-backend/pkg/apihelpers"
	mw "github.com/Johnmontoya/library-backend/pkg/apihelpers/middlewares"
	"github.com/Johnmontoya/library-backend/pkg/library"
	"github.com/Johnmontoya/library-backend/pkg/records"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
)

func (h *HttpEndpoints) AddCategoriesAPI(rg *gin.RouterGroup) {
	group := rg.Group("/categoria")
	group.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	group.Use(mw.RequireRole(userTypes.ROLE_USER))
	{
		group.GET("", h.getAllCategories)
		group.GET("/:id", h.getCategoryByID)
		group.POST("", mw.RequirePayload(), h.createCategory)
		group.PUT("/:id", mw.RequirePayload(), h.updateCategory)
		group.DELETE("/:id", h.deleteCategory)
	}
}

func (h *HttpEndpoints) getAllCategories(c *gin.Context) {
	categories, err := h.categories.GetAll(c.Request.Context())
	if err != nil {
		slog.Error("failed to load categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *HttpEndpoints) getCategoryByID(c *gin.Context) {
	category, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apihelpers.WriteProblem(c, records.NotFoundProblem("category not found"))
			return
		}
		slog.Error("failed to load category", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *HttpEndpoints) createCategory(c *gin.Context) {
	var dto library.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.categories.Add(c.Request.Context(), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusCreated, "category created")
}

func (h *HttpEndpoints) updateCategory(c *gin.Context) {
	var dto library.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.categories.Update(c.Request.Context(), c.Param("id"), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "category updated")
}

func (h *HttpEndpoints) deleteCategory(c *gin.Context) {
	if problem := h.categories.Delete(c.Request.Context(), c.Param("id")); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "category deleted")
}
