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

func (h *HttpEndpoints) AddAuthorsAPI(rg *gin.RouterGroup) {
	group := rg.Group("/autor")
	group.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	group.Use(mw.RequireRole(userTypes.ROLE_USER))
	{
		group.GET("", h.getAllAuthors)
		group.GET("/:id", h.getAuthorByID)
		group.POST("", mw.RequirePayload(), h.createAuthor)
		group.PUT("/:id", mw.RequirePayload(), h.updateAuthor)
		group.DELETE("/:id", h.deleteAuthor)
	}
}

func (h *HttpEndpoints) getAllAuthors(c *gin.Context) {
	authors, err := h.authors.GetAll(c.Request.Context())
	if err != nil {
		slog.Error("failed to load authors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load authors"})
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *HttpEndpoints) getAuthorByID(c *gin.Context) {
	author, err := h.authors.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apihelpers.WriteProblem(c, records.NotFoundProblem("author not found"))
			return
		}
		slog.Error("failed to load author", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load author"})
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *HttpEndpoints) createAuthor(c *gin.Context) {
	var dto library.AuthorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.authors.Add(c.Request.Context(), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusCreated, "author created")
}

func (h *HttpEndpoints) updateAuthor(c *gin.Context) {
	var dto library.AuthorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.authors.Update(c.Request.Context(), c.Param("id"), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "author updated")
}

func (h *HttpEndpoints) deleteAuthor(c *gin.Context) {
	if problem := h.authors.Delete(c.Request.Context(), c.Param("id")); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "author deleted")
}
