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

func (h *HttpEndpoints) AddBooksAPI(rg *gin.RouterGroup) {
	group := rg.Group("/libro")
	group.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	group.Use(mw.RequireRole(userTypes.ROLE_USER))
	{
		group.GET("", h.getAllBooks)
		group.GET("/:id", h.getBookByID)
		group.POST("", mw.RequirePayload(), h.createBook)
		group.PUT("/:id", mw.RequirePayload(), h.updateBook)
		group.DELETE("/:id", h.deleteBook)
	}
}

func (h *HttpEndpoints) getAllBooks(c *gin.Context) {
	books, err := h.books.GetAll(c.Request.Context())
	if err != nil {
		slog.Error("failed to load books", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *HttpEndpoints) getBookByID(c *gin.Context) {
	book, err := h.books.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apihelpers.WriteProblem(c, records.NotFoundProblem("book not found"))
			return
		}
		slog.Error("failed to load book", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load book"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *HttpEndpoints) createBook(c *gin.Context) {
	var dto library.BookDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.books.Add(c.Request.Context(), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusCreated, "book created")
}

func (h *HttpEndpoints) updateBook(c *gin.Context) {
	var dto library.BookDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.books.Update(c.Request.Context(), c.Param("id"), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "book updated")
}

func (h *HttpEndpoints) deleteBook(c *gin.Context) {
	if problem := h.books.Delete(c.Request.Context(), c.Param("id")); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "book deleted")
}
