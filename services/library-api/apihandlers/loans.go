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

func (h *HttpEndpoints) AddLoansAPI(rg *gin.RouterGroup) {
	group := rg.Group("/prestamo")
	group.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	group.Use(mw.RequireRole(userTypes.ROLE_USER))
	{
		group.GET("", h.getAllLoans)
		group.GET("/:id", h.getLoanByID)
		group.POST("", mw.RequirePayload(), h.createLoan)
		group.PUT("/:id", mw.RequirePayload(), h.updateLoan)
		group.DELETE("/:id", h.deleteLoan)
	}
}

func (h *HttpEndpoints) getAllLoans(c *gin.Context) {
	loans, err := h.loans.GetAll(c.Request.Context())
	if err != nil {
		slog.Error("failed to load loans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load loans"})
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *HttpEndpoints) getLoanByID(c *gin.Context) {
	loan, err := h.loans.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apihelpers.WriteProblem(c, records.NotFoundProblem("loan not found"))
			return
		}
		slog.Error("failed to load loan", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load loan"})
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *HttpEndpoints) createLoan(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil {
		return
	}

	var dto library.LoanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dto.AccountID == "" {
		dto.AccountID = claims.AccountID
	}

	if problem := h.loans.Add(c.Request.Context(), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusCreated, "loan created")
}

func (h *HttpEndpoints) updateLoan(c *gin.Context) {
	var dto library.LoanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.loans.Update(c.Request.Context(), c.Param("id"), dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "loan updated")
}

func (h *HttpEndpoints) deleteLoan(c *gin.Context) {
	if problem := h.loans.Delete(c.Request.Context(), c.Param("id")); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "loan deleted")
}
