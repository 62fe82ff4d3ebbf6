package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnmontoya/library-backend/pkg/apihelpers"
	"github.com/Johnmontoya/library-backend/pkg/library"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

func (h *HttpEndpoints) createProfile(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil {
		return
	}

	var dto library.PersonDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.persons.Add(c.Request.Context(), claims.AccountID, dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusCreated, "profile created")
}

func (h *HttpEndpoints) updateProfile(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil {
		return
	}

	var dto library.PersonDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := h.persons.GetByAccountID(c.Request.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apihelpers.WriteProblem(c, records.NotFoundProblem("profile not found"))
			return
		}
		slog.Error("failed to load person profile", slog.String("accountID", claims.AccountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	if problem := h.persons.Update(c.Request.Context(), person.ID, claims.AccountID, dto); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "profile updated")
}
