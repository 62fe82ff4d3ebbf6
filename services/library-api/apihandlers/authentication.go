package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Johnmontoya/library-backend/pkg/apihelpers"
	mw "github.com/Johnmontoya/library-backend/pkg/apihelpers/middlewares"
	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	rg.POST("/login", mw.RequirePayload(), h.login)
	rg.POST("/register", mw.RequirePayload(), h.register)
	rg.GET("/confirm-email", h.confirmEmail)
	rg.POST("/forgot-password", mw.RequirePayload(), h.forgotPassword)
	rg.POST("/reset-password", mw.RequirePayload(), h.resetPassword)
	rg.POST("/active-email", mw.RequirePayload(), h.activateAccountEmail)
	rg.PUT("/reactive-account", mw.RequirePayload(), h.reactivateAccount)

	authGroup := rg.Group("")
	authGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	{
		authGroup.GET("/profile", h.getProfile)
		authGroup.POST("/usuario", mw.RequirePayload(), h.createProfile)
		authGroup.PUT("/usuario", mw.RequirePayload(), h.updateProfile)
		authGroup.PUT("/add-phonenumber/:id", mw.RequirePayload(), h.addPhoneNumber)
		authGroup.PUT("/number-verify/:id", mw.RequirePayload(), h.verifyPhoneNumber)
		authGroup.PUT("/change-password/:id", mw.RequirePayload(), h.changePassword)
		authGroup.PUT("/deactived", h.deactivateAccount)
	}
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, problem := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}

	c.JSON(http.StatusOK, apihelpers.APIResponse{
		Status: http.StatusOK,
		Title:  "welcome " + result.Username,
		Token:  result.Token,
	})
}

type RegisterReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, problem := h.userService.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusCreated, "registration successful, please confirm your email address")
}

func (h *HttpEndpoints) confirmEmail(c *gin.Context) {
	userID := c.Query("userId")
	token := c.Query("token")

	if problem := h.userService.ConfirmEmail(c.Request.Context(), userID, token); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "email address confirmed")
}

type ForgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *HttpEndpoints) forgotPassword(c *gin.Context) {
	var req ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.ForgotPassword(c.Request.Context(), req.Email); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "password reset email sent")
}

type ResetPasswordReq struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *HttpEndpoints) resetPassword(c *gin.Context) {
	var req ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "password has been reset")
}

type ActivateEmailReq struct {
	Email string `json:"email"`
}

func (h *HttpEndpoints) activateAccountEmail(c *gin.Context) {
	var req ActivateEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.ActivateAccountEmail(c.Request.Context(), req.Email); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "reactivation email sent")
}

type ReactivateAccountReq struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *HttpEndpoints) reactivateAccount(c *gin.Context) {
	var req ReactivateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.ReactivateAccount(c.Request.Context(), req.Email, req.Token); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "account reactivated")
}

// UserDetailDto combines the account with the optional person profile.
type UserDetailDto struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	Username       string           `json:"username"`
	Roles          []string         `json:"roles"`
	PhoneNumber    string           `json:"phoneNumber"`
	PhoneConfirmed bool             `json:"phoneNumberConfirmed"`
	FailedAttempts int              `json:"accessFailedCount"`
	Person         *libTypes.Person `json:"person,omitempty"`
}

func (h *HttpEndpoints) getProfile(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil {
		return
	}

	account, problem := h.userService.GetAccount(c.Request.Context(), claims.AccountID)
	if problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}

	detail := UserDetailDto{
		ID:             account.ID,
		Email:          account.Email,
		Username:       account.Username,
		Roles:          account.Roles,
		PhoneNumber:    account.PhoneNumber,
		PhoneConfirmed: account.PhoneConfirmed,
		FailedAttempts: account.FailedAttempts,
	}

	person, err := h.persons.GetByAccountID(c.Request.Context(), account.ID)
	if err == nil {
		detail.Person = &person
	} else if !errors.Is(err, records.ErrNotFound) {
		slog.Error("failed to load person profile", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

type PhoneNumberReq struct {
	PhoneNumber string `json:"phoneNumber"`
}

func (h *HttpEndpoints) addPhoneNumber(c *gin.Context) {
	claims := requireSelf(c, c.Param("id"))
	if claims == nil {
		return
	}

	var req PhoneNumberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.RegisterPhone(c.Request.Context(), claims.AccountID, req.PhoneNumber); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "verification code sent")
}

type VerifyPhoneReq struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

func (h *HttpEndpoints) verifyPhoneNumber(c *gin.Context) {
	claims := requireSelf(c, c.Param("id"))
	if claims == nil {
		return
	}

	var req VerifyPhoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.VerifyOTP(c.Request.Context(), claims.AccountID, req.PhoneNumber, req.Code); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "phone number confirmed")
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *HttpEndpoints) changePassword(c *gin.Context) {
	claims := requireSelf(c, c.Param("id"))
	if claims == nil {
		return
	}

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if problem := h.userService.ChangePassword(c.Request.Context(), claims.AccountID, req.CurrentPassword, req.NewPassword); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "password changed")
}

func (h *HttpEndpoints) deactivateAccount(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil {
		return
	}

	if problem := h.userService.DeactivateAccount(c.Request.Context(), claims.AccountID); problem != nil {
		apihelpers.WriteProblem(c, problem)
		return
	}
	apihelpers.WriteStatus(c, http.StatusOK, "account deactivated")
}
