package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api/middleware"
	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/service"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"required"`
	Language     string `json:"language" binding:"required"`
	DefaultMode  string `json:"default_mode" binding:"required"`
}

// AuthResponse carries the signed-in user and its bearer token.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		user, token, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// HandleRegister handles POST /v1/auth/register
func HandleRegister(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		language := domain.Language(req.Language)
		if !language.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid language"})
			return
		}
		mode := domain.Mode(req.DefaultMode)
		if !mode.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid default mode"})
			return
		}

		user, token, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:        req.Email,
			Password:     req.Password,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			MobileNumber: req.MobileNumber,
			Language:     language,
			DefaultMode:  mode,
		})
		if err != nil {
			logger.Error("Registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
	}
}

// HandleGoogleLogin handles POST /v1/auth/google
func HandleGoogleLogin(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, token, err := auth.LoginWithGoogle(c.Request.Context())
		if err != nil {
			logger.Error("Google login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// SendOTPRequest represents the OTP issuance payload
type SendOTPRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
}

// VerifyOTPRequest represents the OTP verification payload
type VerifyOTPRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
	Code         string `json:"code" binding:"required"`
}

// HandleSendOTP handles POST /v1/auth/otp/send
func HandleSendOTP(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		code, err := auth.SendOTP(c.Request.Context(), req.MobileNumber)
		if err != nil {
			logger.Error("Failed to send OTP", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"code": code})
	}
}

// HandleVerifyOTP handles POST /v1/auth/otp/verify
func HandleVerifyOTP(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		valid, err := auth.VerifyOTP(c.Request.Context(), req.MobileNumber, req.Code)
		if err != nil {
			logger.Error("Failed to verify OTP", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"valid": valid})
	}
}

// HandleLogout handles POST /v1/auth/logout
func HandleLogout(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := auth.Logout(c.Request.Context(), user.ID); err != nil {
			logger.Error("Logout failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleGetMe handles GET /v1/me
func HandleGetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// SwitchModeRequest represents the mode-switch payload
type SwitchModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// HandleSwitchMode handles POST /v1/me/mode
func HandleSwitchMode(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req SwitchModeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		mode := domain.Mode(req.Mode)
		if !mode.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid mode"})
			return
		}

		updated, token, err := auth.SwitchMode(c.Request.Context(), user.ID, mode)
		if err != nil {
			logger.Error("Failed to switch mode", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to switch mode"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: updated, Token: token})
	}
}

// HandleCompleteOnboarding handles POST /v1/me/onboarding/complete
func HandleCompleteOnboarding(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		updated, token, err := auth.CompleteOnboarding(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to complete onboarding", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete onboarding"})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: updated, Token: token})
	}
}
