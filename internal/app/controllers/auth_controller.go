package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// SetupStatus reports whether the first admin account exists yet
func (c *AuthController) SetupStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data:    dto.SetupStatusResponse{Initialized: c.authService.IsInitialized()},
	})
}

// Setup creates the first admin account on a fresh installation
func (c *AuthController) Setup(ctx *gin.Context) {
	var req dto.SetupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Setup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("System setup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", req.Email).Msg("System initialized with first admin account")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// Register handles self-service registration for students and candidates
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", req.Email).Int64("userID", resp.User.ID).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// Login handles user login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", req.Email).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// RefreshToken exchanges a refresh token for a new token pair
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Token refresh failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// Logout revokes all of the current user's refresh tokens
func (c *AuthController) Logout(ctx *gin.Context) {
	userID := currentUserID(ctx)

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Logged out successfully"))
}

// VerifyEmail confirms an email address using the token from the
// emailed link
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing verification token")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.VerifyEmail(ctx.Request.Context(), token); err != nil {
		c.logger.Warn().Err(err).Msg("Email verification failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Email verified successfully"))
}

// ResendVerification sends a fresh verification email to the current user
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	userID := currentUserID(ctx)

	if err := c.authService.ResendVerification(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Verification email sent"))
}

// ForgotPassword starts a password reset flow. The response is the same
// whether or not the email belongs to an account.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "If the email exists, a reset link has been sent"))
}

// ResetPassword completes a password reset flow
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		c.logger.Warn().Err(err).Msg("Password reset failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Password reset successfully"))
}

// ChangePassword changes the current user's password
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	userID := currentUserID(ctx)
	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Password changed successfully"))
}
