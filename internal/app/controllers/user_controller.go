package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
	"github.com/instracore/backend/internal/pkg/filestorage"
	"github.com/instracore/backend/internal/pkg/helpers"
)

const profileImagesDir = "profile_images"

// UserController handles user account and profile operations
type UserController struct {
	userService *services.UserService
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, fileStorage filestorage.FileStorage, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// CreateUser creates an account on behalf of an admin
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.CreateUser(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to create user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", resp.ID).Str("role", string(resp.Role)).Msg("User created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// GetUser returns one user by ID
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.userService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListUsers lists accounts with optional role and name filters
func (c *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.userService.ListUsers(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateUser updates another user's account
func (c *UserController) UpdateUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.UpdateUser(ctx.Request.Context(), currentUserID(ctx), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// DeleteUser soft-deletes a user into the trash
func (c *UserController) DeleteUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), currentUserID(ctx), userID); err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("User moved to trash")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "User deleted successfully"))
}

// GetProfile returns the current user's own account
func (c *UserController) GetProfile(ctx *gin.Context) {
	resp, err := c.userService.GetUser(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateProfile updates the current user's own profile
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.UpdateProfile(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// DeleteAccount removes the current user's own account
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	if err := c.userService.DeleteAccount(ctx.Request.Context(), currentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Message: "Account deleted"})
}

// UploadProfileImage replaces the current user's profile image
func (c *UserController) UploadProfileImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing image file")
		errorDetail = errorDetail.WithDetails("A multipart form field named 'image' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	imagePath, err := c.fileStorage.SaveFileWithPath(fileHeader, profileImagesDir)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to store profile image")
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.userService.UpdateProfileImage(ctx.Request.Context(), currentUserID(ctx), imagePath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListNotifications lists the current user's notifications
func (c *UserController) ListNotifications(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListNotifications(ctx.Request.Context(), currentUserID(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MarkNotificationRead marks one of the current user's notifications read
func (c *UserController) MarkNotificationRead(ctx *gin.Context) {
	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.MarkNotificationRead(ctx.Request.Context(), currentUserID(ctx), notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notification marked as read"))
}

// MarkAllNotificationsRead marks all the current user's notifications read
func (c *UserController) MarkAllNotificationsRead(ctx *gin.Context) {
	if err := c.userService.MarkAllNotificationsRead(ctx.Request.Context(), currentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "All notifications marked as read"))
}

// ListAuditLogs lists the audit trail
func (c *UserController) ListAuditLogs(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListAuditLogs(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListTrash lists soft-deleted objects
func (c *UserController) ListTrash(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListTrash(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// RestoreTrashItem restores a soft-deleted user from the trash
func (c *UserController) RestoreTrashItem(ctx *gin.Context) {
	trashID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.userService.RestoreTrashItem(ctx.Request.Context(), currentUserID(ctx), trashID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("trashID", trashID).Msg("Failed to restore trash item")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("trashID", trashID).Msg("Trash item restored")
	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// PurgeTrashItem permanently removes a trash entry
func (c *UserController) PurgeTrashItem(ctx *gin.Context) {
	trashID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.PurgeTrashItem(ctx.Request.Context(), currentUserID(ctx), trashID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Trash item purged"))
}
