package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/auth"
	"github.com/instracore/backend/internal/pkg/filestorage"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// UserService handles account management, profiles, notifications and trash
type UserService struct {
	userRepo     *repositories.UserRepository
	activityRepo *repositories.ActivityRepository
	fileStorage  filestorage.FileStorage
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	activityRepo *repositories.ActivityRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

// userSnapshot is the trash payload for a deleted account. The password
// hash is stripped from API JSON, so the snapshot carries it explicitly
// to keep restores lossless.
type userSnapshot struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func snapshotUser(u *models.User) ([]byte, error) {
	return json.Marshal(userSnapshot{User: *u, PasswordHash: u.Password})
}

// defaultPassword derives the initial password for admin-created accounts
// that did not specify one. The account holder is expected to change it.
func defaultPassword(role models.Role, subRole *models.SubRole) string {
	if role == models.RoleEmployee && subRole != nil {
		return string(*subRole) + "@123"
	}
	return string(role) + "@123"
}

// CreateUser creates an account on behalf of an admin. This is the only
// path that creates employees; sub-roles are rejected for other roles.
func (s *UserService) CreateUser(ctx context.Context, actorID int64, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !models.ValidRole(req.Role) {
		return nil, apperrors.NewBadRequestError("unknown role")
	}

	if req.Role == models.RoleEmployee {
		if req.SubRole == nil || !models.ValidSubRole(*req.SubRole) {
			return nil, apperrors.NewBadRequestError("employees require a valid sub-role")
		}
	} else if req.SubRole != nil {
		return nil, apperrors.NewBadRequestError("sub-role is only valid for employees")
	}

	password := req.Password
	if password == "" {
		password = defaultPassword(req.Role, req.SubRole)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		SubRole:    req.SubRole,
		IsActive:   true,
		IsVerified: true, // admin-created accounts skip email verification
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "create",
		EntityName: "users",
		ObjectID:   fmt.Sprintf("%d", userID),
	})

	resp := dto.FromUser(user)
	return &resp, nil
}

// GetUser retrieves one user by ID
func (s *UserService) GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// ListUsers retrieves users matching the filter with pagination
func (s *UserService) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	users, total, err := s.userRepo.ListUsers(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:          make([]dto.UserResponse, 0, len(users)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.FromUser(u))
	}

	return resp, nil
}

// UpdateUser updates another user's account on behalf of an admin
func (s *UserService) UpdateUser(ctx context.Context, actorID, userID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	if req.SubRole != nil {
		if user.Role != models.RoleEmployee {
			return nil, apperrors.NewBadRequestError("sub-role is only valid for employees")
		}
		if !models.ValidSubRole(*req.SubRole) {
			return nil, apperrors.NewBadRequestError("unknown sub-role")
		}
		user.SubRole = req.SubRole
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "update",
		EntityName: "users",
		ObjectID:   fmt.Sprintf("%d", userID),
	})

	resp := dto.FromUser(user)
	return &resp, nil
}

// DeleteUser snapshots the account into trash and removes it
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return apperrors.NewBadRequestError("cannot delete your own account")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	snapshot, err := snapshotUser(user)
	if err != nil {
		return fmt.Errorf("failed to snapshot user: %w", err)
	}

	if _, err := s.activityRepo.CreateTrashItem(ctx, &models.Trash{
		EntityName: "users",
		ObjectData: snapshot,
		DeletedBy:  &actorID,
	}); err != nil {
		return fmt.Errorf("failed to move user to trash: %w", err)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if user.ImagePath != nil {
		if err := s.fileStorage.DeleteFile(*user.ImagePath); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete profile image")
		}
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "delete",
		EntityName: "users",
		ObjectID:   fmt.Sprintf("%d", userID),
	})

	return nil
}

// DeleteAccount removes the caller's own account after snapshotting it
// to trash.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		return apperrors.NewForbiddenError("admin accounts must be removed by another admin")
	}

	snapshot, err := snapshotUser(user)
	if err != nil {
		return fmt.Errorf("failed to snapshot user: %w", err)
	}

	if _, err := s.activityRepo.CreateTrashItem(ctx, &models.Trash{
		EntityName: "users",
		ObjectData: snapshot,
		DeletedBy:  &userID,
	}); err != nil {
		return fmt.Errorf("failed to move user to trash: %w", err)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if user.ImagePath != nil {
		if err := s.fileStorage.DeleteFile(*user.ImagePath); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete profile image")
		}
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     "delete_account",
		EntityName: "users",
		ObjectID:   fmt.Sprintf("%d", userID),
	})

	return nil
}

// UpdateProfile updates the current user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Bio = req.Bio
	user.Phone = req.Phone
	user.Gender = req.Gender
	user.Location = req.Location
	user.Country = req.Country
	if req.DateOfBirth != nil {
		dob, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dateOfBirth must be YYYY-MM-DD")
		}
		user.DateOfBirth = &dob
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID: userID,
		Action: "update_profile",
	})

	resp := dto.FromUser(user)
	return &resp, nil
}

// UpdateProfileImage stores a new profile image path for the user,
// removing the previous file if any.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID int64, imagePath string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ImagePath != nil && *user.ImagePath != imagePath {
		if err := s.fileStorage.DeleteFile(*user.ImagePath); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete old profile image")
		}
	}

	user.ImagePath = &imagePath
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// ListNotifications retrieves the current user's notifications
func (s *UserService) ListNotifications(ctx context.Context, userID int64, page, pageSize int) (*dto.NotificationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	notifications, total, err := s.activityRepo.ListNotificationsByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.activityRepo.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications:  make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:    unread,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.FromNotification(n))
	}

	return resp, nil
}

// MarkNotificationRead marks one of the user's notifications as read
func (s *UserService) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	return s.activityRepo.MarkNotificationRead(ctx, notificationID, userID)
}

// MarkAllNotificationsRead marks all of the user's notifications as read
func (s *UserService) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	return s.activityRepo.MarkAllNotificationsRead(ctx, userID)
}

// ListAuditLogs retrieves audit trail entries for admins
func (s *UserService) ListAuditLogs(ctx context.Context, page, pageSize int) (*dto.AuditLogListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	entries, total, err := s.activityRepo.ListAuditLogs(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuditLogListResponse{
		Logs:           make([]dto.AuditLogResponse, 0, len(entries)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, e := range entries {
		resp.Logs = append(resp.Logs, dto.AuditLogResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Action:     e.Action,
			EntityName: e.EntityName,
			ObjectID:   e.ObjectID,
			CreatedAt:  e.CreatedAt,
		})
	}

	return resp, nil
}

// ListTrash retrieves deleted-object snapshots for admins
func (s *UserService) ListTrash(ctx context.Context, page, pageSize int) (*dto.TrashListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	items, total, err := s.activityRepo.ListTrashItems(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.TrashListResponse{
		Items:          make([]dto.TrashItemResponse, 0, len(items)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, t := range items {
		resp.Items = append(resp.Items, dto.TrashItemResponse{
			ID:         t.ID,
			EntityName: t.EntityName,
			ObjectData: json.RawMessage(t.ObjectData),
			DeletedBy:  t.DeletedBy,
			DeletedAt:  t.DeletedAt,
		})
	}

	return resp, nil
}

// RestoreTrashItem restores a deleted user from its snapshot. Only user
// snapshots are restorable; other entities stay recoverable by hand.
func (s *UserService) RestoreTrashItem(ctx context.Context, actorID, trashID int64) (*dto.UserResponse, error) {
	item, err := s.activityRepo.GetTrashItemByID(ctx, trashID)
	if err != nil {
		return nil, err
	}

	if item.EntityName != "users" {
		return nil, apperrors.NewBadRequestError("only user records can be restored")
	}

	var snap userSnapshot
	if err := json.Unmarshal(item.ObjectData, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode trash snapshot: %w", err)
	}
	user := snap.User
	user.Password = snap.PasswordHash

	// Re-insert under a fresh ID; the old one may have been reused.
	user.ID = 0
	userID, err := s.userRepo.CreateUser(ctx, &user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if err := s.activityRepo.DeleteTrashItem(ctx, trashID); err != nil {
		s.logger.Warn().Err(err).Int64("trashID", trashID).Msg("Failed to remove restored trash item")
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "restore",
		EntityName: "users",
		ObjectID:   fmt.Sprintf("%d", userID),
	})

	resp := dto.FromUser(&user)
	return &resp, nil
}

// PurgeTrashItem permanently deletes a trash snapshot
func (s *UserService) PurgeTrashItem(ctx context.Context, actorID, trashID int64) error {
	if err := s.activityRepo.DeleteTrashItem(ctx, trashID); err != nil {
		return err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "purge",
		EntityName: "trash",
		ObjectID:   fmt.Sprintf("%d", trashID),
	})

	return nil
}
