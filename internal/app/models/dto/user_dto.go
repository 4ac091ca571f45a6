package dto

import (
	"encoding/json"
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Role       models.Role     `json:"role"`
	SubRole    *models.SubRole `json:"subRole,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Location   string          `json:"location,omitempty"`
	Country    string          `json:"country,omitempty"`
	Bio        string          `json:"bio,omitempty"`
	ImagePath  *string         `json:"imagePath,omitempty"`
	IsActive   bool            `json:"isActive"`
	IsVerified bool            `json:"isVerified"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		SubRole:    u.SubRole,
		Phone:      u.Phone,
		Location:   u.Location,
		Country:    u.Country,
		Bio:        u.Bio,
		ImagePath:  u.ImagePath,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// CreateUserRequest is used by admins to create any account, including employees
type CreateUserRequest struct {
	Username  string          `json:"username" binding:"required,min=3"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"omitempty,min=8"` // empty derives a role-based default
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Role      models.Role     `json:"role" binding:"required"`
	SubRole   *models.SubRole `json:"subRole,omitempty"`
}

// UpdateUserRequest updates another user's account (admin only)
type UpdateUserRequest struct {
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	SubRole   *models.SubRole `json:"subRole,omitempty"`
	IsActive  *bool           `json:"isActive,omitempty"`
}

// UpdateProfileRequest represents profile update data for the current user
type UpdateProfileRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Bio         string  `json:"bio,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Location    string  `json:"location,omitempty"`
	Country     string  `json:"country,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
}

// UserFilterRequest represents user filtering parameters
type UserFilterRequest struct {
	Role     *string `form:"role,omitempty"`
	SubRole  *string `form:"subRole,omitempty"`
	Email    *string `form:"email,omitempty"`
	Name     *string `form:"name,omitempty"` // For searching by first or last name
	IsActive *bool   `form:"isActive,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// UserListResponse represents a list of users with pagination
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	PaginationInfo
}

// NotificationResponse represents a single notification
type NotificationResponse struct {
	ID         int64     `json:"id"`
	Message    string    `json:"message"`
	ActionLink *string   `json:"actionLink,omitempty"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Message:    n.Message,
		ActionLink: n.ActionLink,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

// NotificationListResponse represents a list of notifications with pagination
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	PaginationInfo
}

// AuditLogResponse represents one audit trail entry
type AuditLogResponse struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"userId,omitempty"`
	Action     string    `json:"action"`
	EntityName string    `json:"entityName"`
	ObjectID   string    `json:"objectId"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditLogListResponse represents audit entries with pagination
type AuditLogListResponse struct {
	Logs []AuditLogResponse `json:"logs"`
	PaginationInfo
}

// TrashItemResponse represents a soft-deleted object snapshot
type TrashItemResponse struct {
	ID         int64           `json:"id"`
	EntityName string          `json:"entityName"`
	ObjectData json.RawMessage `json:"objectData"`
	DeletedBy  *int64          `json:"deletedBy,omitempty"`
	DeletedAt  time.Time       `json:"deletedAt"`
}

// TrashListResponse represents trash entries with pagination
type TrashListResponse struct {
	Items []TrashItemResponse `json:"items"`
	PaginationInfo
}
