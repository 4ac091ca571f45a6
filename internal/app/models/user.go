package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Username    string     `json:"username" db:"username" example:"jdoe"`
	Email       string     `json:"email" db:"email" example:"jdoe@institute.edu"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`
	Role        Role       `json:"role" db:"role" example:"student"`
	SubRole     *SubRole   `json:"subRole,omitempty" db:"sub_role" example:"teacher"` // employees only
	Bio         string     `json:"bio,omitempty" db:"bio"`
	Phone       string     `json:"phone,omitempty" db:"phone"`
	Gender      string     `json:"gender,omitempty" db:"gender"`
	Location    string     `json:"location,omitempty" db:"location"`
	Country     string     `json:"country,omitempty" db:"country"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	ImagePath   *string    `json:"imagePath,omitempty" db:"image_path"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	IsTemporary bool       `json:"isTemporary" db:"is_temporary"`
	IsVerified  bool       `json:"isVerified" db:"is_verified"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsEmployee reports whether the user carries the employee role.
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// HasSubRole reports whether the user is an employee with the given sub-role.
func (u *User) HasSubRole(s SubRole) bool {
	return u.Role == RoleEmployee && u.SubRole != nil && *u.SubRole == s
}

// Notification is a per-user message with an optional action link
type Notification struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Message    string    `json:"message" db:"message"`
	ActionLink *string   `json:"actionLink,omitempty" db:"action_link"`
	IsRead     bool      `json:"isRead" db:"is_read"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// AuditLog is an append-only record of a write action.
// UserID is nullable: deleting the actor keeps the log entry.
type AuditLog struct {
	ID         int64     `json:"id" db:"id"`
	UserID     *int64    `json:"userId,omitempty" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	EntityName string    `json:"entityName" db:"entity_name"`
	ObjectID   string    `json:"objectId" db:"object_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ActivityLog records session-level user actions (login, logout, profile changes)
type ActivityLog struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	ObjectType string    `json:"objectType,omitempty" db:"object_type"`
	ObjectID   string    `json:"objectId,omitempty" db:"object_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Trash stores a JSON snapshot of a deleted record for recovery
type Trash struct {
	ID         int64     `json:"id" db:"id"`
	EntityName string    `json:"entityName" db:"entity_name"`
	ObjectData []byte    `json:"objectData" db:"object_data"` // JSONB snapshot
	DeletedBy  *int64    `json:"deletedBy,omitempty" db:"deleted_by"`
	DeletedAt  time.Time `json:"deletedAt" db:"deleted_at"`
}
