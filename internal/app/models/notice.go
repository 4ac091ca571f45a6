package models

import "time"

// NoticePriority orders notices on dashboards
type NoticePriority string

const (
	NoticePriorityLow    NoticePriority = "low"
	NoticePriorityNormal NoticePriority = "normal"
	NoticePriorityHigh   NoticePriority = "high"
	NoticePriorityUrgent NoticePriority = "urgent"
)

// ValidNoticePriority reports whether the value is a known priority.
func ValidNoticePriority(p NoticePriority) bool {
	switch p {
	case NoticePriorityLow, NoticePriorityNormal, NoticePriorityHigh, NoticePriorityUrgent:
		return true
	}
	return false
}

// Notice is an announcement targeted at a role, or everyone when TargetRole is nil
type Notice struct {
	ID         int64          `json:"id" db:"id"`
	Title      string         `json:"title" db:"title"`
	Content    string         `json:"content" db:"content"`
	Category   string         `json:"category" db:"category"`
	Priority   NoticePriority `json:"priority" db:"priority"`
	TargetRole *Role          `json:"targetRole,omitempty" db:"target_role"`
	IsActive   bool           `json:"isActive" db:"is_active"`
	PostedBy   *int64         `json:"postedBy,omitempty" db:"posted_by"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}

// Event is a scheduled institute event
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Location    string    `json:"location,omitempty" db:"location"`
	StartsAt    time.Time `json:"startsAt" db:"starts_at"`
	EndsAt      time.Time `json:"endsAt" db:"ends_at"`
	CreatedBy   *int64    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
