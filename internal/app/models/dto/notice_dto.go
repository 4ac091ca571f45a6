package dto

import (
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// CreateNoticeRequest publishes an announcement
type CreateNoticeRequest struct {
	Title      string                `json:"title" binding:"required"`
	Content    string                `json:"content" binding:"required"`
	Category   string                `json:"category" binding:"required"`
	Priority   models.NoticePriority `json:"priority,omitempty"`
	TargetRole *models.Role          `json:"targetRole,omitempty"`
}

// NoticeResponse represents one notice
type NoticeResponse struct {
	ID         int64                 `json:"id"`
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	Category   string                `json:"category"`
	Priority   models.NoticePriority `json:"priority"`
	TargetRole *models.Role          `json:"targetRole,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// FromNotice converts a models.Notice to a NoticeResponse
func FromNotice(n *models.Notice) NoticeResponse {
	if n == nil {
		return NoticeResponse{}
	}
	return NoticeResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Category:   n.Category,
		Priority:   n.Priority,
		TargetRole: n.TargetRole,
		CreatedAt:  n.CreatedAt,
	}
}

// NoticeListResponse represents notices with pagination
type NoticeListResponse struct {
	Notices []NoticeResponse `json:"notices"`
	PaginationInfo
}

// CreateEventRequest schedules an institute event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"startsAt" binding:"required"` // RFC 3339
	EndsAt      string `json:"endsAt" binding:"required"`
}

// EventResponse represents one event
type EventResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

// FromEvent converts a models.Event to an EventResponse
func FromEvent(e *models.Event) EventResponse {
	if e == nil {
		return EventResponse{}
	}
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
	}
}

// EventListResponse represents events with pagination
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	PaginationInfo
}
