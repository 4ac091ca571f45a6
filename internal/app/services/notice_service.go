package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// NoticeService handles announcements and institute events
type NoticeService struct {
	noticeRepo   *repositories.NoticeRepository
	activityRepo *repositories.ActivityRepository
	logger       zerolog.Logger
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(
	noticeRepo *repositories.NoticeRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) *NoticeService {
	return &NoticeService{
		noticeRepo:   noticeRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// CreateNotice publishes an announcement; priority defaults to normal
func (s *NoticeService) CreateNotice(ctx context.Context, actorID int64, req *dto.CreateNoticeRequest) (*dto.NoticeResponse, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.NoticePriorityNormal
	}
	if !models.ValidNoticePriority(priority) {
		return nil, apperrors.NewBadRequestError("unknown notice priority")
	}

	if req.TargetRole != nil && !models.ValidRole(*req.TargetRole) {
		return nil, apperrors.NewBadRequestError("unknown target role")
	}

	notice := &models.Notice{
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Priority:   priority,
		TargetRole: req.TargetRole,
		IsActive:   true,
		PostedBy:   &actorID,
	}

	noticeID, err := s.noticeRepo.CreateNotice(ctx, notice)
	if err != nil {
		return nil, err
	}
	notice.ID = noticeID

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "create",
		EntityName: "notices",
		ObjectID:   fmt.Sprintf("%d", noticeID),
	})

	resp := dto.FromNotice(notice)
	return &resp, nil
}

// GetNotice retrieves one notice by ID
func (s *NoticeService) GetNotice(ctx context.Context, noticeID int64) (*dto.NoticeResponse, error) {
	notice, err := s.noticeRepo.GetNoticeByID(ctx, noticeID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromNotice(notice)
	return &resp, nil
}

// DeactivateNotice retires a notice without deleting it
func (s *NoticeService) DeactivateNotice(ctx context.Context, actorID, noticeID int64) error {
	if err := s.noticeRepo.DeactivateNotice(ctx, noticeID); err != nil {
		return err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "deactivate",
		EntityName: "notices",
		ObjectID:   fmt.Sprintf("%d", noticeID),
	})

	return nil
}

// ListNoticesForRole retrieves active notices visible to a role
func (s *NoticeService) ListNoticesForRole(ctx context.Context, role models.Role, page, pageSize int) (*dto.NoticeListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	notices, total, err := s.noticeRepo.ListNoticesForRole(ctx, role, offset, limit)
	if err != nil {
		return nil, err
	}

	return noticesToListResponse(notices, total, page, pageSize), nil
}

// ListAllNotices retrieves every notice for administration
func (s *NoticeService) ListAllNotices(ctx context.Context, page, pageSize int) (*dto.NoticeListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	notices, total, err := s.noticeRepo.ListAllNotices(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return noticesToListResponse(notices, total, page, pageSize), nil
}

// RecentNotices retrieves the newest visible notices for dashboards
func (s *NoticeService) RecentNotices(ctx context.Context, role models.Role, limit int) ([]dto.NoticeResponse, error) {
	notices, err := s.noticeRepo.RecentNoticesForRole(ctx, role, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		responses = append(responses, dto.FromNotice(n))
	}

	return responses, nil
}

// CreateEvent schedules an institute event
func (s *NoticeService) CreateEvent(ctx context.Context, actorID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("startsAt must be RFC 3339")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("endsAt must be RFC 3339")
	}
	if !endsAt.After(startsAt) {
		return nil, apperrors.NewBadRequestError("endsAt must be after startsAt")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		CreatedBy:   &actorID,
	}

	eventID, err := s.noticeRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = eventID

	resp := dto.FromEvent(event)
	return &resp, nil
}

// DeleteEvent removes an event
func (s *NoticeService) DeleteEvent(ctx context.Context, actorID, eventID int64) error {
	if err := s.noticeRepo.DeleteEvent(ctx, eventID); err != nil {
		return err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "delete",
		EntityName: "events",
		ObjectID:   fmt.Sprintf("%d", eventID),
	})

	return nil
}

// ListEvents retrieves events with pagination
func (s *NoticeService) ListEvents(ctx context.Context, page, pageSize int) (*dto.EventListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	events, total, err := s.noticeRepo.ListEvents(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{
		Events:         make([]dto.EventResponse, 0, len(events)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, dto.FromEvent(e))
	}

	return resp, nil
}

// UpcomingEvents retrieves events that have not yet ended
func (s *NoticeService) UpcomingEvents(ctx context.Context, limit int) ([]dto.EventResponse, error) {
	events, err := s.noticeRepo.ListUpcomingEvents(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, dto.FromEvent(e))
	}

	return responses, nil
}

func noticesToListResponse(notices []*models.Notice, total int64, page, pageSize int) *dto.NoticeListResponse {
	resp := &dto.NoticeListResponse{
		Notices:        make([]dto.NoticeResponse, 0, len(notices)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, n := range notices {
		resp.Notices = append(resp.Notices, dto.FromNotice(n))
	}
	return resp
}
