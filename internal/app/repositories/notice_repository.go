package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/pkg/logger"
)

const noticeColumns = "id, title, content, category, priority, target_role, is_active, posted_by, created_at"
const eventColumns = "id, title, description, category, location, starts_at, ends_at, created_by, created_at"

// NoticeRepository handles notice and event persistence
type NoticeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	n := &models.Notice{}
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.Priority,
		&n.TargetRole, &n.IsActive, &n.PostedBy, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateNotice posts a new notice
func (r *NoticeRepository) CreateNotice(ctx context.Context, n *models.Notice) (int64, error) {
	sql, args, err := r.sb.Insert("notices").
		Columns("title", "content", "category", "priority", "target_role", "is_active", "posted_by", "created_at").
		Values(n.Title, n.Content, n.Category, n.Priority, n.TargetRole, n.IsActive, n.PostedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create notice query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("title", n.Title).Msg("Error creating notice")
		return 0, fmt.Errorf("error creating notice: %w", err)
	}

	return id, nil
}

// GetNoticeByID retrieves a notice by ID
func (r *NoticeRepository) GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get notice query: %w", err)
	}

	notice, err := scanNotice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("noticeID", id).Msg("Error scanning notice row")
		return nil, fmt.Errorf("error getting notice by ID: %w", err)
	}

	return notice, nil
}

// DeactivateNotice retires a notice without deleting it
func (r *NoticeRepository) DeactivateNotice(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("notices").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build deactivate notice query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noticeID", id).Msg("Error deactivating notice")
		return fmt.Errorf("error deactivating notice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListNoticesForRole retrieves active notices visible to a role. Notices
// with a NULL target_role are visible to everyone.
func (r *NoticeRepository) ListNoticesForRole(ctx context.Context, role models.Role, offset uint64, limit int) ([]*models.Notice, int64, error) {
	visible := squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.Or{
			squirrel.Eq{"target_role": nil},
			squirrel.Eq{"target_role": role},
		},
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("notices").
		Where(visible).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count notices query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting notices")
		return nil, 0, fmt.Errorf("error counting notices: %w", err)
	}

	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(visible).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error listing notices")
		return nil, 0, fmt.Errorf("error listing notices: %w", err)
	}
	defer rows.Close()

	notices := []*models.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notice row: %w", err)
		}
		notices = append(notices, notice)
	}

	return notices, total, rows.Err()
}

// ListAllNotices retrieves every notice for administration, active or not
func (r *NoticeRepository) ListAllNotices(ctx context.Context, offset uint64, limit int) ([]*models.Notice, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("notices").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count notices query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notices: %w", err)
	}

	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing notices")
		return nil, 0, fmt.Errorf("error listing notices: %w", err)
	}
	defer rows.Close()

	notices := []*models.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notice row: %w", err)
		}
		notices = append(notices, notice)
	}

	return notices, total, rows.Err()
}

// RecentNoticesForRole retrieves the newest visible notices for dashboards
func (r *NoticeRepository) RecentNoticesForRole(ctx context.Context, role models.Role, limit int) ([]*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"target_role": nil},
			squirrel.Eq{"target_role": role},
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build recent notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error listing recent notices")
		return nil, fmt.Errorf("error listing recent notices: %w", err)
	}
	defer rows.Close()

	notices := []*models.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notice row: %w", err)
		}
		notices = append(notices, notice)
	}

	return notices, rows.Err()
}

// CreateEvent schedules a new event
func (r *NoticeRepository) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	sql, args, err := r.sb.Insert("events").
		Columns("title", "description", "category", "location", "starts_at", "ends_at", "created_by", "created_at").
		Values(e.Title, e.Description, e.Category, e.Location, e.StartsAt, e.EndsAt, e.CreatedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create event query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("title", e.Title).Msg("Error creating event")
		return 0, fmt.Errorf("error creating event: %w", err)
	}

	return id, nil
}

// GetEventByID retrieves an event by ID
func (r *NoticeRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns).
		From("events").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}

	return event, nil
}

// DeleteEvent removes an event
func (r *NoticeRepository) DeleteEvent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error deleting event")
		return fmt.Errorf("error deleting event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListUpcomingEvents retrieves events that have not yet ended
func (r *NoticeRepository) ListUpcomingEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns).
		From("events").
		Where(squirrel.Gt{"ends_at": time.Now()}).
		OrderBy("starts_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing upcoming events")
		return nil, fmt.Errorf("error listing upcoming events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// ListEvents retrieves all events with pagination, newest first
func (r *NoticeRepository) ListEvents(ctx context.Context, offset uint64, limit int) ([]*models.Event, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("events").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	sql, args, err := r.sb.Select(eventColumns).
		From("events").
		OrderBy("starts_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}

	return events, total, rows.Err()
}
