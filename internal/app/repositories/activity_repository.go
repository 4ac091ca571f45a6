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

// ActivityRepository handles audit logs, activity logs, notifications and trash
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAuditLog appends an audit record; failures are logged and swallowed
// so auditing never breaks the primary write path.
func (r *ActivityRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) {
	sql, args, err := r.sb.Insert("audit_logs").
		Columns("user_id", "action", "entity_name", "object_id", "created_at").
		Values(entry.UserID, entry.Action, entry.EntityName, entry.ObjectID, time.Now()).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building audit log query")
		return
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("action", entry.Action).Str("entity", entry.EntityName).Msg("Error writing audit log")
	}
}

// ListAuditLogs retrieves audit records with pagination, newest first
func (r *ActivityRepository) ListAuditLogs(ctx context.Context, offset uint64, limit int) ([]*models.AuditLog, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("audit_logs").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count audit logs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting audit logs")
		return nil, 0, fmt.Errorf("error counting audit logs: %w", err)
	}

	sql, args, err := r.sb.Select("id", "user_id", "action", "entity_name", "object_id", "created_at").
		From("audit_logs").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list audit logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing audit logs")
		return nil, 0, fmt.Errorf("error listing audit logs: %w", err)
	}
	defer rows.Close()

	entries := []*models.AuditLog{}
	for rows.Next() {
		entry := &models.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.EntityName, &entry.ObjectID, &entry.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning audit log row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

// CreateActivityLog records a session-level user action
func (r *ActivityRepository) CreateActivityLog(ctx context.Context, entry *models.ActivityLog) {
	sql, args, err := r.sb.Insert("activity_logs").
		Columns("user_id", "action", "object_type", "object_id", "created_at").
		Values(entry.UserID, entry.Action, entry.ObjectType, entry.ObjectID, time.Now()).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building activity log query")
		return
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", entry.UserID).Str("action", entry.Action).Msg("Error writing activity log")
	}
}

// ListActivityLogsByUser retrieves one user's recent activity
func (r *ActivityRepository) ListActivityLogsByUser(ctx context.Context, userID int64, limit int) ([]*models.ActivityLog, error) {
	sql, args, err := r.sb.Select("id", "user_id", "action", "object_type", "object_id", "created_at").
		From("activity_logs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list activity logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing activity logs")
		return nil, fmt.Errorf("error listing activity logs: %w", err)
	}
	defer rows.Close()

	entries := []*models.ActivityLog{}
	for rows.Next() {
		entry := &models.ActivityLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.ObjectType, &entry.ObjectID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning activity log row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CreateNotification delivers a message to one user
func (r *ActivityRepository) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("user_id", "message", "action_link", "is_read", "created_at").
		Values(n.UserID, n.Message, n.ActionLink, false, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("userID", n.UserID).Msg("Error creating notification")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	return id, nil
}

// ListNotificationsByUser retrieves a user's notifications with pagination
func (r *ActivityRepository) ListNotificationsByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.Notification, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count notifications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	sql, args, err := r.sb.Select("id", "user_id", "message", "action_link", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing notifications")
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.ActionLink, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

// CountUnreadNotifications counts a user's unread notifications
func (r *ActivityRepository) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}

	return count, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
// The user filter keeps users from touching each other's notifications.
func (r *ActivityRepository) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error marking notification read")
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkAllNotificationsRead marks all of a user's notifications as read
func (r *ActivityRepository) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark all read query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error marking notifications read")
		return fmt.Errorf("error marking notifications read: %w", err)
	}

	return nil
}

// CreateTrashItem snapshots a deleted record as JSONB for later recovery
func (r *ActivityRepository) CreateTrashItem(ctx context.Context, t *models.Trash) (int64, error) {
	sql, args, err := r.sb.Insert("trash").
		Columns("entity_name", "object_data", "deleted_by", "deleted_at").
		Values(t.EntityName, t.ObjectData, t.DeletedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create trash query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("entity", t.EntityName).Msg("Error creating trash item")
		return 0, fmt.Errorf("error creating trash item: %w", err)
	}

	return id, nil
}

// GetTrashItemByID retrieves a trash snapshot by ID
func (r *ActivityRepository) GetTrashItemByID(ctx context.Context, id int64) (*models.Trash, error) {
	sql, args, err := r.sb.Select("id", "entity_name", "object_data", "deleted_by", "deleted_at").
		From("trash").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get trash query: %w", err)
	}

	t := &models.Trash{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.EntityName, &t.ObjectData, &t.DeletedBy, &t.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("trashID", id).Msg("Error scanning trash row")
		return nil, fmt.Errorf("error getting trash item: %w", err)
	}

	return t, nil
}

// ListTrashItems retrieves trash snapshots with pagination
func (r *ActivityRepository) ListTrashItems(ctx context.Context, offset uint64, limit int) ([]*models.Trash, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("trash").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count trash query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting trash items: %w", err)
	}

	sql, args, err := r.sb.Select("id", "entity_name", "object_data", "deleted_by", "deleted_at").
		From("trash").
		OrderBy("deleted_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list trash query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing trash items")
		return nil, 0, fmt.Errorf("error listing trash items: %w", err)
	}
	defer rows.Close()

	items := []*models.Trash{}
	for rows.Next() {
		t := &models.Trash{}
		if err := rows.Scan(&t.ID, &t.EntityName, &t.ObjectData, &t.DeletedBy, &t.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning trash row: %w", err)
		}
		items = append(items, t)
	}

	return items, total, rows.Err()
}

// DeleteTrashItem permanently removes a trash snapshot
func (r *ActivityRepository) DeleteTrashItem(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("trash").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete trash query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("trashID", id).Msg("Error deleting trash item")
		return fmt.Errorf("error deleting trash item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
