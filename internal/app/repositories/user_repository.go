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
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/dberrors"
	"github.com/instracore/backend/internal/pkg/logger"
)

const userColumns = "id, username, email, password, first_name, last_name, role, sub_role, " +
	"bio, phone, gender, location, country, date_of_birth, image_path, " +
	"is_active, is_temporary, is_verified, last_login_at, created_at, updated_at"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Role, &user.SubRole,
		&user.Bio, &user.Phone, &user.Gender, &user.Location, &user.Country,
		&user.DateOfBirth, &user.ImagePath,
		&user.IsActive, &user.IsTemporary, &user.IsVerified,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "password", "first_name", "last_name", "role", "sub_role",
			"bio", "phone", "gender", "location", "country", "date_of_birth", "image_path",
			"is_active", "is_temporary", "is_verified", "created_at", "updated_at").
		Values(user.Username, user.Email, user.Password, user.FirstName, user.LastName,
			user.Role, user.SubRole, user.Bio, user.Phone, user.Gender, user.Location,
			user.Country, user.DateOfBirth, user.ImagePath,
			user.IsActive, user.IsTemporary, user.IsVerified, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, apperrors.ErrUsernameExists
		}
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by username: %w", err)
	}

	return user, nil
}

// UpdateUser updates user account fields
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("sub_role", user.SubRole).
		Set("bio", user.Bio).
		Set("phone", user.Phone).
		Set("gender", user.Gender).
		Set("location", user.Location).
		Set("country", user.Country).
		Set("date_of_birth", user.DateOfBirth).
		Set("image_path", user.ImagePath).
		Set("is_active", user.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update user SQL")
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword sets a new password hash for the user
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin records the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating last login")
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// SetVerified marks the user's email as verified
func (r *UserRepository) SetVerified(ctx context.Context, userID int64, verified bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_verified", verified).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build set verified query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error setting email verified")
		return fmt.Errorf("error setting email verified: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// IsEmailVerified checks whether the user's email is verified
func (r *UserRepository) IsEmailVerified(ctx context.Context, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("is_verified").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("failed to build verification query: %w", err)
	}

	var verified bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrUserNotFound
		}
		return false, fmt.Errorf("error checking email verification: %w", err)
	}

	return verified, nil
}

// DeleteUser removes a user account
func (r *UserRepository) DeleteUser(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing delete user query")
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// CountByRole returns the number of accounts for a role
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"role": role}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count by role query: %w", err)
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error counting users by role")
		return 0, fmt.Errorf("error counting users by role: %w", err)
	}

	return count, nil
}

// RoleActivityCounts returns account counts grouped by role and active flag
func (r *UserRepository) RoleActivityCounts(ctx context.Context) (map[models.Role]map[bool]int64, error) {
	sql, args, err := r.sb.Select("role", "is_active", "COUNT(*)").
		From("users").
		GroupBy("role", "is_active").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build role activity counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying role activity counts")
		return nil, fmt.Errorf("error querying role activity counts: %w", err)
	}
	defer rows.Close()

	counts := map[models.Role]map[bool]int64{}
	for rows.Next() {
		var role models.Role
		var active bool
		var count int64
		if err := rows.Scan(&role, &active, &count); err != nil {
			return nil, fmt.Errorf("error scanning role activity count row: %w", err)
		}
		if counts[role] == nil {
			counts[role] = map[bool]int64{}
		}
		counts[role][active] = count
	}

	return counts, rows.Err()
}

// AdminExists reports whether at least one admin account exists
func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	count, err := r.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUsers retrieves users matching the filter with pagination
func (r *UserRepository) ListUsers(ctx context.Context, filter *dto.UserFilterRequest, offset uint64, limit int) ([]*models.User, int64, error) {
	base := r.sb.Select(userColumns).From("users")
	countQuery := r.sb.Select("COUNT(*)").From("users")

	if filter != nil {
		if filter.Role != nil && *filter.Role != "" {
			base = base.Where(squirrel.Eq{"role": *filter.Role})
			countQuery = countQuery.Where(squirrel.Eq{"role": *filter.Role})
		}
		if filter.SubRole != nil && *filter.SubRole != "" {
			base = base.Where(squirrel.Eq{"sub_role": *filter.SubRole})
			countQuery = countQuery.Where(squirrel.Eq{"sub_role": *filter.SubRole})
		}
		if filter.Email != nil && *filter.Email != "" {
			base = base.Where(squirrel.ILike{"email": "%" + *filter.Email + "%"})
			countQuery = countQuery.Where(squirrel.ILike{"email": "%" + *filter.Email + "%"})
		}
		if filter.Name != nil && *filter.Name != "" {
			nameCond := squirrel.Or{
				squirrel.ILike{"first_name": "%" + *filter.Name + "%"},
				squirrel.ILike{"last_name": "%" + *filter.Name + "%"},
			}
			base = base.Where(nameCond)
			countQuery = countQuery.Where(nameCond)
		}
		if filter.IsActive != nil {
			base = base.Where(squirrel.Eq{"is_active": *filter.IsActive})
			countQuery = countQuery.Where(squirrel.Eq{"is_active": *filter.IsActive})
		}
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning user row")
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// ListTeachers retrieves all active employees with the teacher or faculty sub-role
func (r *UserRepository) ListTeachers(ctx context.Context) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"role": models.RoleEmployee}).
		Where(squirrel.Eq{"sub_role": []models.SubRole{models.SubRoleTeacher, models.SubRoleFaculty}}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("first_name ASC, last_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teachers query")
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
