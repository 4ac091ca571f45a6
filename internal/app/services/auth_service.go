package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/auth"
	"github.com/instracore/backend/internal/pkg/email"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = 1 * time.Hour
)

// AuthService handles setup, registration, login and token lifecycle
type AuthService struct {
	userRepo     *repositories.UserRepository
	tokenRepo    *repositories.TokenRepository
	activityRepo *repositories.ActivityRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger

	// initialized is computed once at startup and flipped when the first
	// admin is created, so setup checks never hit the database per request.
	initialized atomic.Bool
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	activityRepo *repositories.ActivityRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		activityRepo: activityRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// Initialize computes the system-initialization flag from the database.
// Called once during startup, before the server accepts traffic.
func (s *AuthService) Initialize(ctx context.Context) error {
	exists, err := s.userRepo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	s.initialized.Store(exists)
	return nil
}

// IsInitialized reports whether an admin account exists
func (s *AuthService) IsInitialized() bool {
	return s.initialized.Load()
}

// Setup creates the first admin account. It fails once the system is
// initialized; later admin accounts go through the regular user management.
func (s *AuthService) Setup(ctx context.Context, req *dto.SetupRequest) (*dto.AuthResponse, error) {
	if s.initialized.Load() {
		return nil, apperrors.ErrAlreadyInitialized
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       models.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	s.initialized.Store(true)
	s.logger.Info().Int64("userID", userID).Msg("System initialized with first admin account")

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     "setup",
		EntityName: "users",
		ObjectID:   fmt.Sprintf("%d", userID),
	})

	return s.buildAuthResponse(ctx, user)
}

// Register creates a self-service account. Only the student and candidate
// roles may self-register; everything else is created by an admin.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.RoleStudent && req.Role != models.RoleCandidate {
		return nil, apperrors.NewForbiddenError("only students and candidates can self-register")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if err := s.sendVerification(ctx, user); err != nil {
		// Registration succeeded; the user can request a new token later.
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send verification email")
	}

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID: userID,
		Action: "register",
	})

	return s.buildAuthResponse(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID: user.ID,
		Action: "login",
	})

	return s.buildAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("token lookup error: %w", err)
	}

	if expiryDate.Before(time.Now()) {
		_ = s.tokenRepo.RevokeRefreshToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup error: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation: the presented token is spent whether or not issuing succeeds.
	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes all of a user's refresh tokens
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID: userID,
		Action: "logout",
	})

	return nil
}

// VerifyEmail confirms an email verification token and marks the user verified
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, expiryDate, err := s.tokenRepo.GetVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if expiryDate.Before(time.Now()) {
		return apperrors.ErrInvalidEmailToken
	}

	if err := s.userRepo.SetVerified(ctx, userID, true); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	if err := s.tokenRepo.DeleteVerificationTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to clean up verification tokens")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err == nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send welcome email")
		}
	}

	return nil
}

// ResendVerification issues a fresh verification token for an unverified user
func (s *AuthService) ResendVerification(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	return s.sendVerification(ctx, user)
}

// ForgotPassword starts a password reset flow. It succeeds silently for
// unknown emails so the endpoint does not leak which addresses exist.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	token, err := email.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.tokenRepo.CreatePasswordResetToken(ctx, user.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.FirstName, token); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// ResetPassword completes a password reset flow using a one-time token
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	userID, expiryDate, isUsed, err := s.tokenRepo.GetPasswordResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	if isUsed {
		return apperrors.ErrPasswordResetTokenUsed
	}

	if expiryDate.Before(time.Now()) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	if err := s.tokenRepo.MarkPasswordResetTokenUsed(ctx, req.Token); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to mark reset token used")
	}

	// Force re-login everywhere after a reset.
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after reset")
	}

	return nil
}

// ChangePassword changes the current user's password after checking the old one
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID: userID,
		Action: "change_password",
	})

	return nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *models.User) error {
	token, err := email.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err := s.tokenRepo.CreateVerificationToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(user.Email, user.FirstName, token)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	if err := s.tokenRepo.CreateRefreshToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

func (s *AuthService) buildAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *tokens,
		User:  dto.FromUser(user),
	}, nil
}
