package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/auth"
	"github.com/familyhub/portal/internal/pkg/helpers"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// Session is a freshly issued login
type Session struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication operations
type AuthService interface {
	SignUp(ctx context.Context, form *dto.SignUpForm) (*Session, error)
	Login(ctx context.Context, form *dto.LoginForm) (*Session, error)
	Authenticate(token string) (uuid.UUID, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// SignUp creates the account, its profile and member role, then logs the user in
func (s *authServiceImpl) SignUp(ctx context.Context, form *dto.SignUpForm) (session *Session, err error) {
	defer func() { metrics.RecordForm("signup", err) }()

	email := strings.ToLower(strings.TrimSpace(form.Email))

	birthday, err := helpers.ParseOptionalDate(form.Birthday)
	if err != nil {
		return nil, apperrors.NewValidationError("Birthday must be a valid date")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	profile, err := s.userRepo.CreateAccount(ctx, &models.NewAccount{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(form.FullName),
		Birthday:     birthday,
		Role:         models.RoleMember,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", profile.ID.String()).Msg("Account created")
	return s.issue(profile.ID, email)
}

// Login verifies credentials and issues a session
func (s *authServiceImpl) Login(ctx context.Context, form *dto.LoginForm) (session *Session, err error) {
	defer func() { metrics.RecordForm("login", err) }()

	user, err := s.userRepo.GetCredentialsByEmail(ctx, strings.TrimSpace(form.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user.ID, user.Email)
}

// Authenticate returns the user behind a session token
func (s *authServiceImpl) Authenticate(token string) (uuid.UUID, error) {
	claims, err := s.jwtService.ValidateSession(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}

func (s *authServiceImpl) issue(userID uuid.UUID, email string) (*Session, error) {
	token, expiresAt, err := s.jwtService.IssueSession(userID, email)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}
