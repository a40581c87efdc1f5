package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
	"adminsuite/internal/domain/users"
	"adminsuite/pkg/logger"
)

// Registrar creates the account behind a self-service sign-up.
type Registrar interface {
	Create(ctx context.Context, in users.CreateInput) (*users.User, error)
}

// Service authenticates users against the directory.
type Service struct {
	userRepo   users.Repository
	jwtService *JWTService
	registrar  Registrar
	now        func() time.Time
}

// NewService creates a new auth service.
func NewService(userRepo users.Repository, jwtService *JWTService) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// WithRegistrar enables Register. Without one, sign-up is forbidden.
func (s *Service) WithRegistrar(r Registrar) *Service {
	s.registrar = r
	return s
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	email := users.NormalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperror.NewForbidden("account is disabled")
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"role", user.Role)
	return session, nil
}

// Register creates a USER account and signs it in. The role is never taken
// from the caller.
func (s *Service) Register(ctx context.Context, r Registration) (*Session, error) {
	if s.registrar == nil {
		return nil, apperror.NewForbidden("registration is disabled")
	}

	user, err := s.registrar.Create(ctx, users.CreateInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
		Role:      users.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "user registered", "user_id", user.ID)
	return session, nil
}

// Logout ends the caller's session. Access tokens are stateless and stay
// valid until they expire; the client drops its copy.
func (s *Service) Logout(ctx context.Context) {
	logger.Info(ctx, "user logged out", "user_id", appctx.GetUserID(ctx))
}

// issue signs an access token for user and stamps the login time.
func (s *Service) issue(ctx context.Context, user *users.User) (*Session, error) {
	access, expiresAt, err := s.jwtService.GenerateAccessToken(
		user.ID.String(), user.Email, string(user.Role), permissionsOf(user))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	at := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, at); err != nil {
		logger.Warn(ctx, "failed to record login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &at
	}

	return &Session{
		Token: Token{AccessToken: access, ExpiresAt: expiresAt, TokenType: "Bearer"},
		User:  user,
	}, nil
}

// HashPassword returns a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
