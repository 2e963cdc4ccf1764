package auth

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/internal/domain/repositories"
	"github.com/osaa-analytics/unga-readout/pkg/jwt"
)

// Service handles registration, the admin approval queue and token issuance.
// New accounts start pending and cannot log in until approved.
type Service struct {
	users      repositories.UserRepository
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewService creates the auth service.
func NewService(users repositories.UserRepository, jwtManager *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{users: users, jwtManager: jwtManager, logger: logger}
}

// RegisterRequest carries a new account application.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Title    string
	Office   string
	Purpose  string
}

// TokenPair is an issued access/refresh token set.
type TokenPair struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         *entities.PublicUser `json:"user"`
}

// Register creates a pending account. Duplicate emails are rejected.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*entities.PublicUser, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists(req.Email)
	} else if !stderrors.Is(err, entities.ErrUserNotFound) {
		return nil, apperrors.ErrStoreQueryFailed("find user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	user := entities.NewUser(req.Email, string(hash), req.FullName, req.Title, req.Office, req.Purpose)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.ErrStoreQueryFailed("create user", err)
	}

	s.logger.Info("account registered, pending approval",
		zap.String("user_id", user.ID.String()),
		zap.String("office", user.Office))

	return user.ToPublic(), nil
}

// Login checks credentials and account status, records the login and issues
// a token pair. Pending and rejected accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, entities.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, apperrors.ErrStoreQueryFailed("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}
	if !user.CanLogin() {
		return nil, apperrors.ErrAccountNotApproved(string(user.Status))
	}

	user.RecordLogin()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.ErrStoreQueryFailed("update user", err)
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken()
	}
	if !user.CanLogin() {
		return nil, apperrors.ErrAccountNotApproved(string(user.Status))
	}

	return s.issueTokens(user)
}

// Me returns the public profile for an authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entities.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, entities.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound("user")
		}
		return nil, apperrors.ErrStoreQueryFailed("find user", err)
	}
	return user.ToPublic(), nil
}

// ListPending returns the admin approval queue in arrival order.
func (s *Service) ListPending(ctx context.Context) ([]*entities.PublicUser, error) {
	users, err := s.users.ListByStatus(ctx, entities.UserStatusPending)
	if err != nil {
		return nil, apperrors.ErrStoreQueryFailed("list users", err)
	}
	out := make([]*entities.PublicUser, len(users))
	for i, u := range users {
		out[i] = u.ToPublic()
	}
	return out, nil
}

// Approve moves a pending account to approved.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, approvedBy string) (*entities.PublicUser, error) {
	return s.setStatus(ctx, id, approvedBy, true)
}

// Reject marks a pending account rejected.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, rejectedBy string) (*entities.PublicUser, error) {
	return s.setStatus(ctx, id, rejectedBy, false)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, by string, approve bool) (*entities.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, entities.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound("user")
		}
		return nil, apperrors.ErrStoreQueryFailed("find user", err)
	}

	if approve {
		user.Approve(by)
	} else {
		user.Reject(by)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.ErrStoreQueryFailed("update user", err)
	}

	s.logger.Info("account status changed",
		zap.String("user_id", user.ID.String()),
		zap.String("status", string(user.Status)))

	return user.ToPublic(), nil
}

func (s *Service) issueTokens(user *entities.User) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.ToPublic(),
	}, nil
}
