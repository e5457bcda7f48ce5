package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "github.com/krushit1307/HRMS/internal/auth/errors"
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/shared/contextutil"
	"github.com/krushit1307/HRMS/internal/shared/token"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

// Tokens is satisfied by *token.Manager.
type Tokens interface {
	Issue(userID, role string, kind token.Kind) (string, error)
	Parse(tokenString string, kind token.Kind) (token.Claims, error)
}

type service struct {
	repo   Repository
	tokens Tokens
	logger *zap.Logger
}

func NewService(repo Repository, tokens Tokens, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	log := s.logger.With(contextutil.ExtractMetadata(ctx).Fields()...)

	user, err := s.repo.Verify(ctx, strings.TrimSpace(email), password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			log.Info("login rejected", zap.String("email", email))
			return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return "", "", AuthResponse{}, mapStoreError(err)
	}

	access, refresh, err := s.issuePair(user)
	if err != nil {
		log.Error("issue tokens failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", "", AuthResponse{}, err
	}

	log.Info("login success", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return access, refresh, toAuthResponse(user), nil
}

// RefreshToken rotates both tokens. The role is read again from the store so a
// changed role takes effect on the next refresh.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return "", "", AuthResponse{}, autherrors.ErrTokenExpired
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrUserNotFound
		}
		return "", "", AuthResponse{}, mapStoreError(err)
	}

	access, refresh, err := s.issuePair(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return access, refresh, toAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, mapStoreError(err)
	}
	return toAuthResponse(u), nil
}

// Register is self sign-up. New accounts always get the employee role and join today.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	log := s.logger.With(contextutil.ExtractMetadata(ctx).Fields()...)

	employeeID := strings.TrimSpace(req.EmployeeID)
	users, err := s.repo.Users(ctx)
	if err != nil {
		return AuthResponse{}, mapStoreError(err)
	}
	if domain.EmployeeIDTaken(users, employeeID, "") {
		return AuthResponse{}, autherrors.ErrEmployeeIDTaken
	}

	u, err := s.repo.Register(ctx, domain.User{
		ID:         uuid.NewString(),
		Email:      strings.TrimSpace(req.Email),
		Name:       strings.TrimSpace(req.Name),
		Role:       domain.RoleEmployee,
		EmployeeID: employeeID,
		JoinDate:   time.Now().Format(domain.DateLayout),
	}, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		log.Warn("register failed", zap.Error(err))
		return AuthResponse{}, mapStoreError(err)
	}

	log.Info("register success", zap.String("user_id", u.ID), zap.String("employee_id", u.EmployeeID))
	return toAuthResponse(u), nil
}

func (s *service) issuePair(u domain.User) (string, string, error) {
	access, err := s.tokens.Issue(u.ID, string(u.Role), token.KindAccess)
	if err != nil {
		return "", "", apperror.Wrap(err, autherrors.ErrTokenGenerationFailed.Code, autherrors.ErrTokenGenerationFailed.Message, autherrors.ErrTokenGenerationFailed.HTTPStatus)
	}
	refresh, err := s.tokens.Issue(u.ID, string(u.Role), token.KindRefresh)
	if err != nil {
		return "", "", apperror.Wrap(err, autherrors.ErrTokenGenerationFailed.Code, autherrors.ErrTokenGenerationFailed.Message, autherrors.ErrTokenGenerationFailed.HTTPStatus)
	}
	return access, refresh, nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrInvalidRecord):
		return apperror.Wrap(err, autherrors.ErrInvalidRegistration.Code, autherrors.ErrInvalidRegistration.Message, autherrors.ErrInvalidRegistration.HTTPStatus)
	case errors.Is(err, store.ErrCorruptStore):
		return apperror.Wrap(err, apperror.ErrStoreUnavailable.Code, apperror.ErrStoreUnavailable.Message, apperror.ErrStoreUnavailable.HTTPStatus)
	}
	return err
}
