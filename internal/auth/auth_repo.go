package auth

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Verify(ctx context.Context, email, plain string) (domain.User, error)
	Register(ctx context.Context, u domain.User, plain string) (domain.User, error)
	FindUserByID(ctx context.Context, id string) (domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

var _ Repository = (*store.Store)(nil)
