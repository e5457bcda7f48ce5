package user

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Users(ctx context.Context) ([]domain.User, error)
	FindUserByID(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)
	Register(ctx context.Context, u domain.User, plain string) (domain.User, error)
	SetPassword(ctx context.Context, userID, plain string) error
	ChangePassword(ctx context.Context, userID, current, next string) error
}

var _ Repository = (*store.Store)(nil)
