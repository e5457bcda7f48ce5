package payroll

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	Payroll(ctx context.Context) ([]domain.PayrollRecord, error)
	PayrollByOwner(ctx context.Context, userID string) ([]domain.PayrollRecord, error)
	FindPayrollByID(ctx context.Context, id string) (domain.PayrollRecord, error)
	AddPayroll(ctx context.Context, rec domain.PayrollRecord) (domain.PayrollRecord, error)
	UpdatePayroll(ctx context.Context, rec domain.PayrollRecord) (domain.PayrollRecord, error)
	FindUserByID(ctx context.Context, id string) (domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

var _ Repository = (*store.Store)(nil)
