package leave

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	Leaves(ctx context.Context) ([]domain.LeaveRequest, error)
	LeavesByOwner(ctx context.Context, userID string) ([]domain.LeaveRequest, error)
	LeavesByStatus(ctx context.Context, status domain.LeaveStatus) ([]domain.LeaveRequest, error)
	FindLeaveByID(ctx context.Context, id string) (domain.LeaveRequest, error)
	AddLeave(ctx context.Context, l domain.LeaveRequest) (domain.LeaveRequest, error)
	UpdateLeave(ctx context.Context, l domain.LeaveRequest) (domain.LeaveRequest, error)
	UserDisplayName(ctx context.Context, userID string) (string, error)
}

var _ Repository = (*store.Store)(nil)
