package dashboard

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

type Repository interface {
	RoleCounts(ctx context.Context) (map[domain.Role]int, error)
	CountAttendance(ctx context.Context, date string, status domain.AttendanceStatus) (int, error)
	OnLeaveCount(ctx context.Context, date string) (int, error)
	AttendanceTotals(ctx context.Context, userID string) (store.AttendanceTotals, error)
	LeavesByStatus(ctx context.Context, status domain.LeaveStatus) ([]domain.LeaveRequest, error)
	LeavesByOwner(ctx context.Context, userID string) ([]domain.LeaveRequest, error)
	FindTodayAttendance(ctx context.Context, userID, date string) (domain.AttendanceRecord, error)
	ApprovedLeaveDays(ctx context.Context, userID string) (int, error)
	LeaveBalances(ctx context.Context, userID string) ([]store.LeaveBalance, error)
}

var _ Repository = (*store.Store)(nil)
