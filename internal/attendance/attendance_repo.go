package attendance

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	Attendance(ctx context.Context) ([]domain.AttendanceRecord, error)
	AttendanceByOwner(ctx context.Context, userID string) ([]domain.AttendanceRecord, error)
	FindTodayAttendance(ctx context.Context, userID, date string) (domain.AttendanceRecord, error)
	AddAttendance(ctx context.Context, rec domain.AttendanceRecord) (domain.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, rec domain.AttendanceRecord) (domain.AttendanceRecord, error)
}

var _ Repository = (*store.Store)(nil)
