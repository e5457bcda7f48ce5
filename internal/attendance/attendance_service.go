package attendance

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	attendanceerrors "github.com/krushit1307/HRMS/internal/attendance/errors"
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, actor domain.Actor) (domain.AttendanceRecord, error)
	CheckOut(ctx context.Context, actor domain.Actor) (domain.AttendanceRecord, error)
	Today(ctx context.Context, actor domain.Actor) (TodayResponse, error)
	List(ctx context.Context, actor domain.Actor, filter ListAttendanceFilter) ([]domain.AttendanceRecord, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewService uses now as the wall clock; nil means time.Now.
func NewService(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now, logger: l}
}

func (s *service) CheckIn(ctx context.Context, actor domain.Actor) (domain.AttendanceRecord, error) {
	now := s.now()
	date := now.Format(domain.DateLayout)

	_, err := s.repo.FindTodayAttendance(ctx, actor.UserID, date)
	if err == nil {
		return domain.AttendanceRecord{}, attendanceerrors.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.AttendanceRecord{}, mapStoreError(err)
	}

	status := domain.AttendancePresent
	if domain.IsLate(now) {
		status = domain.AttendanceLate
	}

	rec, err := s.repo.AddAttendance(ctx, domain.AttendanceRecord{
		ID:      uuid.NewString(),
		UserID:  actor.UserID,
		Date:    date,
		CheckIn: domain.FormatClock(now),
		Status:  status,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateAttendance) {
			return domain.AttendanceRecord{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("check in persist failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return domain.AttendanceRecord{}, mapStoreError(err)
	}

	s.logger.Info("check in success",
		zap.String("user_id", actor.UserID),
		zap.String("date", date),
		zap.String("status", string(status)),
	)
	return rec, nil
}

func (s *service) CheckOut(ctx context.Context, actor domain.Actor) (domain.AttendanceRecord, error) {
	now := s.now()
	date := now.Format(domain.DateLayout)

	rec, err := s.repo.FindTodayAttendance(ctx, actor.UserID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AttendanceRecord{}, attendanceerrors.ErrNotCheckedIn
		}
		return domain.AttendanceRecord{}, mapStoreError(err)
	}
	if rec.CheckedOut() {
		return domain.AttendanceRecord{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	rec.CheckOut = domain.FormatClock(now)
	updated, err := s.repo.UpdateAttendance(ctx, rec)
	if err != nil {
		if errors.Is(err, domain.ErrClockRange) {
			return domain.AttendanceRecord{}, attendanceerrors.ErrCheckOutTooEarly
		}
		s.logger.Error("check out persist failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return domain.AttendanceRecord{}, mapStoreError(err)
	}

	s.logger.Info("check out success",
		zap.String("user_id", actor.UserID),
		zap.String("date", date),
		zap.String("work_hours", updated.WorkHours),
	)
	return updated, nil
}

func (s *service) Today(ctx context.Context, actor domain.Actor) (TodayResponse, error) {
	date := s.now().Format(domain.DateLayout)
	resp := TodayResponse{Date: date}

	rec, err := s.repo.FindTodayAttendance(ctx, actor.UserID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return resp, nil
		}
		return TodayResponse{}, mapStoreError(err)
	}

	resp.CheckedIn = true
	resp.CheckedOut = rec.CheckedOut()
	resp.Record = &rec
	return resp, nil
}

// List returns the caller's records, or everyone's for admin and hr, newest date first.
func (s *service) List(ctx context.Context, actor domain.Actor, filter ListAttendanceFilter) ([]domain.AttendanceRecord, error) {
	if filter.Date != "" {
		if _, err := time.Parse(domain.DateLayout, filter.Date); err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
	}
	var status domain.AttendanceStatus
	if filter.Status != "" {
		var ok bool
		if status, ok = parseStatus(filter.Status); !ok {
			return nil, attendanceerrors.ErrInvalidStatus
		}
	}

	owner := filter.UserID
	if !actor.Role.IsPrivileged() {
		if owner != "" && owner != actor.UserID {
			return nil, attendanceerrors.ErrForbidden
		}
		owner = actor.UserID
	}

	var (
		records []domain.AttendanceRecord
		err     error
	)
	if owner != "" {
		records, err = s.repo.AttendanceByOwner(ctx, owner)
	} else {
		records, err = s.repo.Attendance(ctx)
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	out := make([]domain.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b domain.AttendanceRecord) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out, nil
}

func parseStatus(v string) (domain.AttendanceStatus, bool) {
	switch st := domain.AttendanceStatus(strings.ToLower(strings.TrimSpace(v))); st {
	case domain.AttendancePresent, domain.AttendanceLate, domain.AttendanceAbsent, domain.AttendanceHalfDay, domain.AttendanceLeave:
		return st, true
	}
	return "", false
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrInvalidRecord):
		return apperror.Wrap(err, apperror.CodeInvalidInput, "attendance record is invalid", apperror.ErrInvalidInput.HTTPStatus)
	case errors.Is(err, store.ErrCorruptStore):
		return apperror.Wrap(err, apperror.ErrStoreUnavailable.Code, apperror.ErrStoreUnavailable.Message, apperror.ErrStoreUnavailable.HTTPStatus)
	}
	return err
}
