package leave

import (
	"context"
	"errors"
	"strings"

	"github.com/krushit1307/HRMS/internal/domain"
	leaveerrors "github.com/krushit1307/HRMS/internal/leave/errors"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actor domain.Actor, req ApplyLeaveRequest) (domain.LeaveRequest, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (domain.LeaveRequest, error)
	Reject(ctx context.Context, actor domain.Actor, id string) (domain.LeaveRequest, error)
	List(ctx context.Context, actor domain.Actor, filter ListLeavesFilter) ([]domain.LeaveRequest, error)
	Pending(ctx context.Context, actor domain.Actor) ([]domain.LeaveRequest, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Apply(ctx context.Context, actor domain.Actor, req ApplyLeaveRequest) (domain.LeaveRequest, error) {
	s.logger.Debug("apply leave requested",
		zap.String("user_id", actor.UserID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	leaveType, ok := parseLeaveType(req.Type)
	if !ok {
		return domain.LeaveRequest{}, leaveerrors.ErrInvalidLeaveType
	}

	days, err := domain.LeaveDays(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.Error(err))
		if errors.Is(err, domain.ErrDateRange) {
			return domain.LeaveRequest{}, leaveerrors.ErrInvalidDateRange
		}
		return domain.LeaveRequest{}, leaveerrors.ErrInvalidDateFormat
	}

	name, err := s.repo.UserDisplayName(ctx, actor.UserID)
	if err != nil {
		return domain.LeaveRequest{}, mapStoreError(err)
	}

	l, err := s.repo.AddLeave(ctx, domain.LeaveRequest{
		ID:           uuid.NewString(),
		UserID:       actor.UserID,
		EmployeeName: name,
		Type:         leaveType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Days:         days,
		Status:       domain.LeavePending,
		Reason:       strings.TrimSpace(req.Reason),
	})
	if err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return domain.LeaveRequest{}, mapStoreError(err)
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID),
		zap.String("user_id", l.UserID),
		zap.Int("days", l.Days),
	)
	return l, nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (domain.LeaveRequest, error) {
	return s.transitionLeaveStatus(ctx, actor, id, domain.LeaveApproved)
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string) (domain.LeaveRequest, error) {
	return s.transitionLeaveStatus(ctx, actor, id, domain.LeaveRejected)
}

func isAllowedStatusTransition(current, target domain.LeaveStatus) bool {
	if current != domain.LeavePending {
		return false
	}
	return target == domain.LeaveApproved || target == domain.LeaveRejected
}

func (s *service) transitionLeaveStatus(ctx context.Context, actor domain.Actor, id string, target domain.LeaveStatus) (domain.LeaveRequest, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", string(target)),
	)

	if !actor.Role.IsPrivileged() {
		return domain.LeaveRequest{}, apperror.ErrForbidden
	}

	l, err := s.repo.FindLeaveByID(ctx, id)
	if err != nil {
		return domain.LeaveRequest{}, mapStoreError(err)
	}
	if !isAllowedStatusTransition(l.Status, target) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", string(l.Status)),
			zap.String("to_status", string(target)),
		)
		return domain.LeaveRequest{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = target
	l, err = s.repo.UpdateLeave(ctx, l)
	if err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return domain.LeaveRequest{}, mapStoreError(err)
	}

	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", string(target)),
		zap.String("actor_id", actor.UserID),
	)
	return l, nil
}

// List returns the caller's own requests, or everyone's for admin and hr.
// filter.UserID narrows a privileged listing to one user.
func (s *service) List(ctx context.Context, actor domain.Actor, filter ListLeavesFilter) ([]domain.LeaveRequest, error) {
	var status domain.LeaveStatus
	if filter.Status != "" {
		var ok bool
		if status, ok = parseLeaveStatus(filter.Status); !ok {
			return nil, leaveerrors.ErrInvalidStatus
		}
	}

	owner := filter.UserID
	if !actor.Role.IsPrivileged() {
		if owner != "" && owner != actor.UserID {
			return nil, leaveerrors.ErrForbidden
		}
		owner = actor.UserID
	}

	var (
		leaves []domain.LeaveRequest
		err    error
	)
	switch {
	case owner != "":
		leaves, err = s.repo.LeavesByOwner(ctx, owner)
	case status != "":
		leaves, err = s.repo.LeavesByStatus(ctx, status)
	default:
		leaves, err = s.repo.Leaves(ctx)
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	if owner != "" && status != "" {
		out := leaves[:0:0]
		for _, l := range leaves {
			if l.Status == status {
				out = append(out, l)
			}
		}
		leaves = out
	}
	return leaves, nil
}

func (s *service) Pending(ctx context.Context, actor domain.Actor) ([]domain.LeaveRequest, error) {
	return s.List(ctx, actor, ListLeavesFilter{Status: string(domain.LeavePending)})
}

func parseLeaveType(v string) (domain.LeaveType, bool) {
	switch t := domain.LeaveType(strings.ToLower(strings.TrimSpace(v))); t {
	case domain.LeavePaid, domain.LeaveSick, domain.LeaveUnpaid:
		return t, true
	}
	return "", false
}

func parseLeaveStatus(v string) (domain.LeaveStatus, bool) {
	switch st := domain.LeaveStatus(strings.ToLower(strings.TrimSpace(v))); st {
	case domain.LeavePending, domain.LeaveApproved, domain.LeaveRejected:
		return st, true
	}
	return "", false
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return leaveerrors.ErrLeaveNotFound
	case errors.Is(err, store.ErrInvalidRecord):
		return apperror.Wrap(err, apperror.CodeInvalidInput, "leave request is invalid", apperror.ErrInvalidInput.HTTPStatus)
	case errors.Is(err, store.ErrCorruptStore):
		return apperror.Wrap(err, apperror.ErrStoreUnavailable.Code, apperror.ErrStoreUnavailable.Message, apperror.ErrStoreUnavailable.HTTPStatus)
	}
	return err
}
