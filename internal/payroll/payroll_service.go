package payroll

import (
	"context"
	"errors"
	"strings"

	"github.com/krushit1307/HRMS/internal/domain"
	payrollerrors "github.com/krushit1307/HRMS/internal/payroll/errors"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreatePayrollRequest) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	Payslip(ctx context.Context, actor domain.Actor, id string) ([]byte, PayrollResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, logger: l}
}

var monthTitle = cases.Title(language.English)

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreatePayrollRequest) (PayrollResponse, error) {
	s.logger.Debug("create payroll requested",
		zap.String("actor_id", actor.UserID),
		zap.String("user_id", req.UserID),
		zap.String("month", req.Month),
		zap.Int("year", req.Year),
	)

	if !actor.Role.IsPrivileged() {
		return PayrollResponse{}, apperror.ErrForbidden
	}

	month := monthTitle.String(strings.TrimSpace(req.Month))
	if !domain.IsMonth(month) {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	if req.BasicSalary < 0 || req.Allowances < 0 || req.Deductions < 0 {
		return PayrollResponse{}, payrollerrors.ErrInvalidAmount
	}

	target, err := s.repo.FindUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, mapStoreError(err)
	}
	if target.Role != domain.RoleEmployee {
		return PayrollResponse{}, payrollerrors.ErrNotAnEmployee
	}

	existing, err := s.repo.PayrollByOwner(ctx, target.ID)
	if err != nil {
		return PayrollResponse{}, mapStoreError(err)
	}
	for _, p := range existing {
		if p.Month == month && p.Year == req.Year {
			s.logger.Warn("create payroll duplicate period",
				zap.String("user_id", target.ID),
				zap.String("month", month),
				zap.Int("year", req.Year),
			)
			return PayrollResponse{}, payrollerrors.ErrPayrollAlreadyExists
		}
	}

	rec, err := s.repo.AddPayroll(ctx, domain.PayrollRecord{
		ID:          uuid.NewString(),
		UserID:      target.ID,
		Month:       month,
		Year:        req.Year,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Status:      domain.PayrollPending,
	})
	if err != nil {
		s.logger.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, mapStoreError(err)
	}

	s.logger.Info("create payroll success",
		zap.String("payroll_id", rec.ID),
		zap.String("user_id", rec.UserID),
		zap.Float64("net_salary", rec.NetSalary),
	)
	return PayrollResponse{PayrollRecord: rec, EmployeeName: target.Name}, nil
}

func isAllowedStatusTransition(current, target domain.PayrollStatus) bool {
	return current == domain.PayrollPending && target == domain.PayrollPaid
}

func (s *service) MarkAsPaid(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	if !actor.Role.IsPrivileged() {
		return PayrollResponse{}, apperror.ErrForbidden
	}

	rec, err := s.repo.FindPayrollByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapStoreError(err)
	}
	if !isAllowedStatusTransition(rec.Status, domain.PayrollPaid) {
		return PayrollResponse{}, payrollerrors.ErrAlreadyPaid
	}

	rec.Status = domain.PayrollPaid
	rec, err = s.repo.UpdatePayroll(ctx, rec)
	if err != nil {
		s.logger.Error("mark payroll paid persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapStoreError(err)
	}

	s.logger.Info("mark payroll paid success",
		zap.String("payroll_id", id),
		zap.String("actor_id", actor.UserID),
	)
	return s.withName(ctx, rec)
}

// GetAll returns the caller's records, or everyone's for admin and hr.
func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter GetPayrollsFilterRequest) ([]PayrollResponse, error) {
	var month string
	if filter.Month != "" {
		month = monthTitle.String(strings.TrimSpace(filter.Month))
		if !domain.IsMonth(month) {
			return nil, payrollerrors.ErrInvalidMonth
		}
	}
	var status domain.PayrollStatus
	if filter.Status != "" {
		status = domain.PayrollStatus(strings.ToLower(strings.TrimSpace(filter.Status)))
		if status != domain.PayrollPending && status != domain.PayrollPaid {
			return nil, payrollerrors.ErrInvalidStatus
		}
	}

	owner := filter.UserID
	if !actor.Role.IsPrivileged() {
		if owner != "" && owner != actor.UserID {
			return nil, payrollerrors.ErrForbidden
		}
		owner = actor.UserID
	}

	var (
		records []domain.PayrollRecord
		err     error
	)
	if owner != "" {
		records, err = s.repo.PayrollByOwner(ctx, owner)
	} else {
		records, err = s.repo.Payroll(ctx)
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	users, err := s.repo.Users(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	out := make([]PayrollResponse, 0, len(records))
	for _, r := range records {
		if month != "" && r.Month != month {
			continue
		}
		if filter.Year != 0 && r.Year != filter.Year {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		name, ok := names[r.UserID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, PayrollResponse{PayrollRecord: r, EmployeeName: name})
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	rec, err := s.repo.FindPayrollByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapStoreError(err)
	}
	if !actor.CanAccess(rec.UserID) {
		return PayrollResponse{}, payrollerrors.ErrForbidden
	}
	return s.withName(ctx, rec)
}

func (s *service) Payslip(ctx context.Context, actor domain.Actor, id string) ([]byte, PayrollResponse, error) {
	resp, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, PayrollResponse{}, err
	}
	return renderPayslipPDF(payslipLines(resp)), resp, nil
}

func (s *service) withName(ctx context.Context, rec domain.PayrollRecord) (PayrollResponse, error) {
	u, err := s.repo.FindUserByID(ctx, rec.UserID)
	switch {
	case err == nil:
		return PayrollResponse{PayrollRecord: rec, EmployeeName: u.Name}, nil
	case errors.Is(err, store.ErrNotFound):
		return PayrollResponse{PayrollRecord: rec, EmployeeName: "Unknown"}, nil
	}
	return PayrollResponse{}, mapStoreError(err)
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return payrollerrors.ErrPayrollNotFound
	case errors.Is(err, store.ErrInvalidRecord):
		return apperror.Wrap(err, apperror.CodeInvalidInput, "payroll record is invalid", apperror.ErrInvalidInput.HTTPStatus)
	case errors.Is(err, store.ErrCorruptStore):
		return apperror.Wrap(err, apperror.ErrStoreUnavailable.Code, apperror.ErrStoreUnavailable.Message, apperror.ErrStoreUnavailable.HTTPStatus)
	}
	return err
}
