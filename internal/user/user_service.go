package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/shared/contextutil"
	"github.com/krushit1307/HRMS/internal/store"
	usererrors "github.com/krushit1307/HRMS/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, actor domain.Actor, filter ListUsersFilter) ([]domain.User, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (domain.User, error)
	Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, id string, req UpdateUserRequest) (domain.User, error)
	ChangePassword(ctx context.Context, actor domain.Actor, id string, req ChangePasswordRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return s.logger.With(contextutil.ExtractMetadata(ctx).Fields()...)
}

// GetAll lists the directory for admin and hr. Search matches name, email or department.
func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListUsersFilter) ([]domain.User, error) {
	if !actor.Role.IsPrivileged() {
		return nil, apperror.ErrForbidden
	}

	var role domain.Role
	if filter.Role != "" {
		var ok bool
		if role, ok = domain.ParseRole(filter.Role); !ok {
			return nil, usererrors.ErrInvalidRole
		}
	}

	users, err := s.repo.Users(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if role != "" && u.Role != role {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(strings.ToLower(u.Department), q) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (domain.User, error) {
	if !actor.CanAccess(id) {
		return domain.User{}, usererrors.ErrForbidden
	}
	u, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapStoreError(err)
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (domain.User, error) {
	log := s.log(ctx)
	log.Debug("create user requested", zap.String("email", req.Email), zap.String("role", req.Role))

	if !actor.Role.IsPrivileged() {
		return domain.User{}, apperror.ErrForbidden
	}

	role := domain.RoleEmployee
	if req.Role != "" {
		var ok bool
		if role, ok = domain.ParseRole(req.Role); !ok {
			return domain.User{}, usererrors.ErrInvalidRole
		}
	}
	if role != domain.RoleEmployee && actor.Role != domain.RoleAdmin {
		return domain.User{}, usererrors.ErrRoleNotAssignable
	}

	joinDate := strings.TrimSpace(req.JoinDate)
	if joinDate == "" {
		joinDate = time.Now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, joinDate); err != nil {
		return domain.User{}, usererrors.ErrInvalidJoinDate
	}

	users, err := s.repo.Users(ctx)
	if err != nil {
		return domain.User{}, mapStoreError(err)
	}
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		employeeID = domain.NextEmployeeID(users)
	} else if domain.EmployeeIDTaken(users, employeeID, "") {
		return domain.User{}, usererrors.ErrEmployeeIDTaken
	}

	password := req.Password
	if password == "" {
		password = DefaultPassword
	}

	u, err := s.repo.Register(ctx, domain.User{
		ID:         uuid.NewString(),
		Email:      strings.TrimSpace(req.Email),
		Name:       strings.TrimSpace(req.Name),
		Role:       role,
		EmployeeID: employeeID,
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		JoinDate:   joinDate,
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
	}, password)
	if err != nil {
		log.Warn("create user failed", zap.Error(err))
		return domain.User{}, mapStoreError(err)
	}

	log.Info("create user success",
		zap.String("created_user_id", u.ID),
		zap.String("employee_id", u.EmployeeID),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

// UpdateProfile applies req to user id. Anyone with access may change name, phone,
// address and avatar; department, position and join date need admin or hr; role,
// email and employee id need admin. A restricted field sent with its current value
// is accepted.
func (s *service) UpdateProfile(ctx context.Context, actor domain.Actor, id string, req UpdateUserRequest) (domain.User, error) {
	if !actor.CanAccess(id) {
		return domain.User{}, usererrors.ErrForbidden
	}

	u, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapStoreError(err)
	}

	isAdmin := actor.Role == domain.RoleAdmin
	privileged := actor.Role.IsPrivileged()

	set := func(dst *string, v *string, allowed bool) bool {
		if v == nil {
			return true
		}
		next := strings.TrimSpace(*v)
		if next == *dst {
			return true
		}
		if !allowed {
			return false
		}
		*dst = next
		return true
	}

	ok := set(&u.Name, req.Name, true) &&
		set(&u.Phone, req.Phone, true) &&
		set(&u.Address, req.Address, true) &&
		set(&u.Avatar, req.Avatar, true) &&
		set(&u.Department, req.Department, privileged) &&
		set(&u.Position, req.Position, privileged) &&
		set(&u.JoinDate, req.JoinDate, privileged) &&
		set(&u.Email, req.Email, isAdmin) &&
		set(&u.EmployeeID, req.EmployeeID, isAdmin)
	if !ok {
		return domain.User{}, usererrors.ErrFieldsNotEditable
	}

	if req.Role != nil {
		role, valid := domain.ParseRole(*req.Role)
		if !valid {
			return domain.User{}, usererrors.ErrInvalidRole
		}
		if role != u.Role {
			if !isAdmin {
				return domain.User{}, usererrors.ErrFieldsNotEditable
			}
			u.Role = role
		}
	}

	if u.JoinDate != "" {
		if _, err := time.Parse(domain.DateLayout, u.JoinDate); err != nil {
			return domain.User{}, usererrors.ErrInvalidJoinDate
		}
	}
	if req.EmployeeID != nil {
		users, err := s.repo.Users(ctx)
		if err != nil {
			return domain.User{}, mapStoreError(err)
		}
		if domain.EmployeeIDTaken(users, u.EmployeeID, u.ID) {
			return domain.User{}, usererrors.ErrEmployeeIDTaken
		}
	}

	updated, err := s.repo.UpdateUser(ctx, u)
	if err != nil {
		return domain.User{}, mapStoreError(err)
	}
	s.log(ctx).Info("update user success", zap.String("target_user_id", id))
	return updated, nil
}

// ChangePassword needs the current password when users change their own. Admins may
// reset anyone else's without it.
func (s *service) ChangePassword(ctx context.Context, actor domain.Actor, id string, req ChangePasswordRequest) error {
	var err error
	switch {
	case actor.UserID == id:
		err = s.repo.ChangePassword(ctx, id, req.CurrentPassword, req.NewPassword)
	case actor.Role == domain.RoleAdmin:
		err = s.repo.SetPassword(ctx, id, req.NewPassword)
	default:
		return usererrors.ErrForbidden
	}
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			return usererrors.ErrWrongPassword
		}
		return mapStoreError(err)
	}

	s.log(ctx).Info("password changed", zap.String("target_user_id", id), zap.Bool("reset", actor.UserID != id))
	return nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return usererrors.ErrUserNotFound
	case errors.Is(err, store.ErrDuplicateEmail):
		return usererrors.ErrUserAlreadyExists
	case errors.Is(err, store.ErrInvalidRecord):
		return apperror.Wrap(err, usererrors.ErrInvalidUser.Code, usererrors.ErrInvalidUser.Message, usererrors.ErrInvalidUser.HTTPStatus)
	case errors.Is(err, store.ErrCorruptStore):
		return apperror.Wrap(err, apperror.ErrStoreUnavailable.Code, apperror.ErrStoreUnavailable.Message, apperror.ErrStoreUnavailable.HTTPStatus)
	}
	return err
}
