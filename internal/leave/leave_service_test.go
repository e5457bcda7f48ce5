package leave_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/kvstore"
	"github.com/krushit1307/HRMS/internal/leave"
	leaveerrors "github.com/krushit1307/HRMS/internal/leave/errors"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	admin    = domain.Actor{UserID: "1", Role: domain.RoleAdmin}
	employee = domain.Actor{UserID: "2", Role: domain.RoleEmployee}
)

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(kvstore.NewMemory(), store.WithPasswordCost(bcrypt.MinCost), store.WithLogger(zap.NewNop()))
	require.NoError(t, s.InitializeIfAbsent(context.Background()))
	return s
}

// brokenRepo fails every call that reaches the embedded nil Repository except the overridden ones.
type brokenRepo struct {
	leave.Repository
	err error
}

func (b *brokenRepo) FindLeaveByID(ctx context.Context, id string) (domain.LeaveRequest, error) {
	return domain.LeaveRequest{}, b.err
}

func (b *brokenRepo) LeavesByOwner(ctx context.Context, userID string) ([]domain.LeaveRequest, error) {
	return nil, b.err
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("success derives days and employee name", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())

		got, err := svc.Apply(ctx, employee, leave.ApplyLeaveRequest{
			Type:      "Sick",
			StartDate: "2025-02-27",
			EndDate:   "2025-03-02",
			Reason:    "  flu ",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "2", got.UserID)
		assert.Equal(t, "Sarah Chen", got.EmployeeName)
		assert.Equal(t, domain.LeaveSick, got.Type)
		assert.Equal(t, 4, got.Days)
		assert.Equal(t, domain.LeavePending, got.Status)
		assert.Equal(t, "flu", got.Reason)
	})

	t.Run("negative invalid type", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())
		_, err := svc.Apply(ctx, employee, leave.ApplyLeaveRequest{Type: "ANNUAL", StartDate: "2025-02-01", EndDate: "2025-02-02"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("negative reversed range", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())
		_, err := svc.Apply(ctx, employee, leave.ApplyLeaveRequest{Type: "paid", StartDate: "2025-02-03", EndDate: "2025-02-01"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative bad date format", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())
		_, err := svc.Apply(ctx, employee, leave.ApplyLeaveRequest{Type: "paid", StartDate: "03/02/2025", EndDate: "2025-02-04"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown applicant is stored as Unknown", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())
		got, err := svc.Apply(ctx, domain.Actor{UserID: "99", Role: domain.RoleEmployee}, leave.ApplyLeaveRequest{
			Type: "unpaid", StartDate: "2025-04-01", EndDate: "2025-04-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "Unknown", got.EmployeeName)
		assert.Equal(t, 1, got.Days)
	})
}

func TestLeaveService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("approve pending", func(t *testing.T) {
		s := newSeededStore(t)
		svc := leave.NewService(s, zap.NewNop())

		got, err := svc.Approve(ctx, admin, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.LeaveApproved, got.Status)

		days, err := s.ApprovedLeaveDays(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("negative approve after reject", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())

		got, err := svc.Reject(ctx, admin, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.LeaveRejected, got.Status)

		_, err = svc.Approve(ctx, admin, "1")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("negative employee cannot approve", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())
		_, err := svc.Approve(ctx, employee, "1")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := leave.NewService(newSeededStore(t), zap.NewNop())
		_, err := svc.Reject(ctx, admin, "missing")
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative corrupt store maps to unavailable", func(t *testing.T) {
		svc := leave.NewService(&brokenRepo{err: fmt.Errorf("load: %w", store.ErrCorruptStore)}, zap.NewNop())
		_, err := svc.Approve(ctx, admin, "1")

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeServiceUnavailable, appErr.Code)
		assert.ErrorIs(t, err, store.ErrCorruptStore)
	})
}

func TestLeaveService_List(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	svc := leave.NewService(s, zap.NewNop())

	_, err := svc.Apply(ctx, domain.Actor{UserID: "1", Role: domain.RoleAdmin}, leave.ApplyLeaveRequest{
		Type: "paid", StartDate: "2025-05-05", EndDate: "2025-05-06",
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, admin, leave.ListLeavesFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, employee, leave.ListLeavesFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "2", own[0].UserID)

	_, err = svc.List(ctx, employee, leave.ListLeavesFilter{UserID: "1"})
	assert.ErrorIs(t, err, leaveerrors.ErrForbidden)

	_, err = svc.List(ctx, admin, leave.ListLeavesFilter{Status: "cancelled"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)

	_, err = svc.Approve(ctx, admin, "1")
	require.NoError(t, err)

	pending, err := svc.Pending(ctx, admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].UserID)

	ownApproved, err := svc.List(ctx, admin, leave.ListLeavesFilter{UserID: "2", Status: "approved"})
	require.NoError(t, err)
	assert.Len(t, ownApproved, 1)

	ownPending, err := svc.Pending(ctx, employee)
	require.NoError(t, err)
	assert.Empty(t, ownPending)
}

func TestLeaveService_ListStoreError(t *testing.T) {
	svc := leave.NewService(&brokenRepo{err: errors.New("backend down")}, zap.NewNop())
	_, err := svc.List(context.Background(), employee, leave.ListLeavesFilter{})
	assert.EqualError(t, err, "backend down")
}
