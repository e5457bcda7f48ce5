package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/krushit1307/HRMS/internal/dashboard"
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/kvstore"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	admin    = domain.Actor{UserID: "1", Role: domain.RoleAdmin}
	employee = domain.Actor{UserID: "2", Role: domain.RoleEmployee}
)

// 2025-01-03 is a seeded attendance day for Sarah Chen.
func fixedClock() time.Time {
	return time.Date(2025, 1, 3, 10, 0, 0, 0, time.Local)
}

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(kvstore.NewMemory(), store.WithPasswordCost(bcrypt.MinCost), store.WithLogger(zap.NewNop()))
	require.NoError(t, s.InitializeIfAbsent(context.Background()))
	return s
}

type failingCounts struct {
	dashboard.Repository
	err error
}

func (f *failingCounts) RoleCounts(ctx context.Context) (map[domain.Role]int, error) {
	return nil, f.err
}

// ctxCheckingCounts fails RoleCounts when its context is done.
type ctxCheckingCounts struct {
	dashboard.Repository
}

func (c *ctxCheckingCounts) RoleCounts(ctx context.Context) (map[domain.Role]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Repository.RoleCounts(ctx)
}

func expectedOrganization() dashboard.OrganizationSummary {
	return dashboard.OrganizationSummary{
		TotalEmployees: 1,
		RoleCounts:     map[domain.Role]int{domain.RoleAdmin: 1, domain.RoleHR: 0, domain.RoleEmployee: 1},
		PresentToday:   1,
		LateToday:      0,
		OnLeaveToday:   0,
		AbsentToday:    0,
		PendingLeaves:  1,
	}
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees organization counts", func(t *testing.T) {
		svc := dashboard.NewService(newSeededStore(t), nil, "", fixedClock, zap.NewNop())

		got, err := svc.Summary(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-03", got.Date)
		require.NotNil(t, got.Organization)
		assert.Equal(t, expectedOrganization(), *got.Organization)

		assert.False(t, got.Me.CheckedInToday)
		assert.Zero(t, got.Me.PendingLeaves)
		require.Len(t, got.Me.LeaveBalances, 3)
		assert.Equal(t, domain.LeavePaid, got.Me.LeaveBalances[0].Type)
		assert.Equal(t, 12, got.Me.LeaveBalances[0].Remaining)
		assert.True(t, got.Me.LeaveBalances[2].Unlimited)
	})

	t.Run("employee sees only their own numbers", func(t *testing.T) {
		svc := dashboard.NewService(newSeededStore(t), nil, "", fixedClock, zap.NewNop())

		got, err := svc.Summary(ctx, employee)
		require.NoError(t, err)
		assert.Nil(t, got.Organization)
		assert.Equal(t, domain.RoleEmployee, got.Role)
		assert.True(t, got.Me.CheckedInToday)
		assert.True(t, got.Me.CheckedOutToday)
		assert.Equal(t, 1, got.Me.PendingLeaves)
		assert.Zero(t, got.Me.ApprovedLeaveDays)
		assert.Equal(t, 1, got.Me.DaysPresent)
		assert.Equal(t, "17h 28m", got.Me.WorkHours)
	})

	t.Run("placeholder times are not check-ins", func(t *testing.T) {
		s := newSeededStore(t)
		_, err := s.AddAttendance(ctx, domain.AttendanceRecord{
			ID: "a-admin", UserID: "1", Date: "2025-01-03", CheckIn: "-", CheckOut: "-", Status: domain.AttendanceAbsent,
		})
		require.NoError(t, err)

		got, err := dashboard.NewService(s, nil, "", fixedClock, zap.NewNop()).Summary(ctx, admin)
		require.NoError(t, err)
		assert.False(t, got.Me.CheckedInToday)
		assert.False(t, got.Me.CheckedOutToday)
		assert.Equal(t, "0h 00m", got.Me.WorkHours)
	})

	t.Run("on leave and absent count employees only", func(t *testing.T) {
		s := newSeededStore(t)
		for _, u := range []domain.User{
			{ID: "3", Email: "li@dayflow.com", Name: "Li", Role: domain.RoleEmployee, EmployeeID: "EMP043"},
			{ID: "4", Email: "ola@dayflow.com", Name: "Ola", Role: domain.RoleEmployee, EmployeeID: "EMP044"},
			{ID: "5", Email: "hr@dayflow.com", Name: "Hana", Role: domain.RoleHR, EmployeeID: "EMP045"},
		} {
			_, err := s.AddUser(ctx, u)
			require.NoError(t, err)
		}
		_, err := s.AddLeave(ctx, domain.LeaveRequest{
			ID: "l-3", UserID: "3", EmployeeName: "Li", Type: domain.LeaveSick,
			StartDate: "2025-01-02", EndDate: "2025-01-03", Status: domain.LeaveApproved,
		})
		require.NoError(t, err)

		got, err := dashboard.NewService(s, nil, "", fixedClock, zap.NewNop()).Summary(ctx, admin)
		require.NoError(t, err)
		require.NotNil(t, got.Organization)
		assert.Equal(t, 3, got.Organization.TotalEmployees)
		assert.Equal(t, 1, got.Organization.RoleCounts[domain.RoleHR])
		assert.Equal(t, 1, got.Organization.PresentToday)
		assert.Equal(t, 1, got.Organization.OnLeaveToday)
		assert.Equal(t, 1, got.Organization.AbsentToday)
	})

	t.Run("canceled caller does not fail the shared computation", func(t *testing.T) {
		repo := &ctxCheckingCounts{Repository: newSeededStore(t)}
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		got, err := dashboard.NewService(repo, nil, "", fixedClock, zap.NewNop()).Summary(canceled, admin)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Organization.TotalEmployees)
	})

	t.Run("approved leave reduces the balance", func(t *testing.T) {
		s := newSeededStore(t)
		l, err := s.FindLeaveByID(ctx, "1")
		require.NoError(t, err)
		l.Status = domain.LeaveApproved
		_, err = s.UpdateLeave(ctx, l)
		require.NoError(t, err)

		got, err := dashboard.NewService(s, nil, "", fixedClock, zap.NewNop()).Summary(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Me.ApprovedLeaveDays)
		assert.Equal(t, 3, got.Me.LeaveBalances[0].Used)
		assert.Equal(t, 9, got.Me.LeaveBalances[0].Remaining)
	})

	t.Run("negative corrupt store maps to unavailable", func(t *testing.T) {
		repo := &failingCounts{Repository: newSeededStore(t), err: store.ErrCorruptStore}
		_, err := dashboard.NewService(repo, nil, "", fixedClock, zap.NewNop()).Summary(ctx, admin)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	})
}

func TestDashboardService_SummaryCache(t *testing.T) {
	ctx := context.Background()
	key := dashboard.SummaryKey("dayflow:", "2025-01-03")
	require.Equal(t, "dayflow:dashboard:summary:2025-01-03", key)

	t.Run("miss computes and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		b, err := json.Marshal(expectedOrganization())
		require.NoError(t, err)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, string(b), 30*time.Second).SetVal("OK")

		got, err := dashboard.NewService(newSeededStore(t), rdb, "dayflow:", fixedClock, zap.NewNop()).Summary(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Organization.TotalEmployees)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit skips the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetVal(`{"totalEmployees":40,"roleCounts":{"admin":2,"hr":3,"employee":35},"presentToday":30,"lateToday":4,"pendingLeaves":6}`)

		repo := &failingCounts{Repository: newSeededStore(t), err: errors.New("should not be called")}
		got, err := dashboard.NewService(repo, rdb, "dayflow:", fixedClock, zap.NewNop()).Summary(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, 40, got.Organization.TotalEmployees)
		assert.Equal(t, 35, got.Organization.RoleCounts[domain.RoleEmployee])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down falls back to the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		b, err := json.Marshal(expectedOrganization())
		require.NoError(t, err)
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))
		mock.ExpectSet(key, string(b), 30*time.Second).SetErr(errors.New("connection refused"))

		got, err := dashboard.NewService(newSeededStore(t), rdb, "dayflow:", fixedClock, zap.NewNop()).Summary(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Organization.PendingLeaves)
	})
}
