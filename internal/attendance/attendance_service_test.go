package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/krushit1307/HRMS/internal/attendance"
	attendanceerrors "github.com/krushit1307/HRMS/internal/attendance/errors"
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/kvstore"
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

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(kvstore.NewMemory(), store.WithPasswordCost(bcrypt.MinCost), store.WithLogger(zap.NewNop()))
	require.NoError(t, s.InitializeIfAbsent(context.Background()))
	return s
}

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.Local)
}

func TestAttendanceService_CheckInOut(t *testing.T) {
	ctx := context.Background()

	t.Run("on time then check out", func(t *testing.T) {
		clk := &clock{t: at(9, 2)}
		svc := attendance.NewService(newSeededStore(t), clk.now, zap.NewNop())

		rec, err := svc.CheckIn(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", rec.Date)
		assert.Equal(t, "09:02 AM", rec.CheckIn)
		assert.Equal(t, domain.AttendancePresent, rec.Status)
		assert.Empty(t, rec.CheckOut)

		clk.t = at(18, 15)
		rec, err = svc.CheckOut(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, "06:15 PM", rec.CheckOut)
		assert.Equal(t, "9h 13m", rec.WorkHours)

		_, err = svc.CheckOut(ctx, employee)
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})

	t.Run("late after grace period", func(t *testing.T) {
		svc := attendance.NewService(newSeededStore(t), (&clock{t: at(9, 16)}).now, zap.NewNop())
		rec, err := svc.CheckIn(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, domain.AttendanceLate, rec.Status)
	})

	t.Run("negative second check in", func(t *testing.T) {
		svc := attendance.NewService(newSeededStore(t), (&clock{t: at(8, 0)}).now, zap.NewNop())
		_, err := svc.CheckIn(ctx, employee)
		require.NoError(t, err)
		_, err = svc.CheckIn(ctx, employee)
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("negative check out without check in", func(t *testing.T) {
		svc := attendance.NewService(newSeededStore(t), (&clock{t: at(17, 0)}).now, zap.NewNop())
		_, err := svc.CheckOut(ctx, employee)
		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})

	t.Run("negative check out in the same minute", func(t *testing.T) {
		svc := attendance.NewService(newSeededStore(t), (&clock{t: at(9, 0)}).now, zap.NewNop())
		_, err := svc.CheckIn(ctx, employee)
		require.NoError(t, err)
		_, err = svc.CheckOut(ctx, employee)
		assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutTooEarly)
	})
}

func TestAttendanceService_Today(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: at(10, 0)}
	svc := attendance.NewService(newSeededStore(t), clk.now, zap.NewNop())

	resp, err := svc.Today(ctx, employee)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.False(t, resp.CheckedIn)
	assert.Nil(t, resp.Record)

	_, err = svc.CheckIn(ctx, employee)
	require.NoError(t, err)

	resp, err = svc.Today(ctx, employee)
	require.NoError(t, err)
	assert.True(t, resp.CheckedIn)
	assert.False(t, resp.CheckedOut)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "10:00 AM", resp.Record.CheckIn)
}

func TestAttendanceService_List(t *testing.T) {
	ctx := context.Background()
	svc := attendance.NewService(newSeededStore(t), (&clock{t: at(9, 0)}).now, zap.NewNop())

	_, err := svc.CheckIn(ctx, admin)
	require.NoError(t, err)

	all, err := svc.List(ctx, admin, attendance.ListAttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-10", all[0].Date)
	assert.Equal(t, "2025-01-03", all[1].Date)

	own, err := svc.List(ctx, employee, attendance.ListAttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	late, err := svc.List(ctx, admin, attendance.ListAttendanceFilter{Status: "LATE"})
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.Equal(t, "2025-01-02", late[0].Date)

	byDate, err := svc.List(ctx, admin, attendance.ListAttendanceFilter{Date: "2025-01-03", UserID: "2"})
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	_, err = svc.List(ctx, employee, attendance.ListAttendanceFilter{UserID: "1"})
	assert.ErrorIs(t, err, attendanceerrors.ErrForbidden)

	_, err = svc.List(ctx, admin, attendance.ListAttendanceFilter{Date: "10/03/2025"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)

	_, err = svc.List(ctx, admin, attendance.ListAttendanceFilter{Status: "remote"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
}

type failingRepo struct {
	attendance.Repository
	err error
}

func (f *failingRepo) FindTodayAttendance(ctx context.Context, userID, date string) (domain.AttendanceRecord, error) {
	return domain.AttendanceRecord{}, f.err
}

func TestAttendanceService_StoreError(t *testing.T) {
	boom := errors.New("backend down")
	svc := attendance.NewService(&failingRepo{err: boom}, nil, zap.NewNop())

	_, err := svc.CheckIn(context.Background(), employee)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Today(context.Background(), employee)
	assert.ErrorIs(t, err, boom)
}
