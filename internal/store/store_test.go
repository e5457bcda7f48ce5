package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/kvstore"
	kvmock "github.com/krushit1307/HRMS/internal/kvstore/mock"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T, opts ...store.Option) (*store.Store, *kvstore.Memory) {
	t.Helper()
	backend := kvstore.NewMemory()
	opts = append([]store.Option{store.WithPasswordCost(bcrypt.MinCost), store.WithLogger(zap.NewNop())}, opts...)
	return store.New(backend, opts...), backend
}

func seeded(t *testing.T) *store.Store {
	t.Helper()
	s, _ := newStore(t)
	require.NoError(t, s.InitializeIfAbsent(context.Background()))
	return s
}

func newUser(id, email string) domain.User {
	return domain.User{
		ID:         id,
		Email:      email,
		Name:       "User " + id,
		Role:       domain.RoleEmployee,
		EmployeeID: "EMP" + id,
		Department: "Engineering",
		Position:   "Developer",
		JoinDate:   "2024-05-01",
	}
}

func TestLoad_EmptyBackend(t *testing.T) {
	s, _ := newStore(t)
	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Attendance)
	assert.NotNil(t, doc.Leaves)
	assert.NotNil(t, doc.Payroll)
	assert.Empty(t, doc.Users)
}

func TestSave_EncodesEmptyCollectionsAsArrays(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, store.Document{}))
	raw, ok, err := backend.Get(ctx, store.DocumentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"users":[],"attendance":[],"leaves":[],"payroll":[]}`, raw)
}

func TestLoad_NullCollectionsNormalized(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, store.DocumentKey, `{"users":null}`))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Payroll)
}

func TestInitializeIfAbsent_Seeds(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, domain.RoleEmployee, users[1].Role)

	att, err := s.Attendance(ctx)
	require.NoError(t, err)
	assert.Len(t, att, 2)

	pending, err := s.PendingLeaves(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	payroll, err := s.Payroll(ctx)
	require.NoError(t, err)
	assert.Empty(t, payroll)

	admin, err := s.Verify(ctx, "admin@dayflow.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "1", admin.ID)

	_, err = s.Verify(ctx, "admin@dayflow.com", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestInitializeIfAbsent_Idempotent(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.InitializeIfAbsent(ctx))
	first, _, _ := backend.Get(ctx, store.DocumentKey)
	firstCreds, _, _ := backend.Get(ctx, store.CredentialsKey)

	require.NoError(t, s.InitializeIfAbsent(ctx))
	second, _, _ := backend.Get(ctx, store.DocumentKey)
	secondCreds, _, _ := backend.Get(ctx, store.CredentialsKey)

	assert.Equal(t, first, second)
	assert.Equal(t, firstCreds, secondCreds)
}

func TestInitializeIfAbsent_KeepsExistingData(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.AddUser(ctx, newUser("u1", "solo@dayflow.com"))
	require.NoError(t, err)
	require.NoError(t, s.InitializeIfAbsent(ctx))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestInitializeIfAbsent_KeepsExistingCredentials(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, store.CredentialsKey, `{"1":"legacy-secret"}`))

	require.NoError(t, s.InitializeIfAbsent(ctx))

	_, err := s.Verify(ctx, "admin@dayflow.com", "admin123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	u, err := s.Verify(ctx, "admin@dayflow.com", "legacy-secret")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
}

func TestLoad_CorruptRecovers(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, store.DocumentKey, `{"users":[{"id":"1"`))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Users, 2)

	backup, ok, err := backend.Get(ctx, store.CorruptBackupKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"users":[{"id":"1"`, backup)

	raw, _, _ := backend.Get(ctx, store.DocumentKey)
	assert.True(t, json.Valid([]byte(raw)))
}

func TestLoad_CorruptWithoutRecovery(t *testing.T) {
	s, backend := newStore(t, store.WithCorruptRecovery(false))
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, store.DocumentKey, `not json`))

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, store.ErrCorruptStore)

	_, err = s.AddUser(ctx, newUser("u1", "a@dayflow.com"))
	assert.ErrorIs(t, err, store.ErrCorruptStore)

	raw, _, _ := backend.Get(ctx, store.DocumentKey)
	assert.Equal(t, `not json`, raw)
}

func TestBackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := kvmock.NewMockBackend(ctrl)
	s := store.New(backend, store.WithLogger(zap.NewNop()))
	ctx := context.Background()

	t.Run("read failure", func(t *testing.T) {
		backend.EXPECT().Get(gomock.Any(), store.DocumentKey).Return("", false, errors.New("io timeout"))
		_, err := s.Users(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "io timeout")
	})

	t.Run("write failure", func(t *testing.T) {
		backend.EXPECT().Get(gomock.Any(), store.DocumentKey).Return(`{"users":[]}`, true, nil)
		backend.EXPECT().Set(gomock.Any(), store.DocumentKey, gomock.Any()).Return(errors.New("read-only"))
		_, err := s.AddUser(ctx, newUser("u1", "a@dayflow.com"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "read-only")
	})

	t.Run("update not found does not write", func(t *testing.T) {
		backend.EXPECT().Get(gomock.Any(), store.DocumentKey).Return(`{"users":[]}`, true, nil)
		backend.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		_, err := s.UpdateUser(ctx, newUser("ghost", "ghost@dayflow.com"))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddLeave(ctx, domain.LeaveRequest{
				ID:        string(rune('a' + i)),
				UserID:    "2",
				Type:      domain.LeaveSick,
				StartDate: "2025-02-03",
				EndDate:   "2025-02-03",
				Status:    domain.LeavePending,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	leaves, err := s.Leaves(ctx)
	require.NoError(t, err)
	assert.Len(t, leaves, 20)
}
