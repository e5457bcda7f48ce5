package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/krushit1307/HRMS/internal/app"
	"github.com/krushit1307/HRMS/internal/cli"
	"github.com/krushit1307/HRMS/internal/kvstore"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func memoryOpener(backend *kvstore.Memory) cli.Opener {
	return func(ctx context.Context) (*app.Resources, error) {
		s := store.New(backend, store.WithPasswordCost(bcrypt.MinCost), store.WithLogger(zap.NewNop()))
		return &app.Resources{Store: s, Backend: backend}, nil
	}
}

func run(t *testing.T, open cli.Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand(&out, open)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit(t *testing.T) {
	backend := kvstore.NewMemory()
	open := memoryOpener(backend)

	out, err := run(t, open, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "2 users, 2 attendance, 1 leaves, 0 payroll")

	s := store.New(backend, store.WithLogger(zap.NewNop()))
	u, err := s.FindUserByEmail(context.Background(), "admin@dayflow.com")
	require.NoError(t, err)
	u.Name = "Changed"
	_, err = s.UpdateUser(context.Background(), u)
	require.NoError(t, err)

	_, err = run(t, open, "init")
	require.NoError(t, err)
	u, err = s.FindUserByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Changed", u.Name)

	_, err = run(t, open, "init", "--reset")
	require.NoError(t, err)
	u, err = s.FindUserByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", u.Name)
}

func TestExportImport(t *testing.T) {
	src := kvstore.NewMemory()
	_, err := run(t, memoryOpener(src), "init")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	out, err := run(t, memoryOpener(src), "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "exported to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dayflow_db"`)
	assert.NotContains(t, string(data), "admin123")

	dst := kvstore.NewMemory()
	out, err = run(t, memoryOpener(dst), "import", "--from", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 users, 2 credentials")

	s := store.New(dst, store.WithLogger(zap.NewNop()))
	_, err = s.Verify(context.Background(), "admin@dayflow.com", "admin123")
	assert.NoError(t, err)
}

func TestImportBrowserDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")
	dump := `{
  "dayflow_db": "{\"users\":[{\"id\":\"9\",\"email\":\"lee@dayflow.com\",\"name\":\"Lee\",\"role\":\"hr\",\"employeeId\":\"EMP009\"}]}",
  "dayflow_passwords": "{\"9\":\"hunter22\"}"
}`
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o600))

	backend := kvstore.NewMemory()
	_, err := run(t, memoryOpener(backend), "import", "--from", path)
	require.NoError(t, err)

	s := store.New(backend, store.WithLogger(zap.NewNop()))
	u, err := s.Verify(context.Background(), "lee@dayflow.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "9", u.ID)
}

func TestPasswd(t *testing.T) {
	backend := kvstore.NewMemory()
	open := memoryOpener(backend)
	_, err := run(t, open, "init")
	require.NoError(t, err)

	out, err := run(t, open, "passwd", "EMPLOYEE@dayflow.com", "--password", "rotated-1")
	require.NoError(t, err)
	assert.Contains(t, out, "password updated for employee@dayflow.com")

	s := store.New(backend, store.WithLogger(zap.NewNop()))
	_, err = s.Verify(context.Background(), "employee@dayflow.com", "rotated-1")
	assert.NoError(t, err)

	_, err = run(t, open, "passwd", "nobody@dayflow.com", "--password", "rotated-1")
	assert.ErrorContains(t, err, "no user with email")

	_, err = run(t, open, "passwd", "employee@dayflow.com", "--password", "short")
	assert.Error(t, err)

	_, err = run(t, open, "import")
	assert.ErrorContains(t, err, "--from")
}
