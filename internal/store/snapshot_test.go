package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/krushit1307/HRMS/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshot_QuotedValues(t *testing.T) {
	doc := `{"users":[{"id":"1","email":"a@dayflow.com","name":"A","role":"admin","employeeId":"EMP1"}],"attendance":[],"leaves":[]}`
	creds := `{"1":"plain-one"}`
	quotedDoc, _ := json.Marshal(doc)
	quotedCreds, _ := json.Marshal(creds)

	data := []byte(`{"dayflow_db":` + string(quotedDoc) + `,"dayflow_passwords":` + string(quotedCreds) + `}`)
	snap, err := store.ParseSnapshot(data)
	require.NoError(t, err)
	require.Len(t, snap.Document.Users, 1)
	assert.Equal(t, "a@dayflow.com", snap.Document.Users[0].Email)
	assert.NotNil(t, snap.Document.Payroll)
	assert.Equal(t, "plain-one", snap.Credentials["1"])
}

func TestParseSnapshot_ObjectsAndMissingKeys(t *testing.T) {
	snap, err := store.ParseSnapshot([]byte(`{"dayflow_db":{"users":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, snap.Document.Users)
	assert.NotNil(t, snap.Credentials)

	_, err = store.ParseSnapshot([]byte(`{"dayflow_db":"{broken"}`))
	assert.Error(t, err)

	_, err = store.ParseSnapshot([]byte(`nope`))
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	src := seeded(t)
	ctx := context.Background()

	snap, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Document.Users, 2)
	assert.Len(t, snap.Credentials, 2)

	b, err := json.Marshal(snap)
	require.NoError(t, err)
	parsed, err := store.ParseSnapshot(b)
	require.NoError(t, err)

	dst, _ := newStore(t)
	require.NoError(t, dst.Import(ctx, parsed))

	users, err := dst.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	_, err = dst.Verify(ctx, "admin@dayflow.com", "admin123")
	assert.NoError(t, err)
}

func TestImport_HashesPlaintext(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()

	snap, err := store.ParseSnapshot([]byte(`{
		"dayflow_db": {"users":[{"id":"9","email":"imp@dayflow.com","name":"Imp","role":"hr","employeeId":"EMP9"}]},
		"dayflow_passwords": {"9":"imported-pw"}
	}`))
	require.NoError(t, err)
	require.NoError(t, s.Import(ctx, snap))

	raw, _, _ := backend.Get(ctx, store.CredentialsKey)
	assert.NotContains(t, raw, "imported-pw")

	u, err := s.Verify(ctx, "imp@dayflow.com", "imported-pw")
	require.NoError(t, err)
	assert.Equal(t, "9", u.ID)
}

func TestImport_RejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	user := func(id, email, role string) string {
		return `{"id":"` + id + `","email":"` + email + `","name":"N","role":"` + role + `","employeeId":"E` + id + `"}`
	}

	tests := []struct {
		name string
		doc  string
	}{
		{name: "duplicate user id", doc: `{"users":[` + user("1", "a@x.com", "hr") + `,` + user("1", "b@x.com", "hr") + `]}`},
		{name: "duplicate email", doc: `{"users":[` + user("1", "a@x.com", "hr") + `,` + user("2", "A@X.COM", "hr") + `]}`},
		{name: "unknown role", doc: `{"users":[` + user("1", "a@x.com", "owner") + `]}`},
		{name: "leave days mismatch", doc: `{"leaves":[{"id":"l1","userId":"1","type":"paid","startDate":"2025-03-03","endDate":"2025-03-04","days":9,"status":"pending"}]}`},
		{name: "second attendance same day", doc: `{"attendance":[
			{"id":"a1","userId":"1","date":"2025-01-03","checkIn":"09:00 AM","status":"present"},
			{"id":"a2","userId":"1","date":"2025-01-03","checkIn":"09:30 AM","status":"late"}]}`},
		{name: "bad check-in", doc: `{"attendance":[{"id":"a1","userId":"1","date":"2025-01-03","checkIn":"nine","status":"present"}]}`},
		{name: "bad payroll month", doc: `{"payroll":[{"id":"p1","userId":"1","month":"Jan","year":2025,"status":"pending"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seeded(t)
			snap, err := store.ParseSnapshot([]byte(`{"dayflow_db":` + tt.doc + `}`))
			require.NoError(t, err)

			err = s.Import(ctx, snap)
			assert.ErrorIs(t, err, store.ErrInvalidRecord)

			users, err := s.Users(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 2, "store keeps its previous content")
		})
	}
}

func TestImport_RecomputesDerivedFields(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	snap, err := store.ParseSnapshot([]byte(`{"dayflow_db":{
		"attendance":[{"id":"a1","userId":"9","date":"2025-01-03","checkIn":"9:00 AM","checkOut":"5:30 PM","status":"present"}],
		"leaves":[{"id":"l1","userId":"9","type":"sick","startDate":"2025-03-03","endDate":"2025-03-04","days":0,"status":"pending"}],
		"payroll":[{"id":"p1","userId":"9","month":"January","year":2025,"basicSalary":5000,"allowances":500,"deductions":200,"netSalary":1,"status":"pending"}]
	}}`))
	require.NoError(t, err)
	require.NoError(t, s.Import(ctx, snap))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:00 AM", doc.Attendance[0].CheckIn)
	assert.Equal(t, "8h 30m", doc.Attendance[0].WorkHours)
	assert.Equal(t, 2, doc.Leaves[0].Days)
	assert.Equal(t, 5300.0, doc.Payroll[0].NetSalary)
}
