package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/middleware"
	"github.com/krushit1307/HRMS/internal/payroll"
	payrollerrors "github.com/krushit1307/HRMS/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakePayrollService struct {
	createFn     func(ctx context.Context, actor domain.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error)
	markAsPaidFn func(ctx context.Context, actor domain.Actor, id string) (payroll.PayrollResponse, error)
	getAllFn     func(ctx context.Context, actor domain.Actor, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error)
	getByIDFn    func(ctx context.Context, actor domain.Actor, id string) (payroll.PayrollResponse, error)
	payslipFn    func(ctx context.Context, actor domain.Actor, id string) ([]byte, payroll.PayrollResponse, error)
}

func (f *fakePayrollService) Create(ctx context.Context, actor domain.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakePayrollService) MarkAsPaid(ctx context.Context, actor domain.Actor, id string) (payroll.PayrollResponse, error) {
	return f.markAsPaidFn(ctx, actor, id)
}
func (f *fakePayrollService) GetAll(ctx context.Context, actor domain.Actor, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, actor, filter)
}
func (f *fakePayrollService) GetByID(ctx context.Context, actor domain.Actor, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}
func (f *fakePayrollService) Payslip(ctx context.Context, actor domain.Actor, id string) ([]byte, payroll.PayrollResponse, error) {
	return f.payslipFn(ctx, actor, id)
}

func newContext(method, target, body string, actor *domain.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if actor != nil {
		c.Set(middleware.ContextUserID, actor.UserID)
		c.Set(middleware.ContextRole, string(actor.Role))
	}
	return c, w
}

func TestPayrollHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{
			createFn: func(ctx context.Context, actor domain.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
				assert.Equal(t, "2", req.UserID)
				assert.Equal(t, 5000.0, req.BasicSalary)
				return payroll.PayrollResponse{
					PayrollRecord: domain.PayrollRecord{ID: "p-1", UserID: "2", Month: "March", Year: 2025, NetSalary: 5300},
					EmployeeName:  "Sarah Chen",
				}, nil
			},
		}
		body := `{"userId":"2","month":"March","year":2025,"basicSalary":5000,"allowances":500,"deductions":200}`
		c, w := newContext(http.MethodPost, "/payroll", body, &admin)

		payroll.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"employeeName":"Sarah Chen"`)
		assert.Contains(t, string(env.Data), `"netSalary":5300`)
	})

	t.Run("negative validation error", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/payroll", `{"userId":"2"}`, &admin)
		payroll.NewHandler(&fakePayrollService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("negative duplicate", func(t *testing.T) {
		svc := &fakePayrollService{
			createFn: func(ctx context.Context, actor domain.Actor, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrPayrollAlreadyExists
			},
		}
		c, w := newContext(http.MethodPost, "/payroll", `{"userId":"2","month":"March","year":2025}`, &admin)
		payroll.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPayrollHandler_ReadAndPay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, actor domain.Actor, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
			assert.Equal(t, 2025, filter.Year)
			return []payroll.PayrollResponse{{PayrollRecord: domain.PayrollRecord{ID: "p-1"}}}, nil
		},
		getByIDFn: func(ctx context.Context, actor domain.Actor, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrForbidden
		},
		markAsPaidFn: func(ctx context.Context, actor domain.Actor, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{PayrollRecord: domain.PayrollRecord{ID: id, Status: domain.PayrollPaid}}, nil
		},
	}
	h := payroll.NewHandler(svc)

	c, w := newContext(http.MethodGet, "/payroll?year=2025", "", &admin)
	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	c, w = newContext(http.MethodGet, "/payroll/p-1", "", &employee)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}}
	h.GetByID(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newContext(http.MethodPut, "/payroll/p-1/pay", "", &admin)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}}
	h.MarkAsPaid(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"paid"`)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakePayrollService{
		payslipFn: func(ctx context.Context, actor domain.Actor, id string) ([]byte, payroll.PayrollResponse, error) {
			return []byte("%PDF-1.4 test"), payroll.PayrollResponse{
				PayrollRecord: domain.PayrollRecord{ID: id, UserID: "2", Month: "March", Year: 2025},
			}, nil
		},
	}
	c, w := newContext(http.MethodGet, "/payroll/p-1/payslip", "", &employee)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}}

	payroll.NewHandler(svc).DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payslip-2-march-2025.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 test", w.Body.String())
}
