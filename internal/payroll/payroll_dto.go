package payroll

import "github.com/krushit1307/HRMS/internal/domain"

type CreatePayrollRequest struct {
	UserID      string  `json:"userId" binding:"required"`
	Month       string  `json:"month" binding:"required"`
	Year        int     `json:"year" binding:"required,gte=1970,lte=9999"`
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
}

type GetPayrollsFilterRequest struct {
	UserID string `form:"userId"`
	Month  string `form:"month"`
	Year   int    `form:"year"`
	Status string `form:"status"`
}

type PayrollResponse struct {
	domain.PayrollRecord
	EmployeeName string `json:"employeeName"`
}
