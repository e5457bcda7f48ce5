package domain

type PayrollStatus string

const (
	PayrollPending PayrollStatus = "pending"
	PayrollPaid    PayrollStatus = "paid"
)

// Months lists the accepted payroll period names in calendar order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type PayrollRecord struct {
	ID          string        `json:"id" validate:"required"`
	UserID      string        `json:"userId" validate:"required"`
	Month       string        `json:"month" validate:"required,oneof=January February March April May June July August September October November December"`
	Year        int           `json:"year" validate:"gte=1970,lte=9999"`
	BasicSalary float64       `json:"basicSalary" validate:"gte=0"`
	Allowances  float64       `json:"allowances" validate:"gte=0"`
	Deductions  float64       `json:"deductions" validate:"gte=0"`
	NetSalary   float64       `json:"netSalary"`
	Status      PayrollStatus `json:"status" validate:"required,oneof=pending paid"`
}
