package domain

type LeaveType string

const (
	LeavePaid   LeaveType = "paid"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID           string      `json:"id" validate:"required"`
	UserID       string      `json:"userId" validate:"required"`
	EmployeeName string      `json:"employeeName"`
	Type         LeaveType   `json:"type" validate:"required,oneof=paid sick unpaid"`
	StartDate    string      `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string      `json:"endDate" validate:"required,datetime=2006-01-02"`
	Days         int         `json:"days" validate:"gte=0"`
	Status       LeaveStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	Reason       string      `json:"reason"`
}

// Yearly allowance per leave type. Unpaid leave has no cap and is absent here.
var LeaveAllowance = map[LeaveType]int{
	LeavePaid: 12,
	LeaveSick: 5,
}
