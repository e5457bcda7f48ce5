package store

import "github.com/krushit1307/HRMS/internal/domain"

var seedUsers = []domain.User{
	{
		ID:         "1",
		Email:      "admin@dayflow.com",
		Name:       "Alex Johnson",
		Role:       domain.RoleAdmin,
		EmployeeID: "EMP001",
		Department: "Management",
		Position:   "HR Director",
		JoinDate:   "2022-01-15",
		Phone:      "+1 (555) 123-4567",
		Address:    "123 Corporate Ave, Suite 500",
	},
	{
		ID:         "2",
		Email:      "employee@dayflow.com",
		Name:       "Sarah Chen",
		Role:       domain.RoleEmployee,
		EmployeeID: "EMP042",
		Department: "Engineering",
		Position:   "Senior Developer",
		JoinDate:   "2023-03-20",
		Phone:      "+1 (555) 987-6543",
		Address:    "456 Tech Lane, Building B",
	},
}

// Demo logins. Hashed before they are written.
var seedPasswords = map[string]string{
	"1": "admin123",
	"2": "employee123",
}

var seedAttendance = []domain.AttendanceRecord{
	{ID: "1", UserID: "2", Date: "2025-01-03", CheckIn: "09:02 AM", CheckOut: "06:15 PM", Status: domain.AttendancePresent, WorkHours: "9h 13m"},
	{ID: "2", UserID: "2", Date: "2025-01-02", CheckIn: "09:45 AM", CheckOut: "06:00 PM", Status: domain.AttendanceLate, WorkHours: "8h 15m"},
}

var seedLeaves = []domain.LeaveRequest{
	{
		ID:           "1",
		UserID:       "2",
		EmployeeName: "Sarah Chen",
		Type:         domain.LeavePaid,
		StartDate:    "2025-01-15",
		EndDate:      "2025-01-17",
		Days:         3,
		Status:       domain.LeavePending,
		Reason:       "Family vacation",
	},
}

// seedDocument returns fresh copies so callers may modify the result.
func seedDocument() Document {
	return Document{
		Users:      append([]domain.User(nil), seedUsers...),
		Attendance: append([]domain.AttendanceRecord(nil), seedAttendance...),
		Leaves:     append([]domain.LeaveRequest(nil), seedLeaves...),
		Payroll:    []domain.PayrollRecord{},
	}
}
