package domain

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHalfDay AttendanceStatus = "half-day"
	AttendanceLeave   AttendanceStatus = "leave"
)

// AttendanceRecord holds one user's day. CheckOut stays empty until the user checks out.
type AttendanceRecord struct {
	ID        string           `json:"id" validate:"required"`
	UserID    string           `json:"userId" validate:"required"`
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn   string           `json:"checkIn"`
	CheckOut  string           `json:"checkOut"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present late absent half-day leave"`
	WorkHours string           `json:"workHours"`
}

func (a AttendanceRecord) CheckedOut() bool {
	return a.CheckOut != "" && a.CheckOut != "-"
}
