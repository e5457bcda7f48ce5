package attendance

import "github.com/krushit1307/HRMS/internal/domain"

type ListAttendanceFilter struct {
	UserID string `form:"userId"`
	Date   string `form:"date"`
	Status string `form:"status"`
}

// TodayResponse carries Record only once the caller has checked in today.
type TodayResponse struct {
	Date       string                   `json:"date"`
	CheckedIn  bool                     `json:"checkedIn"`
	CheckedOut bool                     `json:"checkedOut"`
	Record     *domain.AttendanceRecord `json:"record"`
}
