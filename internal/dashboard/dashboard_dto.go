package dashboard

import (
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/store"
)

// OrganizationSummary is shown to admin and hr only. TotalEmployees, OnLeaveToday and
// AbsentToday count users with the employee role; RoleCounts covers everyone.
type OrganizationSummary struct {
	TotalEmployees int                 `json:"totalEmployees"`
	RoleCounts     map[domain.Role]int `json:"roleCounts"`
	PresentToday   int                 `json:"presentToday"`
	LateToday      int                 `json:"lateToday"`
	OnLeaveToday   int                 `json:"onLeaveToday"`
	AbsentToday    int                 `json:"absentToday"`
	PendingLeaves  int                 `json:"pendingLeaves"`
}

type PersonalSummary struct {
	CheckedInToday    bool                 `json:"checkedInToday"`
	CheckedOutToday   bool                 `json:"checkedOutToday"`
	DaysPresent       int                  `json:"daysPresent"`
	WorkHours         string               `json:"workHours"`
	PendingLeaves     int                  `json:"pendingLeaves"`
	ApprovedLeaveDays int                  `json:"approvedLeaveDays"`
	LeaveBalances     []store.LeaveBalance `json:"leaveBalances"`
}

type SummaryResponse struct {
	Date         string               `json:"date"`
	Role         domain.Role          `json:"role"`
	Organization *OrganizationSummary `json:"organization,omitempty"`
	Me           PersonalSummary      `json:"me"`
}
