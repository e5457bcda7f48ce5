package leave

type ApplyLeaveRequest struct {
	Type      string `json:"type" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason"`
}

type ListLeavesFilter struct {
	Status string `form:"status"`
	UserID string `form:"userId"`
}
