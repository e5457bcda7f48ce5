package user

// DefaultPassword is given to accounts created from the employee directory.
const DefaultPassword = "password123"

type CreateUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
	Position   string `json:"position"`
	JoinDate   string `json:"joinDate"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Password   string `json:"password" binding:"omitempty,min=6"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Role       *string `json:"role"`
	EmployeeID *string `json:"employeeId" binding:"omitempty,min=1"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	JoinDate   *string `json:"joinDate"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Avatar     *string `json:"avatar"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type ListUsersFilter struct {
	Search string `form:"search"`
	Role   string `form:"role"`
}
