package auth

import "github.com/krushit1307/HRMS/internal/domain"

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	EmployeeID string `json:"employeeId" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse is the session user shown to the client.
type AuthResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	EmployeeID string      `json:"employeeId"`
	Department string      `json:"department,omitempty"`
	Position   string      `json:"position,omitempty"`
	Avatar     string      `json:"avatar,omitempty"`
}

func toAuthResponse(u domain.User) AuthResponse {
	return AuthResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
		Position:   u.Position,
		Avatar:     u.Avatar,
	}
}
