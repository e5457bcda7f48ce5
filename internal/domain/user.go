package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// IsPrivileged reports whether the role may read and manage records of other users.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleHR
}

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleHR:
		return RoleHR, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

// User field names follow the browser blob so old exports can be imported as-is.
type User struct {
	ID         string `json:"id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Role       Role   `json:"role" validate:"required,oneof=admin hr employee"`
	Avatar     string `json:"avatar,omitempty"`
	EmployeeID string `json:"employeeId" validate:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	JoinDate   string `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

// SameEmail compares addresses the way lookups do: case-insensitive, surrounding space ignored.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NextEmployeeID returns EMP followed by one more than the highest numeric suffix in use,
// zero-padded to three digits.
func NextEmployeeID(users []User) string {
	highest := 0
	for _, u := range users {
		digits, ok := strings.CutPrefix(strings.ToUpper(u.EmployeeID), "EMP")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(digits); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("EMP%03d", highest+1)
}

// EmployeeIDTaken reports whether any user other than exceptID holds employeeID.
func EmployeeIDTaken(users []User, employeeID, exceptID string) bool {
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.EmployeeID, employeeID) {
			return true
		}
	}
	return false
}
