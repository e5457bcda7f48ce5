package store

import (
	"context"
	"time"

	"github.com/krushit1307/HRMS/internal/domain"
)

func (s *Store) CountUsersByRole(ctx context.Context, role domain.Role) (int, error) {
	counts, err := s.RoleCounts(ctx)
	if err != nil {
		return 0, err
	}
	return counts[role], nil
}

func (s *Store) RoleCounts(ctx context.Context) (map[domain.Role]int, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[domain.Role]int{
		domain.RoleAdmin:    0,
		domain.RoleHR:       0,
		domain.RoleEmployee: 0,
	}
	for _, u := range doc.Users {
		counts[u.Role]++
	}
	return counts, nil
}

func (s *Store) CountAttendance(ctx context.Context, date string, status domain.AttendanceStatus) (int, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range doc.Attendance {
		if a.Date == date && a.Status == status {
			n++
		}
	}
	return n, nil
}

// OnLeaveCount counts approved leaves whose range covers date.
func (s *Store) OnLeaveCount(ctx context.Context, date string) (int, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range doc.Leaves {
		if l.Status == domain.LeaveApproved && l.StartDate <= date && date <= l.EndDate {
			n++
		}
	}
	return n, nil
}

type AttendanceTotals struct {
	DaysPresent int
	Worked      time.Duration
}

// AttendanceTotals counts the present days of userID and sums the recorded work hours
// of every checked-out day. Unreadable work hours are skipped.
func (s *Store) AttendanceTotals(ctx context.Context, userID string) (AttendanceTotals, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return AttendanceTotals{}, err
	}
	var totals AttendanceTotals
	for _, a := range doc.Attendance {
		if a.UserID != userID {
			continue
		}
		if a.Status == domain.AttendancePresent {
			totals.DaysPresent++
		}
		if d, err := domain.ParseWorkHours(a.WorkHours); err == nil {
			totals.Worked += d
		}
	}
	return totals, nil
}

// ApprovedLeaveDays sums Days over the approved leaves of userID.
func (s *Store) ApprovedLeaveDays(ctx context.Context, userID string) (int, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, l := range doc.Leaves {
		if l.UserID == userID && l.Status == domain.LeaveApproved {
			total += l.Days
		}
	}
	return total, nil
}

type LeaveBalance struct {
	Type      domain.LeaveType `json:"type"`
	Allowance int              `json:"allowance"`
	Used      int              `json:"used"`
	Remaining int              `json:"remaining"`
	Unlimited bool             `json:"unlimited"`
}

// LeaveBalances reports paid, sick and unpaid balances in that order.
func (s *Store) LeaveBalances(ctx context.Context, userID string) ([]LeaveBalance, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	used := map[domain.LeaveType]int{}
	for _, l := range doc.Leaves {
		if l.UserID == userID && l.Status == domain.LeaveApproved {
			used[l.Type] += l.Days
		}
	}

	out := make([]LeaveBalance, 0, 3)
	for _, t := range []domain.LeaveType{domain.LeavePaid, domain.LeaveSick, domain.LeaveUnpaid} {
		b := LeaveBalance{Type: t, Used: used[t]}
		if allowance, ok := domain.LeaveAllowance[t]; ok {
			b.Allowance = allowance
			b.Remaining = max(allowance-used[t], 0)
		} else {
			b.Unlimited = true
		}
		out = append(out, b)
	}
	return out, nil
}

// UserDisplayName returns "Unknown" for an id with no user.
func (s *Store) UserDisplayName(ctx context.Context, userID string) (string, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	u, err := findUserByID(doc, userID)
	if err != nil {
		return "Unknown", nil
	}
	return u.Name, nil
}
