package store

import (
	"context"
	"fmt"

	"github.com/krushit1307/HRMS/internal/domain"
)

func (s *Store) Leaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Leaves, nil
}

func (s *Store) LeavesByOwner(ctx context.Context, userID string) ([]domain.LeaveRequest, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(doc.Leaves, func(l domain.LeaveRequest) bool { return l.UserID == userID }), nil
}

func (s *Store) LeavesByStatus(ctx context.Context, status domain.LeaveStatus) ([]domain.LeaveRequest, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(doc.Leaves, func(l domain.LeaveRequest) bool { return l.Status == status }), nil
}

func (s *Store) PendingLeaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	return s.LeavesByStatus(ctx, domain.LeavePending)
}

func (s *Store) FindLeaveByID(ctx context.Context, id string) (domain.LeaveRequest, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	i := indexOf(doc.Leaves, func(l domain.LeaveRequest) bool { return l.ID == id })
	if i < 0 {
		return domain.LeaveRequest{}, ErrNotFound
	}
	return doc.Leaves[i], nil
}

func (s *Store) AddLeave(ctx context.Context, l domain.LeaveRequest) (domain.LeaveRequest, error) {
	l, err := prepareLeave(l)
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	err = s.mutate(ctx, func(doc *Document) error {
		return insertLeave(doc, l)
	})
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	return l, nil
}

func (s *Store) UpdateLeave(ctx context.Context, l domain.LeaveRequest) (domain.LeaveRequest, error) {
	l, err := prepareLeave(l)
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	err = s.mutate(ctx, func(doc *Document) error {
		i := indexOf(doc.Leaves, func(x domain.LeaveRequest) bool { return x.ID == l.ID })
		if i < 0 {
			return ErrNotFound
		}
		doc.Leaves[i] = l
		return nil
	})
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	return l, nil
}

// prepareLeave fills Days from the date range when it is zero and rejects a mismatch.
func prepareLeave(l domain.LeaveRequest) (domain.LeaveRequest, error) {
	if err := domain.Validate(l); err != nil {
		return l, invalid(err)
	}
	days, err := domain.LeaveDays(l.StartDate, l.EndDate)
	if err != nil {
		return l, invalid(err)
	}
	if l.Days == 0 {
		l.Days = days
	} else if l.Days != days {
		return l, invalid(fmt.Errorf("days is %d but %s..%s spans %d", l.Days, l.StartDate, l.EndDate, days))
	}
	return l, nil
}

func insertLeave(doc *Document, l domain.LeaveRequest) error {
	if indexOf(doc.Leaves, func(x domain.LeaveRequest) bool { return x.ID == l.ID }) >= 0 {
		return ErrDuplicateID
	}
	doc.Leaves = append(doc.Leaves, l)
	return nil
}
