package store

import (
	"context"

	"github.com/krushit1307/HRMS/internal/domain"
)

func (s *Store) Payroll(ctx context.Context) ([]domain.PayrollRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Payroll, nil
}

func (s *Store) PayrollByOwner(ctx context.Context, userID string) ([]domain.PayrollRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(doc.Payroll, func(p domain.PayrollRecord) bool { return p.UserID == userID }), nil
}

func (s *Store) FindPayrollByID(ctx context.Context, id string) (domain.PayrollRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	i := indexOf(doc.Payroll, func(p domain.PayrollRecord) bool { return p.ID == id })
	if i < 0 {
		return domain.PayrollRecord{}, ErrNotFound
	}
	return doc.Payroll[i], nil
}

// AddPayroll appends rec. NetSalary is always recomputed, whatever the caller sent.
func (s *Store) AddPayroll(ctx context.Context, rec domain.PayrollRecord) (domain.PayrollRecord, error) {
	rec, err := preparePayroll(rec)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	err = s.mutate(ctx, func(doc *Document) error {
		return insertPayroll(doc, rec)
	})
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	return rec, nil
}

func (s *Store) UpdatePayroll(ctx context.Context, rec domain.PayrollRecord) (domain.PayrollRecord, error) {
	rec, err := preparePayroll(rec)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	err = s.mutate(ctx, func(doc *Document) error {
		i := indexOf(doc.Payroll, func(p domain.PayrollRecord) bool { return p.ID == rec.ID })
		if i < 0 {
			return ErrNotFound
		}
		doc.Payroll[i] = rec
		return nil
	})
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	return rec, nil
}

func preparePayroll(rec domain.PayrollRecord) (domain.PayrollRecord, error) {
	if err := domain.Validate(rec); err != nil {
		return rec, invalid(err)
	}
	rec.NetSalary = domain.NetSalary(rec.BasicSalary, rec.Allowances, rec.Deductions)
	return rec, nil
}

func insertPayroll(doc *Document, rec domain.PayrollRecord) error {
	if indexOf(doc.Payroll, func(p domain.PayrollRecord) bool { return p.ID == rec.ID }) >= 0 {
		return ErrDuplicateID
	}
	doc.Payroll = append(doc.Payroll, rec)
	return nil
}
