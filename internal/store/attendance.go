package store

import (
	"context"
	"fmt"

	"github.com/krushit1307/HRMS/internal/domain"
)

func (s *Store) Attendance(ctx context.Context) ([]domain.AttendanceRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Attendance, nil
}

func (s *Store) AttendanceByOwner(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(doc.Attendance, func(a domain.AttendanceRecord) bool { return a.UserID == userID }), nil
}

// FindTodayAttendance looks up the record of userID for date (YYYY-MM-DD, exact match).
func (s *Store) FindTodayAttendance(ctx context.Context, userID, date string) (domain.AttendanceRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	i := indexOf(doc.Attendance, func(a domain.AttendanceRecord) bool {
		return a.UserID == userID && a.Date == date
	})
	if i < 0 {
		return domain.AttendanceRecord{}, ErrNotFound
	}
	return doc.Attendance[i], nil
}

func (s *Store) AddAttendance(ctx context.Context, rec domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	rec, err := prepareAttendance(rec)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	err = s.mutate(ctx, func(doc *Document) error {
		return insertAttendance(doc, rec)
	})
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	return rec, nil
}

func (s *Store) UpdateAttendance(ctx context.Context, rec domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	rec, err := prepareAttendance(rec)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	err = s.mutate(ctx, func(doc *Document) error {
		i := indexOf(doc.Attendance, func(a domain.AttendanceRecord) bool { return a.ID == rec.ID })
		if i < 0 {
			return ErrNotFound
		}
		if indexOf(doc.Attendance, func(a domain.AttendanceRecord) bool {
			return a.ID != rec.ID && a.UserID == rec.UserID && a.Date == rec.Date
		}) >= 0 {
			return ErrDuplicateAttendance
		}
		doc.Attendance[i] = rec
		return nil
	})
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	return rec, nil
}

// prepareAttendance validates rec, rewrites clock times as "09:05 AM" and recomputes
// WorkHours once both times are known. "-" marks a time that was never recorded.
func prepareAttendance(rec domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	if err := domain.Validate(rec); err != nil {
		return rec, invalid(err)
	}
	checkedIn := rec.CheckIn != "" && rec.CheckIn != "-"
	if checkedIn {
		t, err := domain.ParseClock(rec.CheckIn)
		if err != nil {
			return rec, invalid(fmt.Errorf("checkIn %q: %w", rec.CheckIn, err))
		}
		rec.CheckIn = domain.FormatClock(t)
	}
	if rec.CheckedOut() {
		t, err := domain.ParseClock(rec.CheckOut)
		if err != nil {
			return rec, invalid(fmt.Errorf("checkOut %q: %w", rec.CheckOut, err))
		}
		rec.CheckOut = domain.FormatClock(t)
	}
	if checkedIn && rec.CheckedOut() {
		wh, err := domain.WorkHours(rec.CheckIn, rec.CheckOut)
		if err != nil {
			return rec, invalid(err)
		}
		rec.WorkHours = wh
	}
	return rec, nil
}

// insertAttendance appends an already prepared record.
func insertAttendance(doc *Document, rec domain.AttendanceRecord) error {
	if indexOf(doc.Attendance, func(a domain.AttendanceRecord) bool { return a.ID == rec.ID }) >= 0 {
		return ErrDuplicateID
	}
	if indexOf(doc.Attendance, func(a domain.AttendanceRecord) bool {
		return a.UserID == rec.UserID && a.Date == rec.Date
	}) >= 0 {
		return ErrDuplicateAttendance
	}
	doc.Attendance = append(doc.Attendance, rec)
	return nil
}
