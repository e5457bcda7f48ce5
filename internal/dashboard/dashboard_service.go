package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dashboarderrors "github.com/krushit1307/HRMS/internal/dashboard/errors"
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/shared/contextutil"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SummaryKeyPrefix = "dashboard:summary:"
	summaryCacheTTL  = 30 * time.Second
)

// SummaryKey is the cache key of one day's organization counts. prefix is the
// deployment's Redis prefix (REDIS_PREFIX).
func SummaryKey(prefix, date string) string {
	return prefix + SummaryKeyPrefix + date
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, actor domain.Actor) (SummaryResponse, error)
}

type service struct {
	repo      Repository
	rdb       *redis.Client
	keyPrefix string
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

// NewService builds the dashboard service. rdb may be nil, which disables caching of
// the organization counts; keyPrefix is put in front of every cache key. now defaults
// to time.Now.
func NewService(repo Repository, rdb *redis.Client, keyPrefix string, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, rdb: rdb, keyPrefix: keyPrefix, sf: &singleflight.Group{}, now: now, logger: l}
}

func (s *service) Summary(ctx context.Context, actor domain.Actor) (SummaryResponse, error) {
	date := s.now().Format(domain.DateLayout)
	resp := SummaryResponse{Date: date, Role: actor.Role}

	if actor.Role.IsPrivileged() {
		org, err := s.organization(ctx, date)
		if err != nil {
			s.logger.Error("organization summary failed",
				append(contextutil.ExtractMetadata(ctx).Fields(), zap.Error(err))...)
			return SummaryResponse{}, mapStoreError(err)
		}
		resp.Organization = &org
	}

	me, err := s.personal(ctx, actor.UserID, date)
	if err != nil {
		return SummaryResponse{}, mapStoreError(err)
	}
	resp.Me = me
	return resp, nil
}

// organization is the same for every privileged caller on a given day, so concurrent
// requests share one computation and the result is cached briefly in Redis.
func (s *service) organization(ctx context.Context, date string) (OrganizationSummary, error) {
	key := SummaryKey(s.keyPrefix, date)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var org OrganizationSummary
			if json.Unmarshal([]byte(cached), &org) == nil {
				return org, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		// Outlives the request of the caller that started it.
		ctx := context.WithoutCancel(ctx)
		org, err := s.computeOrganization(ctx, date)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if b, err := json.Marshal(org); err == nil {
				if err := s.rdb.Set(ctx, key, string(b), summaryCacheTTL).Err(); err != nil {
					s.logger.Warn("cache dashboard summary failed", zap.Error(err))
				}
			}
		}
		return org, nil
	})
	if err != nil {
		return OrganizationSummary{}, err
	}
	return v.(OrganizationSummary), nil
}

func (s *service) computeOrganization(ctx context.Context, date string) (OrganizationSummary, error) {
	counts, err := s.repo.RoleCounts(ctx)
	if err != nil {
		return OrganizationSummary{}, err
	}
	present, err := s.repo.CountAttendance(ctx, date, domain.AttendancePresent)
	if err != nil {
		return OrganizationSummary{}, err
	}
	late, err := s.repo.CountAttendance(ctx, date, domain.AttendanceLate)
	if err != nil {
		return OrganizationSummary{}, err
	}
	onLeave, err := s.repo.OnLeaveCount(ctx, date)
	if err != nil {
		return OrganizationSummary{}, err
	}
	pending, err := s.repo.LeavesByStatus(ctx, domain.LeavePending)
	if err != nil {
		return OrganizationSummary{}, err
	}

	employees := counts[domain.RoleEmployee]
	return OrganizationSummary{
		TotalEmployees: employees,
		RoleCounts:     counts,
		PresentToday:   present,
		LateToday:      late,
		OnLeaveToday:   onLeave,
		AbsentToday:    max(0, employees-present-late-onLeave),
		PendingLeaves:  len(pending),
	}, nil
}

func (s *service) personal(ctx context.Context, userID, date string) (PersonalSummary, error) {
	var me PersonalSummary

	rec, err := s.repo.FindTodayAttendance(ctx, userID, date)
	switch {
	case err == nil:
		me.CheckedInToday = rec.CheckIn != "" && rec.CheckIn != "-"
		me.CheckedOutToday = rec.CheckedOut()
	case !errors.Is(err, store.ErrNotFound):
		return PersonalSummary{}, fmt.Errorf("today attendance: %w", err)
	}

	totals, err := s.repo.AttendanceTotals(ctx, userID)
	if err != nil {
		return PersonalSummary{}, err
	}
	me.DaysPresent = totals.DaysPresent
	me.WorkHours = domain.FormatDuration(totals.Worked)

	leaves, err := s.repo.LeavesByOwner(ctx, userID)
	if err != nil {
		return PersonalSummary{}, err
	}
	for _, l := range leaves {
		if l.Status == domain.LeavePending {
			me.PendingLeaves++
		}
	}

	if me.ApprovedLeaveDays, err = s.repo.ApprovedLeaveDays(ctx, userID); err != nil {
		return PersonalSummary{}, err
	}
	if me.LeaveBalances, err = s.repo.LeaveBalances(ctx, userID); err != nil {
		return PersonalSummary{}, err
	}
	return me, nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrCorruptStore):
		return apperror.Wrap(err, apperror.ErrStoreUnavailable.Code, apperror.ErrStoreUnavailable.Message, apperror.ErrStoreUnavailable.HTTPStatus)
	}
	return apperror.Wrap(err, dashboarderrors.ErrSummaryUnavailable.Code, dashboarderrors.ErrSummaryUnavailable.Message, dashboarderrors.ErrSummaryUnavailable.HTTPStatus)
}
