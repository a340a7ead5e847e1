package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/portalbd/employee-portal-go/internal/domain/attendance"
	"github.com/portalbd/employee-portal-go/internal/domain/profile"
	"github.com/portalbd/employee-portal-go/internal/pkg/dateutil"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
	"github.com/portalbd/employee-portal-go/internal/pkg/validator"
)

// Overtime thresholds, hours inclusive. Crossing the first adds the tiffin
// bill to the day's earnings, crossing the second additionally adds the
// night allowance.
const (
	TiffinOTHours = 5.0
	NightOTHours  = 7.0
)

// Hours credited for a worked day when the request does not say otherwise.
const DefaultWorkHours = 8.0

type AttendanceServiceImpl struct {
	store    rowstore.Store
	profiles profile.ProfileService
	now      func() time.Time

	// One mutex per month partition. Scan-then-write against the same
	// partition must not interleave or upserts turn into duplicates.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAttendanceService(store rowstore.Store, profiles profile.ProfileService) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		store:    store,
		profiles: profiles,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *AttendanceServiceImpl) partitionLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// RecordPresent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPresent(ctx context.Context, userID string, req attendance.PresentRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	date, err := dateutil.Normalize(req.Date)
	if err != nil {
		return attendance.Record{}, err
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !p.Complete {
		return attendance.Record{}, profile.ErrProfileNotFound
	}

	workHours := req.WorkHours
	if workHours == 0 {
		workHours = DefaultWorkHours
	}

	// Fridays are off days worked: only the overtime is paid. Any other
	// day pays the full daily gross plus overtime.
	earned := req.OTHours * p.OTRate
	if !req.IsFriday {
		earned += p.DailyGross()
	}
	if req.OTHours >= TiffinOTHours {
		earned += p.TiffinBill
	}
	if req.OTHours >= NightOTHours {
		earned += p.NightAllowance
	}

	details := "Regular Work"
	if req.IsFriday {
		details = "Friday Work"
	}

	rec := attendance.Record{
		UserID:     userID,
		Date:       date,
		Status:     attendance.StatusPresent,
		WorkHours:  workHours,
		OTHours:    req.OTHours,
		TotalHours: workHours + req.OTHours,
		Earned:     earned,
		Details:    details,
	}
	if err := s.upsert(ctx, rec); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// RecordAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAbsent(ctx context.Context, userID string, req attendance.AbsentRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	date, err := dateutil.Normalize(req.Date)
	if err != nil {
		return attendance.Record{}, err
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !p.Complete {
		return attendance.Record{}, profile.ErrProfileNotFound
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "No reason provided"
	}

	rec := attendance.Record{
		UserID:    userID,
		Date:      date,
		Status:    attendance.StatusAbsent,
		Deduction: p.BasicSalary / 30,
		Details:   reason,
	}
	if err := s.upsert(ctx, rec); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// RecordOffday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordOffday(ctx context.Context, userID string, req attendance.OffdayRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	return s.recordRestDay(ctx, userID, req.Date, attendance.StatusOffday, req.Type, "offday")
}

// RecordLeave implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordLeave(ctx context.Context, userID string, req attendance.LeaveRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	return s.recordRestDay(ctx, userID, req.Date, attendance.StatusLeave, req.Type, "leave")
}

// Offdays and leaves carry no money either way. They need no profile, so a
// new user can backfill their calendar before setting up salary details.
func (s *AttendanceServiceImpl) recordRestDay(ctx context.Context, userID, rawDate string, status attendance.Status, kind, defaultKind string) (attendance.Record, error) {
	date, err := dateutil.Normalize(rawDate)
	if err != nil {
		return attendance.Record{}, err
	}

	details := strings.TrimSpace(kind)
	if details == "" {
		details = defaultKind
	}

	rec := attendance.Record{
		UserID:  userID,
		Date:    date,
		Status:  status,
		Details: details,
	}
	if err := s.upsert(ctx, rec); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

func (s *AttendanceServiceImpl) upsert(ctx context.Context, rec attendance.Record) error {
	name := attendance.PartitionName(dateutil.MonthOf(rec.Date))

	lock := s.partitionLock(name)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.EnsurePartition(ctx, name, attendance.PartitionHeader); err != nil {
		return fmt.Errorf("failed to ensure attendance partition: %w", err)
	}

	rows, err := s.store.ScanRows(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to scan attendance: %w", err)
	}

	row := toRow(rec, s.now())
	for i, existing := range rows {
		if matches(existing, rec.UserID, rec.Date) {
			if err := s.store.UpdateRow(ctx, name, i, row); err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
			slog.Info("Attendance record replaced", "user_id", rec.UserID, "date", rec.Date, "status", rec.Status)
			return nil
		}
	}

	if err := s.store.AppendRow(ctx, name, row); err != nil {
		return fmt.Errorf("failed to append attendance record: %w", err)
	}
	slog.Info("Attendance record created", "user_id", rec.UserID, "date", rec.Date, "status", rec.Status)
	return nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, userID string, req attendance.DeleteRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	date, err := dateutil.Normalize(req.Date)
	if err != nil {
		return 0, err
	}
	name := attendance.PartitionName(dateutil.MonthOf(date))

	lock := s.partitionLock(name)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.store.ScanRows(ctx, name)
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return 0, attendance.ErrNoRecordsForMonth
		}
		return 0, fmt.Errorf("failed to scan attendance: %w", err)
	}

	var indexes []int
	for i, row := range rows {
		if matches(row, userID, date) {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return 0, attendance.ErrRecordNotFound
	}

	// Delete back to front so earlier indexes stay valid while rows shift.
	for i := len(indexes) - 1; i >= 0; i-- {
		if err := s.store.DeleteRow(ctx, name, indexes[i]); err != nil {
			return 0, fmt.Errorf("failed to delete attendance record: %w", err)
		}
	}
	slog.Info("Attendance records deleted", "user_id", userID, "date", date, "count", len(indexes))
	return len(indexes), nil
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, userID string, month string) (attendance.MonthlyStats, error) {
	if month == "" {
		month = dateutil.CurrentMonth()
	}
	if !dateutil.IsValidMonth(month) {
		return attendance.MonthlyStats{}, dateutil.ErrInvalidDate
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return attendance.MonthlyStats{}, fmt.Errorf("failed to load profile: %w", err)
	}

	var stats attendance.MonthlyStats
	records, err := s.monthRecords(ctx, userID, month)
	if err != nil {
		return attendance.MonthlyStats{}, err
	}

	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			stats.PresentDays++
			stats.TotalOTHours += rec.OTHours
		case attendance.StatusAbsent:
			stats.AbsentDays++
			stats.TotalDeduction += rec.Deduction
		}
	}

	// Overtime pay is always valued at the rate in force now, not the rate
	// when each day was written. Changing the rate mid-month revalues the
	// whole month's overtime.
	if p.Complete {
		stats.TotalOTAmount = stats.TotalOTHours * p.OTRate
		if stats.AbsentDays == 0 {
			stats.PresentBonus = p.PresentBonus
		}
	}
	return stats, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID string, month string) ([]attendance.Record, error) {
	if month == "" {
		month = dateutil.CurrentMonth()
	}
	if !dateutil.IsValidMonth(month) {
		return nil, dateutil.ErrInvalidDate
	}

	records, err := s.monthRecords(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records, nil
}

func (s *AttendanceServiceImpl) monthRecords(ctx context.Context, userID, month string) ([]attendance.Record, error) {
	rows, err := s.store.ScanRows(ctx, attendance.PartitionName(month))
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return []attendance.Record{}, nil
		}
		return nil, fmt.Errorf("failed to scan attendance: %w", err)
	}

	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		if !sameUser(row.Cell(attendance.ColUserID), userID) {
			continue
		}
		records = append(records, fromRow(row))
	}
	return records, nil
}

// Months implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Months(ctx context.Context) ([]string, error) {
	names, err := s.store.ListPartitions(ctx, attendance.PartitionPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance partitions: %w", err)
	}

	current := dateutil.CurrentMonth()
	seen := map[string]bool{current: true}
	months := []string{current}
	for _, name := range names {
		month, ok := attendance.MonthOfPartition(name)
		if !ok || seen[month] {
			continue
		}
		seen[month] = true
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// CleanupDuplicates implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CleanupDuplicates(ctx context.Context) (int, error) {
	names, err := s.store.ListPartitions(ctx, attendance.PartitionPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance partitions: %w", err)
	}

	total := 0
	for _, name := range names {
		if _, ok := attendance.MonthOfPartition(name); !ok {
			continue
		}
		removed, err := s.cleanupPartition(ctx, name)
		if err != nil {
			return total, err
		}
		total += removed
	}
	if total > 0 {
		slog.Info("Duplicate attendance records removed", "count", total)
	}
	return total, nil
}

// The first row written for a (user, date) key wins, every later copy goes.
func (s *AttendanceServiceImpl) cleanupPartition(ctx context.Context, name string) (int, error) {
	lock := s.partitionLock(name)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.store.ScanRows(ctx, name)
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan attendance: %w", err)
	}

	seen := make(map[string]bool)
	var dups []int
	for i, row := range rows {
		key := recordKey(row.Cell(attendance.ColUserID), row.Cell(attendance.ColDate))
		if seen[key] {
			dups = append(dups, i)
			continue
		}
		seen[key] = true
	}

	for i := len(dups) - 1; i >= 0; i-- {
		if err := s.store.DeleteRow(ctx, name, dups[i]); err != nil {
			return 0, fmt.Errorf("failed to delete duplicate record: %w", err)
		}
	}
	return len(dups), nil
}

func sameUser(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func matches(row rowstore.Row, userID, date string) bool {
	if !sameUser(row.Cell(attendance.ColUserID), userID) {
		return false
	}
	stored, err := dateutil.Normalize(row.Cell(attendance.ColDate))
	if err != nil {
		return false
	}
	return stored == date
}

func recordKey(userID, date string) string {
	normalized, err := dateutil.Normalize(date)
	if err != nil {
		normalized = strings.TrimSpace(date)
	}
	return strings.ToLower(strings.TrimSpace(userID)) + "|" + normalized
}

func toRow(rec attendance.Record, now time.Time) rowstore.Row {
	return rowstore.Row{
		strings.TrimSpace(rec.UserID),
		rec.Date,
		string(rec.Status),
		validator.FormatNumber(rec.WorkHours),
		validator.FormatNumber(rec.OTHours),
		validator.FormatNumber(rec.TotalHours),
		validator.FormatNumber(rec.Earned),
		validator.FormatNumber(rec.Deduction),
		rec.Details,
		now.Format(time.RFC3339),
	}
}

func fromRow(row rowstore.Row) attendance.Record {
	return attendance.Record{
		UserID:     row.Cell(attendance.ColUserID),
		Date:       row.Cell(attendance.ColDate),
		Status:     attendance.Status(row.Cell(attendance.ColStatus)),
		WorkHours:  validator.ToNumber(row.Cell(attendance.ColWorkHours)),
		OTHours:    validator.ToNumber(row.Cell(attendance.ColOTHours)),
		TotalHours: validator.ToNumber(row.Cell(attendance.ColTotalHours)),
		Earned:     validator.ToNumber(row.Cell(attendance.ColEarned)),
		Deduction:  validator.ToNumber(row.Cell(attendance.ColDeduction)),
		Details:    row.Cell(attendance.ColDetails),
	}
}
