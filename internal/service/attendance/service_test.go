package attendance

import (
	"context"
	"sync"
	"testing"

	"github.com/portalbd/employee-portal-go/internal/domain/attendance"
	"github.com/portalbd/employee-portal-go/internal/domain/profile"
	"github.com/portalbd/employee-portal-go/internal/pkg/dateutil"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
	profileService "github.com/portalbd/employee-portal-go/internal/service/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Gross 15000 for a clean 500/day, basic 9000 for a clean 300 deduction.
var testProfile = profile.SetupRequest{
	Name:        "Rahim",
	BasicSalary: 9000, HouseRent: 3300,
	Medical: 750, Transport: 450, Food: 1500,
	OTRate: 60, TiffinBill: 50, NightAllowance: 200, PresentBonus: 700,
}

func newTestService(t *testing.T) (attendance.AttendanceService, *rowstore.MemoryStore) {
	t.Helper()
	store := rowstore.NewMemoryStore()
	profiles := profileService.NewProfileService(store)
	require.NoError(t, profiles.Setup(context.Background(), "emp-1", testProfile))
	return NewAttendanceService(store, profiles), store
}

func TestRecordPresentRegularDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	rec, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, 8.0, rec.WorkHours, "work hours default to a full shift")
	assert.Equal(t, 8.0, rec.TotalHours)
	assert.InDelta(t, 500.0, rec.Earned, 1e-9, "a regular day earns exactly the daily gross")
	assert.Equal(t, 0.0, rec.Deduction)
	assert.Equal(t, "Regular Work", rec.Details)
}

func TestRecordPresentFridayPaysOvertimeOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	rec, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-01", IsFriday: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rec.Earned, 1e-9, "a Friday with no overtime earns nothing")
	assert.Equal(t, "Friday Work", rec.Details)

	rec, err = svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-08", IsFriday: true, OTHours: 7})
	require.NoError(t, err)
	// 7h × 60 + tiffin 50 + night 200, no daily gross.
	assert.InDelta(t, 670.0, rec.Earned, 1e-9)
}

func TestRecordPresentOvertimeThresholds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := []struct {
		ot     float64
		earned float64
	}{
		{4, 500 + 240},            // below tiffin threshold
		{5, 500 + 300 + 50},       // tiffin threshold is inclusive
		{6, 500 + 360 + 50},       // tiffin only
		{7, 500 + 420 + 50 + 200}, // night threshold is inclusive
		{8, 500 + 480 + 50 + 200},
	}
	for _, c := range cases {
		rec, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: c.ot})
		require.NoError(t, err)
		assert.InDelta(t, c.earned, rec.Earned, 1e-9, "ot %v hours", c.ot)
	}
}

func TestRecordPresentRequiresProfile(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemoryStore()
	svc := NewAttendanceService(store, profileService.NewProfileService(store))

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04"})
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestRecordPresentInvalidDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, date := range []string{"04-05-2026", "2026/05/04", "yesterday"} {
		_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: date})
		assert.ErrorIs(t, err, dateutil.ErrInvalidDate, "date %q", date)
	}
}

func TestUpsertReplacesSameDay(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: 2})
	require.NoError(t, err)
	_, err = svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: 6})
	require.NoError(t, err)
	// A status change on the same day also replaces in place.
	_, err = svc.RecordAbsent(ctx, "emp-1", attendance.AbsentRequest{Date: "2026-05-04"})
	require.NoError(t, err)

	rows, err := store.ScanRows(ctx, attendance.PartitionName("2026-05"))
	require.NoError(t, err)
	require.Len(t, rows, 1, "same-day writes must replace, not accumulate")
	assert.Equal(t, string(attendance.StatusAbsent), rows[0].Cell(attendance.ColStatus))
}

func TestUpsertMatchesDespiteCaseAndTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	name := attendance.PartitionName("2026-05")
	require.NoError(t, store.EnsurePartition(ctx, name, attendance.PartitionHeader))
	// A row written by an older client: padded id, odd case, datetime cell.
	require.NoError(t, store.AppendRow(ctx, name, rowstore.Row{
		" EMP-1 ", "2026-05-04T00:00:00Z", "present", "8", "0", "8", "500", "0", "", "",
	}))

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: 3})
	require.NoError(t, err)

	rows, err := store.ScanRows(ctx, name)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0].Cell(attendance.ColOTHours))
}

func TestRecordAbsentDeduction(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	rec, err := svc.RecordAbsent(ctx, "emp-1", attendance.AbsentRequest{Date: "2026-05-04", Reason: "sick"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.InDelta(t, 300.0, rec.Deduction, 1e-9, "deduction is basic/30")
	assert.Equal(t, 0.0, rec.Earned)
	assert.Equal(t, "sick", rec.Details)

	rec, err = svc.RecordAbsent(ctx, "emp-1", attendance.AbsentRequest{Date: "2026-05-05"})
	require.NoError(t, err)
	assert.Equal(t, "No reason provided", rec.Details)
}

func TestRecordOffdayAndLeaveNeedNoProfile(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemoryStore()
	svc := NewAttendanceService(store, profileService.NewProfileService(store))

	rec, err := svc.RecordOffday(ctx, "emp-1", attendance.OffdayRequest{Date: "2026-05-01"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOffday, rec.Status)
	assert.Equal(t, "offday", rec.Details)
	assert.Equal(t, 0.0, rec.Earned)

	rec, err = svc.RecordLeave(ctx, "emp-1", attendance.LeaveRequest{Date: "2026-05-02", Type: "casual"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, rec.Status)
	assert.Equal(t, "casual", rec.Details)
}

func TestDeleteRemovesAllDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04"})
	require.NoError(t, err)
	_, err = svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-05"})
	require.NoError(t, err)

	// Duplicates appended behind the service's back, as a lost race would.
	name := attendance.PartitionName("2026-05")
	require.NoError(t, store.AppendRow(ctx, name, rowstore.Row{
		"emp-1", "2026-05-04", "present", "8", "0", "8", "500", "0", "", "",
	}))
	require.NoError(t, store.AppendRow(ctx, name, rowstore.Row{
		"EMP-1", "2026-05-04", "absent", "0", "0", "0", "0", "300", "", "",
	}))

	count, err := svc.Delete(ctx, "emp-1", attendance.DeleteRequest{Date: "2026-05-04"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	rows, err := store.ScanRows(ctx, name)
	require.NoError(t, err)
	require.Len(t, rows, 1, "the other day's record survives")
	assert.Equal(t, "2026-05-05", rows[0].Cell(attendance.ColDate))
}

func TestDeleteErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Delete(ctx, "emp-1", attendance.DeleteRequest{Date: "2026-05-04"})
	assert.ErrorIs(t, err, attendance.ErrNoRecordsForMonth)

	_, err = svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-05"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "emp-1", attendance.DeleteRequest{Date: "2026-05-04"})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: 3})
	require.NoError(t, err)
	_, err = svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-05", OTHours: 5})
	require.NoError(t, err)
	_, err = svc.RecordOffday(ctx, "emp-1", attendance.OffdayRequest{Date: "2026-05-01"})
	require.NoError(t, err)

	// Another user's rows in the same partition must not leak in.
	_, err = svc.RecordOffday(ctx, "emp-2", attendance.OffdayRequest{Date: "2026-05-04"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "emp-1", "2026-05")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.InDelta(t, 8.0, stats.TotalOTHours, 1e-9)
	assert.InDelta(t, 480.0, stats.TotalOTAmount, 1e-9)
	assert.Equal(t, 0.0, stats.TotalDeduction)
	assert.Equal(t, 700.0, stats.PresentBonus, "a clean month pays the full bonus")
}

func TestStatsBonusForfeitedByAbsence(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04"})
	require.NoError(t, err)
	_, err = svc.RecordAbsent(ctx, "emp-1", attendance.AbsentRequest{Date: "2026-05-05"})
	require.NoError(t, err)
	_, err = svc.RecordAbsent(ctx, "emp-1", attendance.AbsentRequest{Date: "2026-05-06"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "emp-1", "2026-05")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.AbsentDays)
	assert.InDelta(t, 600.0, stats.TotalDeduction, 1e-9)
	assert.Equal(t, 0.0, stats.PresentBonus, "one absence forfeits the whole bonus")
}

func TestStatsEmptyMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	stats, err := svc.Stats(ctx, "emp-1", "2026-04")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.Equal(t, 0.0, stats.TotalOTAmount)
	assert.Equal(t, 700.0, stats.PresentBonus, "zero absences in an empty month still pays the bonus")
}

func TestStatsUsesCurrentOvertimeRate(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemoryStore()
	profiles := profileService.NewProfileService(store)
	require.NoError(t, profiles.Setup(ctx, "emp-1", testProfile))
	svc := NewAttendanceService(store, profiles)

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: 4})
	require.NoError(t, err)

	raised := testProfile
	raised.OTRate = 90
	require.NoError(t, profiles.Setup(ctx, "emp-1", raised))

	stats, err := svc.Stats(ctx, "emp-1", "2026-05")
	require.NoError(t, err)
	assert.InDelta(t, 360.0, stats.TotalOTAmount, 1e-9, "overtime is revalued at the current rate")
}

func TestStatsInvalidMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Stats(ctx, "emp-1", "May 2026")
	assert.ErrorIs(t, err, dateutil.ErrInvalidDate)
}

func TestHistoryOrdering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, date := range []string{"2026-05-03", "2026-05-10", "2026-05-05"} {
		_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: date})
		require.NoError(t, err)
	}

	records, err := svc.History(ctx, "emp-1", "2026-05")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-05-10", records[0].Date)
	assert.Equal(t, "2026-05-05", records[1].Date)
	assert.Equal(t, "2026-05-03", records[2].Date)
}

func TestHistoryEmptyMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	records, err := svc.History(ctx, "emp-1", "2026-04")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMonthsAlwaysIncludesCurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	months, err := svc.Months(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, months)
	assert.Equal(t, dateutil.CurrentMonth(), months[0])
}

func TestMonthsDescending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, date := range []string{"2023-01-05", "2023-06-05", "2022-12-05"} {
		_, err := svc.RecordOffday(ctx, "emp-1", attendance.OffdayRequest{Date: date})
		require.NoError(t, err)
	}

	months, err := svc.Months(ctx)
	require.NoError(t, err)
	require.Len(t, months, 4)
	assert.Equal(t, dateutil.CurrentMonth(), months[0])
	assert.Equal(t, []string{"2023-06", "2023-01", "2022-12"}, months[1:])
}

func TestCleanupDuplicatesKeepsFirstRow(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04"})
	require.NoError(t, err)
	_, err = svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-05"})
	require.NoError(t, err)

	may := attendance.PartitionName("2026-05")
	require.NoError(t, store.AppendRow(ctx, may, rowstore.Row{
		"EMP-1", "2026-05-04T10:00:00Z", "absent", "0", "0", "0", "0", "300", "", "",
	}))
	require.NoError(t, store.AppendRow(ctx, may, rowstore.Row{
		"emp-1", "2026-05-04", "present", "8", "2", "10", "620", "0", "", "",
	}))

	_, err = svc.RecordOffday(ctx, "emp-1", attendance.OffdayRequest{Date: "2026-04-03"})
	require.NoError(t, err)
	april := attendance.PartitionName("2026-04")
	require.NoError(t, store.AppendRow(ctx, april, rowstore.Row{
		"emp-1", "2026-04-03", "offday", "0", "0", "0", "0", "0", "offday", "",
	}))

	removed, err := svc.CleanupDuplicates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	rows, err := store.ScanRows(ctx, may)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, string(attendance.StatusPresent), rows[0].Cell(attendance.ColStatus), "the earliest row survives")

	rows, err = store.ScanRows(ctx, april)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestConcurrentSameDayWrites(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(ot float64) {
			defer wg.Done()
			_, err := svc.RecordPresent(ctx, "emp-1", attendance.PresentRequest{Date: "2026-05-04", OTHours: ot})
			assert.NoError(t, err)
		}(float64(i))
	}
	wg.Wait()

	rows, err := store.ScanRows(ctx, attendance.PartitionName("2026-05"))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "racing same-day writes must still leave one row")
}
