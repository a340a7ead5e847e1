package attendance

import "context"

// AttendanceService is the ledger plus the monthly aggregator. Writes are
// upserts keyed by (userID, date): at most one record per user per day.
type AttendanceService interface {
	RecordPresent(ctx context.Context, userID string, req PresentRequest) (Record, error)
	RecordAbsent(ctx context.Context, userID string, req AbsentRequest) (Record, error)
	RecordOffday(ctx context.Context, userID string, req OffdayRequest) (Record, error)
	RecordLeave(ctx context.Context, userID string, req LeaveRequest) (Record, error)

	// Delete removes every row matching (userID, date) in the day's month
	// partition and returns how many were removed. Duplicates left behind
	// by earlier races are all cleaned up.
	Delete(ctx context.Context, userID string, req DeleteRequest) (int, error)

	// Stats aggregates the user's month. An empty or missing month yields
	// zero counts, not an error. Month "" means the current month.
	Stats(ctx context.Context, userID string, month string) (MonthlyStats, error)

	// History returns the user's records for the month, most recent first.
	History(ctx context.Context, userID string, month string) ([]Record, error)

	// Months lists every month with an attendance partition, descending,
	// always including the current month.
	Months(ctx context.Context) ([]string, error)

	// CleanupDuplicates removes redundant rows sharing a (userID, date)
	// key across all attendance partitions, keeping the earliest row.
	CleanupDuplicates(ctx context.Context) (int, error)
}
