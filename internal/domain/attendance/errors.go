package attendance

import "errors"

var (
	ErrNoRecordsForMonth = errors.New("no records for this month")
	ErrRecordNotFound    = errors.New("attendance record not found")
)
