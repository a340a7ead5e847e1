package attendance

import (
	"fmt"
	"regexp"
	"strings"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOffday  Status = "offday"
	StatusLeave   Status = "leave"
)

// Record is one user's ledger entry for one day. The (UserID, Date) pair is
// unique within a month partition; re-recording the same day replaces the
// stored row.
type Record struct {
	UserID     string  `json:"-"`
	Date       string  `json:"date"`
	Status     Status  `json:"status"`
	WorkHours  float64 `json:"workHours"`
	OTHours    float64 `json:"otHours"`
	TotalHours float64 `json:"totalHours"`
	Earned     float64 `json:"earned"`
	Deduction  float64 `json:"deduction"`
	Details    string  `json:"details"`
}

// MonthlyStats summarizes one user's month. PresentBonus is the full
// profile bonus when the month has zero absences, otherwise 0.
type MonthlyStats struct {
	PresentDays    int     `json:"presentDays"`
	AbsentDays     int     `json:"absentDays"`
	TotalOTHours   float64 `json:"totalOTHours"`
	TotalOTAmount  float64 `json:"totalOTAmount"`
	TotalDeduction float64 `json:"totalDeduction"`
	PresentBonus   float64 `json:"presentBonus"`
}

// Attendance rows are partitioned by calendar month into Attendance_YYYY_MM
// buckets.
const PartitionPrefix = "Attendance_"

var partitionRegex = regexp.MustCompile(`^Attendance_(\d{4})_(\d{2})$`)

// PartitionName maps a YYYY-MM month key to its partition name.
func PartitionName(month string) string {
	return PartitionPrefix + strings.Replace(month, "-", "_", 1)
}

// MonthOfPartition extracts the YYYY-MM month key from a partition name.
func MonthOfPartition(name string) (string, bool) {
	m := partitionRegex.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s-%s", m[1], m[2]), true
}

const (
	ColUserID = iota
	ColDate
	ColStatus
	ColWorkHours
	ColOTHours
	ColTotalHours
	ColEarned
	ColDeduction
	ColDetails
	ColCreated
)

var PartitionHeader = []string{
	"UserID", "Date", "Status", "WorkHours", "OTHours", "TotalHours",
	"Earned", "Deduction", "Details", "Created",
}
