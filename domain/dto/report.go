package dto

import "time"

type DailyReportResponse struct {
	TeamID     uint      `json:"teamId"`
	ReportDate time.Time `json:"reportDate"`

	TodoCount     int64 `json:"todoCount"`
	DoingCount    int64 `json:"doingCount"`
	ReviewCount   int64 `json:"reviewCount"`
	CompleteCount int64 `json:"completeCount"`
	ArchivedCount int64 `json:"archivedCount"`
	OverdueCount  int64 `json:"overdueCount"`
}
