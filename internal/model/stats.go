package model

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	UserStats       []UserStats  `json:"userStats"`
	RoundStats      []RoundStats `json:"roundStats"`
	TotalUsers      int          `json:"totalUsers"`
	TotalRounds     int          `json:"totalRounds"`
	TotalExams      int          `json:"totalExams"`
	OverallAvgScore float64      `json:"overallAvgScore"`
}
