package dto

type UpdateSupplementsRequest struct {
	List  []string `json:"list"`
	Taken bool     `json:"taken"`
}

// UpdateSettingsRequest is a partial update; nil fields are left untouched.
type UpdateSettingsRequest struct {
	CalorieTarget    *int    `json:"calorieTarget"`
	HabitDescription *string `json:"habitDescription"`
}

// ChallengeSummary is the one-call progress rollup behind the overview UI.
type ChallengeSummary struct {
	CurrentDay         int     `json:"current_day"`
	CompletedDays      int     `json:"completed_days"`
	CurrentStreak      int     `json:"current_streak"`
	WeeklyAverage      float64 `json:"weekly_average"`
	WeeklyLOICount     int     `json:"weekly_loi_count"`
	TodayCount         int     `json:"today_count"`
	BonusEarned        bool    `json:"bonus_earned"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
