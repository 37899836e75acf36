package model

import "time"

type TeamMember struct {
	UserID string `bson:"user_id" json:"user_id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
}

type Team struct {
	TeamCode    string       `bson:"team_code" json:"team_code"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description" json:"description"`
	CreatedBy   string       `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	Members     []TeamMember `bson:"members" json:"members"`
	MemberCount int          `bson:"member_count" json:"member_count"`
}

// LeaderboardEntry is one member's standing, derived from their challenge
// blob. Ordering is completed days first, current streak as the tiebreak.
type LeaderboardEntry struct {
	UserID             string  `json:"user_id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	CompletedDays      int     `json:"completed_days"`
	CurrentStreak      int     `json:"current_streak"`
	TodayProgress      int     `json:"today_progress"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
