package usecase

import (
	"context"
	"log"
	"sort"

	"backend/model"
)

// LeaderboardService ranks a team's members by their challenge progress.
type LeaderboardService struct {
	Challenge *ChallengeService
}

// Build computes one entry per team member from their challenge blob.
// Members whose data cannot be loaded are skipped rather than failing the
// whole board. Ordering is completed days descending, current streak as the
// tiebreak.
func (svc *LeaderboardService) Build(ctx context.Context, team *model.Team) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(team.Members))

	today := svc.Challenge.today()
	for _, member := range team.Members {
		data, err := svc.Challenge.GetChallenge(ctx, member.UserID)
		if err != nil {
			log.Printf("Skipping leaderboard entry for user %s: %v", member.UserID, err)
			continue
		}

		todayProgress := 0
		if rec, ok := data.DailyData[today]; ok {
			todayProgress = CompletedCount(rec, data.Supplements.Taken)
		}

		completedDays := svc.Challenge.CompletedDays(data)
		entries = append(entries, model.LeaderboardEntry{
			UserID:             member.UserID,
			Name:               member.Name,
			Email:              member.Email,
			CompletedDays:      completedDays,
			CurrentStreak:      svc.Challenge.CurrentStreak(data),
			TodayProgress:      todayProgress,
			ProgressPercentage: float64(completedDays) / float64(model.ChallengeLength) * 100,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CompletedDays != entries[j].CompletedDays {
			return entries[i].CompletedDays > entries[j].CompletedDays
		}
		return entries[i].CurrentStreak > entries[j].CurrentStreak
	})

	return entries
}
