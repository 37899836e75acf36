package usecase

import (
	"context"
	"errors"
	"testing"

	"backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore errors for one user and defers to the wrapped store for
// everyone else.
type failingStore struct {
	inner    ChallengeStore
	failUser string
}

func (f *failingStore) Get(ctx context.Context, userID, today string) (*model.ChallengeData, error) {
	if userID == f.failUser {
		return nil, errors.New("connection reset")
	}
	return f.inner.Get(ctx, userID, today)
}

func (f *failingStore) Replace(ctx context.Context, data *model.ChallengeData) error {
	return f.inner.Replace(ctx, data)
}

func seedMember(store *memStore, userID string, completedDates []string, todayRec *model.DailyRecord) {
	daily := map[string]model.DailyRecord{}
	for _, date := range completedDates {
		rec := completeRecord(date)
		rec.Completed = true
		daily[date] = rec
	}
	if todayRec != nil {
		daily[todayRec.Date] = *todayRec
	}
	store.blobs[userID] = &model.ChallengeData{
		UserID:       userID,
		StartDate:    "2024-01-01",
		DailyData:    daily,
		Supplements:  model.Supplements{List: []string{}, Taken: true},
		UserSettings: &model.UserSettings{CalorieTarget: 2000},
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	store := newMemStore()
	svc := &LeaderboardService{Challenge: newTestService(store)}

	// alice: 3 completed days, but her most recent recorded day failed
	seedMember(store, "alice", []string{"2024-01-10", "2024-01-11", "2024-01-12"}, nil)
	store.blobs["alice"].DailyData["2024-01-13"] = model.DefaultDailyRecord("2024-01-13")
	// bob: 3 completed days ending today, streak 3
	seedMember(store, "bob", []string{"2024-01-13", "2024-01-14", "2024-01-15"}, nil)
	// carol: 1 completed day
	seedMember(store, "carol", []string{"2024-01-15"}, nil)

	team := &model.Team{
		TeamCode: "TEAM_TEST",
		Members: []model.TeamMember{
			{UserID: "carol", Name: "Carol"},
			{UserID: "alice", Name: "Alice"},
			{UserID: "bob", Name: "Bob"},
		},
	}

	entries := svc.Build(context.Background(), team)
	require.Len(t, entries, 3)

	// bob wins the completed-days tie on streak
	assert.Equal(t, "bob", entries[0].UserID)
	assert.Equal(t, "alice", entries[1].UserID)
	assert.Equal(t, "carol", entries[2].UserID)

	assert.Equal(t, 3, entries[0].CompletedDays)
	assert.Equal(t, 3, entries[0].CurrentStreak)
	assert.Equal(t, 0, entries[1].CurrentStreak)
	assert.InDelta(t, 3.0/90.0*100, entries[0].ProgressPercentage, 1e-9)
}

func TestLeaderboardTodayProgress(t *testing.T) {
	store := newMemStore()
	svc := &LeaderboardService{Challenge: newTestService(store)}

	partial := model.DefaultDailyRecord("2024-01-15")
	partial.Workout.Completed = true
	partial.Calories.Achieved = true
	seedMember(store, "alice", nil, &partial)

	// bob has no record for today at all
	seedMember(store, "bob", []string{"2024-01-10"}, nil)

	team := &model.Team{
		Members: []model.TeamMember{
			{UserID: "alice", Name: "Alice"},
			{UserID: "bob", Name: "Bob"},
		},
	}

	entries := svc.Build(context.Background(), team)
	require.Len(t, entries, 2)

	byUser := map[string]model.LeaderboardEntry{}
	for _, e := range entries {
		byUser[e.UserID] = e
	}

	// workout + calories + supplements (alice's global flag is on)
	assert.Equal(t, 3, byUser["alice"].TodayProgress)
	assert.Equal(t, 0, byUser["bob"].TodayProgress)
}

func TestLeaderboardSkipsFailingMembers(t *testing.T) {
	store := newMemStore()
	seedMember(store, "alice", []string{"2024-01-15"}, nil)

	svc := &LeaderboardService{
		Challenge: newTestService(&failingStore{inner: store, failUser: "bob"}),
	}

	team := &model.Team{
		Members: []model.TeamMember{
			{UserID: "alice", Name: "Alice"},
			{UserID: "bob", Name: "Bob"},
		},
	}

	entries := svc.Build(context.Background(), team)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].UserID)
}
