package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestMigrateLegacyFields(t *testing.T) {
	target := floatPtr(2500)
	data := &ChallengeData{
		UserID:    "user-1",
		StartDate: "2024-01-01",
		DailyData: map[string]DailyRecord{
			"2024-01-01": {
				Date:     "2024-01-01",
				Calories: CaloriesRecord{Achieved: true, Target: target},
				Habit:    HabitRecord{Add: strPtr("read 10 pages")},
			},
			"2024-01-02": {
				Date:     "2024-01-02",
				Calories: CaloriesRecord{Achieved: false, Target: floatPtr(2200)},
				Habit:    HabitRecord{Remove: strPtr("   ")},
			},
		},
	}

	require.True(t, data.MigrateLegacyFields())
	require.NotNil(t, data.UserSettings)

	// Highest per-day target wins
	assert.Equal(t, 2500, data.UserSettings.CalorieTarget)
	assert.Equal(t, "read 10 pages", data.UserSettings.HabitDescription)

	// Legacy fields are gone and the flags survive
	day1 := data.DailyData["2024-01-01"]
	assert.Nil(t, day1.Calories.Target)
	assert.Nil(t, day1.Habit.Add)
	assert.Nil(t, day1.Habit.Remove)
	assert.True(t, day1.Calories.Achieved)
	assert.True(t, day1.Habit.Completed)

	// Whitespace-only habit text does not count as done
	day2 := data.DailyData["2024-01-02"]
	assert.False(t, day2.Habit.Completed)
	assert.False(t, day2.Calories.Achieved)
}

func TestMigrateLegacyFieldsIdempotent(t *testing.T) {
	data := &ChallengeData{
		UserID:    "user-1",
		StartDate: "2024-01-01",
		DailyData: map[string]DailyRecord{
			"2024-01-01": {
				Date:     "2024-01-01",
				Calories: CaloriesRecord{Target: floatPtr(3000)},
			},
		},
	}

	require.True(t, data.MigrateLegacyFields())
	first := *data.UserSettings

	assert.False(t, data.MigrateLegacyFields())
	assert.Equal(t, first, *data.UserSettings)
}

func TestMigrateLegacyFieldsNoopWhenSettingsPresent(t *testing.T) {
	settings := &UserSettings{CalorieTarget: 1800, HabitDescription: "meditate"}
	data := &ChallengeData{
		UserID:       "user-1",
		UserSettings: settings,
		DailyData: map[string]DailyRecord{
			"2024-01-01": {
				Date:     "2024-01-01",
				Calories: CaloriesRecord{Target: floatPtr(9000)},
			},
		},
	}

	assert.False(t, data.MigrateLegacyFields())
	assert.Equal(t, 1800, data.UserSettings.CalorieTarget)
	// Already-migrated blobs are never rewritten, even if stray legacy
	// fields linger
	assert.NotNil(t, data.DailyData["2024-01-01"].Calories.Target)
}

func TestMigrateLegacyFieldsDefaultsWithoutLegacyData(t *testing.T) {
	data := &ChallengeData{
		UserID:    "user-1",
		DailyData: map[string]DailyRecord{},
	}

	require.True(t, data.MigrateLegacyFields())
	assert.Equal(t, DefaultCalorieTarget, data.UserSettings.CalorieTarget)
	assert.Equal(t, "", data.UserSettings.HabitDescription)
}

func TestMigrateLegacyFieldsPrefersAddOverRemove(t *testing.T) {
	data := &ChallengeData{
		UserID: "user-1",
		DailyData: map[string]DailyRecord{
			"2024-01-01": {
				Date:  "2024-01-01",
				Habit: HabitRecord{Add: strPtr("journal"), Remove: strPtr("doomscrolling")},
			},
		},
	}

	require.True(t, data.MigrateLegacyFields())
	assert.Equal(t, "journal", data.UserSettings.HabitDescription)
	assert.True(t, data.DailyData["2024-01-01"].Habit.Completed)
}

func TestDefaultChallengeData(t *testing.T) {
	data := DefaultChallengeData("user-1", "2024-01-15")

	assert.Equal(t, "user-1", data.UserID)
	assert.Equal(t, "2024-01-15", data.StartDate)
	assert.Equal(t, 1, data.CurrentDay)
	assert.NotNil(t, data.DailyData)
	assert.NotNil(t, data.Supplements.List)
	require.NotNil(t, data.UserSettings)
	assert.Equal(t, DefaultCalorieTarget, data.UserSettings.CalorieTarget)
}
