package model

import "strings"

// MigrateLegacyFields upgrades a pre-userSettings blob in place and reports
// whether anything changed. Old blobs carried a calorie target and habit
// add/remove text on every daily record; those are lifted into the global
// UserSettings and the per-day objects collapse to their completion flags.
//
// The presence of UserSettings short-circuits the walk, so running the
// migration against an already-migrated blob is a no-op. Callers must
// persist the blob immediately when this returns true, because the legacy
// per-day fields are destroyed.
func (c *ChallengeData) MigrateLegacyFields() bool {
	if c.UserSettings != nil {
		return false
	}

	settings := &UserSettings{CalorieTarget: DefaultCalorieTarget}

	for date, day := range c.DailyData {
		if day.Calories.Target != nil {
			if int(*day.Calories.Target) > settings.CalorieTarget {
				settings.CalorieTarget = int(*day.Calories.Target)
			}
			day.Calories = CaloriesRecord{Achieved: day.Calories.Achieved}
		}

		if day.Habit.Add != nil || day.Habit.Remove != nil {
			habitText := ""
			if day.Habit.Add != nil {
				habitText = *day.Habit.Add
			}
			if habitText == "" && day.Habit.Remove != nil {
				habitText = *day.Habit.Remove
			}
			if habitText != "" && settings.HabitDescription == "" {
				settings.HabitDescription = habitText
			}

			completed := false
			if day.Habit.Add != nil && strings.TrimSpace(*day.Habit.Add) != "" {
				completed = true
			}
			if day.Habit.Remove != nil && strings.TrimSpace(*day.Habit.Remove) != "" {
				completed = true
			}
			day.Habit = HabitRecord{Completed: completed}
		}

		c.DailyData[date] = day
	}

	c.UserSettings = settings
	return true
}
