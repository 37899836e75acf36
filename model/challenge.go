package model

import "time"

// DateLayout is the key format for daily records.
const DateLayout = "2006-01-02"

// ChallengeLength is the number of days in the challenge.
const ChallengeLength = 90

// DefaultCalorieTarget is applied when a user has no settings yet.
const DefaultCalorieTarget = 2000

type CaloriesRecord struct {
	Achieved bool `bson:"achieved" json:"achieved"`
	// Target only exists on pre-migration blobs; it is lifted into
	// UserSettings and dropped from the per-day record.
	Target *float64 `bson:"target,omitempty" json:"target,omitempty"`
}

type WorkoutRecord struct {
	Completed   bool   `bson:"completed" json:"completed"`
	Description string `bson:"description" json:"description"`
}

type SleepRecord struct {
	Hours float64 `bson:"hours" json:"hours"`
}

type HabitRecord struct {
	Completed bool `bson:"completed" json:"completed"`
	// Add and Remove only exist on pre-migration blobs.
	Add    *string `bson:"add,omitempty" json:"add,omitempty"`
	Remove *string `bson:"remove,omitempty" json:"remove,omitempty"`
}

type LOIRecord struct {
	Submitted   bool   `bson:"submitted" json:"submitted"`
	Description string `bson:"description" json:"description"`
}

type GratitudeRecord struct {
	People []string `bson:"people" json:"people"`
}

type ConnectionRecord struct {
	Made bool   `bson:"made" json:"made"`
	Name string `bson:"name" json:"name"`
}

type PostRecord struct {
	Completed bool   `bson:"completed" json:"completed"`
	Link      string `bson:"link" json:"link"`
}

type PostsRecord struct {
	Reel  PostRecord `bson:"reel" json:"reel"`
	Story PostRecord `bson:"story" json:"story"`
}

// DailyRecord holds the nine tracked activities for one calendar date.
// Completed is derived from the activity fields and is never accepted
// from a caller as-is.
type DailyRecord struct {
	Date       string           `bson:"date" json:"date"`
	Calories   CaloriesRecord   `bson:"calories" json:"calories"`
	Workout    WorkoutRecord    `bson:"workout" json:"workout"`
	Sleep      SleepRecord      `bson:"sleep" json:"sleep"`
	Habit      HabitRecord      `bson:"habit" json:"habit"`
	LOI        LOIRecord        `bson:"loi" json:"loi"`
	Gratitude  GratitudeRecord  `bson:"gratitude" json:"gratitude"`
	Connection ConnectionRecord `bson:"connection" json:"connection"`
	Posts      PostsRecord      `bson:"posts" json:"posts"`
	Completed  bool             `bson:"completed" json:"completed"`
}

// Supplements is global state, not per-day: Taken reflects the most recent
// toggle and conventionally belongs to "today". Editing a historical date
// cannot change the supplements predicate for that date.
type Supplements struct {
	List  []string `bson:"list" json:"list"`
	Taken bool     `bson:"taken" json:"taken"`
}

type UserSettings struct {
	CalorieTarget    int    `bson:"calorieTarget" json:"calorieTarget"`
	HabitDescription string `bson:"habitDescription" json:"habitDescription"`
}

// ChallengeData is the per-user challenge blob, stored as a single document
// and replaced whole on every write.
type ChallengeData struct {
	UserID      string                 `bson:"user_id" json:"-"`
	StartDate   string                 `bson:"startDate" json:"startDate"`
	CurrentDay  int                    `bson:"currentDay" json:"currentDay"`
	DailyData   map[string]DailyRecord `bson:"dailyData" json:"dailyData"`
	Supplements Supplements            `bson:"supplements" json:"supplements"`
	// UserSettings is a pointer so its absence on a stored blob can gate
	// the legacy migration.
	UserSettings *UserSettings `bson:"userSettings,omitempty" json:"userSettings,omitempty"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
	Version      int64         `bson:"version" json:"version"`
}

// DefaultDailyRecord returns the zero-activity record for a date. Reads use
// it without persisting; a record is only materialized on first write.
func DefaultDailyRecord(date string) DailyRecord {
	return DailyRecord{
		Date:      date,
		Gratitude: GratitudeRecord{People: []string{}},
	}
}

// DefaultChallengeData returns a fresh challenge starting on the given date.
func DefaultChallengeData(userID, startDate string) *ChallengeData {
	return &ChallengeData{
		UserID:      userID,
		StartDate:   startDate,
		CurrentDay:  1,
		DailyData:   map[string]DailyRecord{},
		Supplements: Supplements{List: []string{}},
		UserSettings: &UserSettings{
			CalorieTarget: DefaultCalorieTarget,
		},
	}
}
