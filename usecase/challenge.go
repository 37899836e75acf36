package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"backend/config"
	"backend/dto"
	"backend/model"
	"backend/utils"
)

// ChallengeStore is the persistence surface the service needs: load a user's
// blob (defaults on miss) and replace it whole.
type ChallengeStore interface {
	Get(ctx context.Context, userID, today string) (*model.ChallengeData, error)
	Replace(ctx context.Context, data *model.ChallengeData) error
}

// ChallengeService owns the daily-completion aggregation: it rederives the
// per-day completed flag on every write and computes the progress metrics.
type ChallengeService struct {
	Store ChallengeStore

	// StrictStreak makes a missing calendar day break the streak. Off by
	// default: the walk only visits recorded days, so gaps are invisible.
	StrictStreak bool

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

func NewChallengeService(store ChallengeStore, cfg config.ChallengeConfig) *ChallengeService {
	return &ChallengeService{
		Store:        store,
		StrictStreak: cfg.StrictStreak,
	}
}

func (s *ChallengeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ChallengeService) today() string {
	return s.now().Format(model.DateLayout)
}

// CompletedCount evaluates the nine activity predicates against a daily
// record. The supplements flag is global state, passed in by the caller:
// write paths hand it the current flag, the weekly average only credits it
// for today's date.
func CompletedCount(d model.DailyRecord, supplementsTaken bool) int {
	count := 0
	if d.Calories.Achieved {
		count++
	}
	if d.Workout.Completed {
		count++
	}
	if d.Sleep.Hours >= 6 && d.Sleep.Hours <= 7 {
		count++
	}
	if supplementsTaken {
		count++
	}
	if d.Habit.Completed {
		count++
	}
	if d.LOI.Submitted {
		count++
	}
	if distinctCount(d.Gratitude.People) >= 2 {
		count++
	}
	if d.Connection.Made {
		count++
	}
	if d.Posts.Reel.Completed && d.Posts.Story.Completed {
		count++
	}
	return count
}

// DayCompleted reports whether all nine predicates hold.
func DayCompleted(d model.DailyRecord, supplementsTaken bool) bool {
	return CompletedCount(d, supplementsTaken) == 9
}

// ScoredValue is the averaging score for a day: the predicate count plus the
// bonus point for a perfect day, max 10.
func ScoredValue(d model.DailyRecord, supplementsTaken bool) int {
	count := CompletedCount(d, supplementsTaken)
	if count == 9 {
		count++
	}
	return count
}

func distinctCount(names []string) int {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		seen[name] = struct{}{}
	}
	return len(seen)
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// GetChallenge loads the user's blob with currentDay recomputed from the
// start date. Loading never writes except when the legacy migration fires
// inside the store.
func (s *ChallengeService) GetChallenge(ctx context.Context, userID string) (*model.ChallengeData, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	data, err := s.Store.Get(ctx, userID, s.today())
	if err != nil {
		return nil, err
	}

	data.CurrentDay = s.currentDay(data.StartDate)
	return data, nil
}

// GetToday returns today's record, or a computed default when nothing has
// been logged yet. The default is not persisted.
func (s *ChallengeService) GetToday(ctx context.Context, userID string) (model.DailyRecord, error) {
	data, err := s.GetChallenge(ctx, userID)
	if err != nil {
		return model.DailyRecord{}, err
	}

	today := s.today()
	if rec, ok := data.DailyData[today]; ok {
		return rec, nil
	}
	return model.DefaultDailyRecord(today), nil
}

// UpdateDailyField merges a partial record into the given date and rederives
// that date's completed flag. Other dates are untouched. Unknown patch keys
// are ignored and the derived completed flag cannot be set from the patch.
func (s *ChallengeService) UpdateDailyField(ctx context.Context, userID, date string, patch map[string]interface{}) (*model.ChallengeData, error) {
	if !utils.ValidateDate(date) {
		return nil, errors.New("invalid date")
	}

	data, err := s.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec, ok := data.DailyData[date]
	if !ok {
		rec = model.DefaultDailyRecord(date)
	}

	applyDailyPatch(&rec, patch)
	rec.Date = date

	wasCompleted := rec.Completed
	rec.Completed = DayCompleted(rec, data.Supplements.Taken)
	if rec.Completed && !wasCompleted {
		utils.TrackPerfectDay()
	}

	data.DailyData[date] = rec
	utils.TrackChallengeOperation("update_day")

	if err := s.Store.Replace(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// UpdateSupplements replaces the global supplements state and rederives
// completion for today only. The flag is date-agnostic in storage but the UI
// ties it to "today"; historical dates keep whatever completed value their
// last recompute produced.
func (s *ChallengeService) UpdateSupplements(ctx context.Context, userID string, list []string, taken bool) (*model.ChallengeData, error) {
	data, err := s.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []string{}
	}
	data.Supplements = model.Supplements{List: dedupe(list), Taken: taken}

	today := s.today()
	rec, ok := data.DailyData[today]
	if !ok {
		rec = model.DefaultDailyRecord(today)
	}
	rec.Completed = DayCompleted(rec, taken)
	data.DailyData[today] = rec

	utils.TrackChallengeOperation("update_supplements")

	if err := s.Store.Replace(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// UpdateUserSettings merges a partial settings update. A habit description
// changing to non-empty marks today's habit complete; a prior true value is
// never forced back to false.
func (s *ChallengeService) UpdateUserSettings(ctx context.Context, userID string, patch dto.UpdateSettingsRequest) (*model.ChallengeData, error) {
	data, err := s.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data.UserSettings == nil {
		data.UserSettings = &model.UserSettings{CalorieTarget: model.DefaultCalorieTarget}
	}
	if patch.CalorieTarget != nil {
		data.UserSettings.CalorieTarget = *patch.CalorieTarget
	}
	if patch.HabitDescription != nil {
		data.UserSettings.HabitDescription = *patch.HabitDescription
	}

	today := s.today()
	rec, ok := data.DailyData[today]
	if !ok {
		rec = model.DefaultDailyRecord(today)
	}

	habitCompleted := rec.Habit.Completed
	if patch.HabitDescription != nil && strings.TrimSpace(*patch.HabitDescription) != "" {
		habitCompleted = true
	}
	rec.Habit = model.HabitRecord{Completed: habitCompleted}

	rec.Completed = DayCompleted(rec, data.Supplements.Taken)
	data.DailyData[today] = rec

	utils.TrackChallengeOperation("update_settings")

	if err := s.Store.Replace(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ReplaceChallenge is the client-sync path: the incoming blob wins whole,
// with a fresh version stamp. Completion flags are rederived from the
// activity fields rather than trusted from the wire.
func (s *ChallengeService) ReplaceChallenge(ctx context.Context, userID string, data *model.ChallengeData) error {
	if data == nil {
		return errors.New("challenge data is required")
	}

	data.UserID = userID
	if !utils.ValidateDate(data.StartDate) {
		data.StartDate = s.today()
	}
	if data.DailyData == nil {
		data.DailyData = map[string]model.DailyRecord{}
	}
	if data.Supplements.List == nil {
		data.Supplements.List = []string{}
	}
	data.Supplements.List = dedupe(data.Supplements.List)
	if data.UserSettings == nil {
		data.UserSettings = &model.UserSettings{CalorieTarget: model.DefaultCalorieTarget}
	}

	for date, rec := range data.DailyData {
		if rec.Gratitude.People == nil {
			rec.Gratitude.People = []string{}
		}
		rec.Date = date
		rec.Completed = DayCompleted(rec, data.Supplements.Taken)
		data.DailyData[date] = rec
	}

	data.CurrentDay = s.currentDay(data.StartDate)
	utils.TrackChallengeOperation("replace")

	return s.Store.Replace(ctx, data)
}

// CompletedDays counts fully completed days across the whole challenge.
func (s *ChallengeService) CompletedDays(data *model.ChallengeData) int {
	count := 0
	for _, rec := range data.DailyData {
		if rec.Completed {
			count++
		}
	}
	return count
}

// CurrentStreak walks recorded days from the most recent backwards and
// counts consecutive completed ones. In the default mode unrecorded days are
// skipped, not treated as breaks; StrictStreak stops at the first calendar
// gap.
func (s *ChallengeService) CurrentStreak(data *model.ChallengeData) int {
	dates := make([]string, 0, len(data.DailyData))
	for date := range data.DailyData {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	streak := 0
	var prev time.Time
	for i, date := range dates {
		day, err := time.Parse(model.DateLayout, date)
		if err != nil {
			break
		}
		if s.StrictStreak && i > 0 && prev.Sub(day) > 24*time.Hour {
			break
		}
		if !data.DailyData[date].Completed {
			break
		}
		streak++
		prev = day
	}
	return streak
}

// WeeklyAverage averages the scored value (count plus bonus, max 10) over
// the 7 calendar days ending today. Days without a record are excluded from
// both sides of the average; the supplements predicate is only credited for
// today, since the flag belongs to today by convention.
func (s *ChallengeService) WeeklyAverage(data *model.ChallengeData) float64 {
	today := s.today()
	total := 0
	daysWithData := 0

	for i := 0; i < 7; i++ {
		date := s.now().AddDate(0, 0, -i).Format(model.DateLayout)
		rec, ok := data.DailyData[date]
		if !ok {
			continue
		}

		supplementsTaken := false
		if date == today {
			supplementsTaken = data.Supplements.Taken
		}

		total += ScoredValue(rec, supplementsTaken)
		daysWithData++
	}

	if daysWithData == 0 {
		return 0
	}
	return float64(total) / float64(daysWithData)
}

// WeeklyLOICount counts LOI submissions in the current calendar week,
// starting Sunday local time.
func (s *ChallengeService) WeeklyLOICount(data *model.ChallengeData) int {
	now := s.now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format(model.DateLayout)

	count := 0
	for date, rec := range data.DailyData {
		if date >= weekStart && rec.LOI.Submitted {
			count++
		}
	}
	return count
}

// Summary computes the full progress rollup in one load.
func (s *ChallengeService) Summary(ctx context.Context, userID string) (*dto.ChallengeSummary, error) {
	data, err := s.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	todayRec, ok := data.DailyData[today]
	if !ok {
		todayRec = model.DefaultDailyRecord(today)
	}
	todayCount := CompletedCount(todayRec, data.Supplements.Taken)
	completedDays := s.CompletedDays(data)

	return &dto.ChallengeSummary{
		CurrentDay:         data.CurrentDay,
		CompletedDays:      completedDays,
		CurrentStreak:      s.CurrentStreak(data),
		WeeklyAverage:      s.WeeklyAverage(data),
		WeeklyLOICount:     s.WeeklyLOICount(data),
		TodayCount:         todayCount,
		BonusEarned:        todayCount == 9,
		ProgressPercentage: float64(completedDays) / float64(model.ChallengeLength) * 100,
	}, nil
}

func (s *ChallengeService) currentDay(startDate string) int {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return 1
	}
	today, err := time.Parse(model.DateLayout, s.today())
	if err != nil {
		return 1
	}

	day := int(today.Sub(start).Hours()/24) + 1
	if day < 1 {
		return 1
	}
	if day > model.ChallengeLength {
		return model.ChallengeLength
	}
	return day
}

// applyDailyPatch replaces each named sub-object present in the patch.
// Unknown keys and the derived completed flag are ignored; values of the
// wrong type coerce to their zero value rather than failing the write.
func applyDailyPatch(rec *model.DailyRecord, patch map[string]interface{}) {
	for key, value := range patch {
		sub, ok := value.(map[string]interface{})
		if !ok {
			continue
		}

		switch key {
		case "calories":
			rec.Calories = model.CaloriesRecord{Achieved: asBool(sub["achieved"])}
		case "workout":
			rec.Workout = model.WorkoutRecord{
				Completed:   asBool(sub["completed"]),
				Description: asString(sub["description"]),
			}
		case "sleep":
			rec.Sleep = model.SleepRecord{Hours: asFloat(sub["hours"])}
		case "habit":
			rec.Habit = model.HabitRecord{Completed: asBool(sub["completed"])}
		case "loi":
			rec.LOI = model.LOIRecord{
				Submitted:   asBool(sub["submitted"]),
				Description: asString(sub["description"]),
			}
		case "gratitude":
			rec.Gratitude = model.GratitudeRecord{People: asStringSlice(sub["people"])}
		case "connection":
			rec.Connection = model.ConnectionRecord{
				Made: asBool(sub["made"]),
				Name: asString(sub["name"]),
			}
		case "posts":
			rec.Posts = model.PostsRecord{
				Reel:  asPost(sub["reel"]),
				Story: asPost(sub["story"]),
			}
		}
	}
}

func asPost(value interface{}) model.PostRecord {
	sub, ok := value.(map[string]interface{})
	if !ok {
		return model.PostRecord{}
	}
	return model.PostRecord{
		Completed: asBool(sub["completed"]),
		Link:      asString(sub["link"]),
	}
}

func asBool(value interface{}) bool {
	b, _ := value.(bool)
	return b
}

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

// asFloat coerces JSON numbers and numeric strings; anything else is 0.
func asFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asStringSlice(value interface{}) []string {
	raw, ok := value.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
