package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/model"
	"backend/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memChallengeStore struct {
	blobs map[string]*model.ChallengeData
}

func newMemChallengeStore() *memChallengeStore {
	return &memChallengeStore{blobs: map[string]*model.ChallengeData{}}
}

func (m *memChallengeStore) Get(ctx context.Context, userID, today string) (*model.ChallengeData, error) {
	if data, ok := m.blobs[userID]; ok {
		return data, nil
	}
	return model.DefaultChallengeData(userID, today), nil
}

func (m *memChallengeStore) Replace(ctx context.Context, data *model.ChallengeData) error {
	data.UpdatedAt = time.Now()
	data.Version = data.UpdatedAt.UnixMilli()
	m.blobs[data.UserID] = data
	return nil
}

var handlerTestNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// newChallengeRouter wires the challenge routes behind a stub auth layer that
// injects a fixed user ID.
func newChallengeRouter(store *memChallengeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := &usecase.ChallengeService{
		Store: store,
		Now:   func() time.Time { return handlerTestNow },
	}
	h := NewChallengeHandler(svc)

	router := gin.New()
	authed := router.Group("/api/challenge", func(c *gin.Context) {
		c.Set("user_id", "test-user")
	})
	authed.GET("/", h.GetChallenge)
	authed.POST("/", h.ReplaceChallenge)
	authed.GET("/today", h.GetToday)
	authed.GET("/summary", h.GetSummary)
	authed.PATCH("/day/:date", h.UpdateDay)
	authed.PUT("/supplements", h.UpdateSupplements)
	authed.PUT("/settings", h.UpdateSettings)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestGetChallengeNewUser(t *testing.T) {
	router := newChallengeRouter(newMemChallengeStore())

	w, body := doJSON(t, router, http.MethodGet, "/api/challenge/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	challenge := body["data"].(map[string]interface{})["challenge"].(map[string]interface{})
	assert.Equal(t, "2024-01-15", challenge["startDate"])
	assert.Equal(t, float64(1), challenge["currentDay"])
	assert.NotContains(t, challenge, "user_id")
}

func TestUpdateDayHappyPath(t *testing.T) {
	store := newMemChallengeStore()
	router := newChallengeRouter(store)

	w, body := doJSON(t, router, http.MethodPatch, "/api/challenge/day/2024-01-10", gin.H{
		"workout": gin.H{"completed": true, "description": "push day"},
		"sleep":   gin.H{"hours": 6.5},
	})
	require.Equal(t, http.StatusOK, w.Code)

	day := body["data"].(map[string]interface{})["day"].(map[string]interface{})
	assert.Equal(t, true, day["workout"].(map[string]interface{})["completed"])
	assert.Equal(t, 6.5, day["sleep"].(map[string]interface{})["hours"])
	assert.Equal(t, false, day["completed"])

	stored := store.blobs["test-user"]
	require.NotNil(t, stored)
	assert.True(t, stored.DailyData["2024-01-10"].Workout.Completed)
}

func TestUpdateDayRejectsBadDate(t *testing.T) {
	router := newChallengeRouter(newMemChallengeStore())

	w, body := doJSON(t, router, http.MethodPatch, "/api/challenge/day/10-01-2024", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "Invalid date")
}

func TestUpdateDayRejectsBadBody(t *testing.T) {
	router := newChallengeRouter(newMemChallengeStore())

	req := httptest.NewRequest(http.MethodPatch, "/api/challenge/day/2024-01-10", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSupplements(t *testing.T) {
	store := newMemChallengeStore()
	router := newChallengeRouter(store)

	w, body := doJSON(t, router, http.MethodPut, "/api/challenge/supplements", gin.H{
		"list":  []string{"creatine", "creatine", "omega-3"},
		"taken": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	supplements := body["data"].(map[string]interface{})["supplements"].(map[string]interface{})
	assert.Equal(t, true, supplements["taken"])
	assert.Equal(t, []interface{}{"creatine", "omega-3"}, supplements["list"])

	// Today is materialized by the write
	stored := store.blobs["test-user"]
	require.NotNil(t, stored)
	_, ok := stored.DailyData["2024-01-15"]
	assert.True(t, ok)
}

func TestUpdateSettings(t *testing.T) {
	store := newMemChallengeStore()
	router := newChallengeRouter(store)

	w, body := doJSON(t, router, http.MethodPut, "/api/challenge/settings", gin.H{
		"calorieTarget":    2500,
		"habitDescription": "read 10 pages",
	})
	require.Equal(t, http.StatusOK, w.Code)

	settings := body["data"].(map[string]interface{})["settings"].(map[string]interface{})
	assert.Equal(t, float64(2500), settings["calorieTarget"])
	assert.Equal(t, "read 10 pages", settings["habitDescription"])

	// Setting a habit marks today's habit complete
	stored := store.blobs["test-user"]
	require.NotNil(t, stored)
	assert.True(t, stored.DailyData["2024-01-15"].Habit.Completed)
}

func TestReplaceChallenge(t *testing.T) {
	store := newMemChallengeStore()
	router := newChallengeRouter(store)

	w, body := doJSON(t, router, http.MethodPost, "/api/challenge/", gin.H{
		"startDate": "2024-01-01",
		"dailyData": gin.H{
			"2024-01-05": gin.H{
				"date":      "2024-01-05",
				"completed": true, // must be rederived, not trusted
				"workout":   gin.H{"completed": true},
			},
		},
		"supplements": gin.H{"list": []string{"zinc"}, "taken": true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]interface{})
	assert.Greater(t, data["version"].(float64), float64(0))

	stored := store.blobs["test-user"]
	require.NotNil(t, stored)
	assert.False(t, stored.DailyData["2024-01-05"].Completed)
	assert.Equal(t, 15, stored.CurrentDay)
}

func TestGetSummary(t *testing.T) {
	store := newMemChallengeStore()
	router := newChallengeRouter(store)

	w, body := doJSON(t, router, http.MethodGet, "/api/challenge/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := body["data"].(map[string]interface{})["summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["current_day"])
	assert.Equal(t, float64(0), summary["completed_days"])
	assert.Equal(t, float64(0), summary["today_count"])
	assert.Equal(t, false, summary["bonus_earned"])
}

func TestGetTodayDefaults(t *testing.T) {
	store := newMemChallengeStore()
	router := newChallengeRouter(store)

	w, body := doJSON(t, router, http.MethodGet, "/api/challenge/today", nil)
	require.Equal(t, http.StatusOK, w.Code)

	day := body["data"].(map[string]interface{})["day"].(map[string]interface{})
	assert.Equal(t, "2024-01-15", day["date"])
	assert.Equal(t, false, day["completed"])

	// Reads never persist
	assert.Empty(t, store.blobs)
}

func TestChallengeRoutesRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &usecase.ChallengeService{Store: newMemChallengeStore()}
	h := NewChallengeHandler(svc)

	router := gin.New()
	router.GET("/api/challenge/", h.GetChallenge)

	req := httptest.NewRequest(http.MethodGet, "/api/challenge/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
