package handler

import (
	"log"

	"backend/dto"
	"backend/model"
	"backend/usecase"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *usecase.ChallengeService
}

func NewChallengeHandler(challengeService *usecase.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// GetChallenge returns the caller's full challenge blob, constructing
// defaults for new users.
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	data, err := h.challengeService.GetChallenge(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching challenge data for %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch challenge data")
		return
	}

	utils.Success(c, gin.H{"challenge": data})
}

// ReplaceChallenge accepts a full blob from the client and stores it with a
// fresh version stamp. Completion flags are rederived server-side.
func (h *ChallengeHandler) ReplaceChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var data model.ChallengeData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.BadRequest(c, "Invalid challenge data")
		return
	}

	if err := h.challengeService.ReplaceChallenge(c.Request.Context(), userID.(string), &data); err != nil {
		log.Printf("Error replacing challenge data for %s: %v", userID, err)
		utils.InternalError(c, "Failed to save challenge data")
		return
	}

	utils.Success(c, gin.H{
		"updated_at": data.UpdatedAt,
		"version":    data.Version,
	})
}

// GetToday returns today's daily record without materializing it.
func (h *ChallengeHandler) GetToday(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	rec, err := h.challengeService.GetToday(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching today's record for %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch today's record")
		return
	}

	utils.Success(c, gin.H{"day": rec})
}

// UpdateDay merges a partial record into one date. The body is permissive:
// unknown fields are ignored and bad numeric values coerce to zero, so a
// malformed tracker never loses a write.
func (h *ChallengeHandler) UpdateDay(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	date := c.Param("date")
	if !utils.ValidateDate(date) {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	data, err := h.challengeService.UpdateDailyField(c.Request.Context(), userID.(string), date, patch)
	if err != nil {
		log.Printf("Error updating day %s for %s: %v", date, userID, err)
		utils.InternalError(c, "Failed to update daily record")
		return
	}

	utils.Success(c, gin.H{"day": data.DailyData[date]})
}

// UpdateSupplements replaces the global supplements state and recomputes
// today's completion. Historical dates are unaffected: the flag has no
// per-day storage, so editing the past cannot satisfy the supplements
// activity retroactively.
func (h *ChallengeHandler) UpdateSupplements(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.UpdateSupplementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	data, err := h.challengeService.UpdateSupplements(c.Request.Context(), userID.(string), req.List, req.Taken)
	if err != nil {
		log.Printf("Error updating supplements for %s: %v", userID, err)
		utils.InternalError(c, "Failed to update supplements")
		return
	}

	utils.Success(c, gin.H{"supplements": data.Supplements})
}

// UpdateSettings merges a partial settings update and recomputes today's
// completion.
func (h *ChallengeHandler) UpdateSettings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	data, err := h.challengeService.UpdateUserSettings(c.Request.Context(), userID.(string), req)
	if err != nil {
		log.Printf("Error updating settings for %s: %v", userID, err)
		utils.InternalError(c, "Failed to update settings")
		return
	}

	utils.Success(c, gin.H{"settings": data.UserSettings})
}

// GetSummary returns the derived progress metrics in one call.
func (h *ChallengeHandler) GetSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	summary, err := h.challengeService.Summary(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error building summary for %s: %v", userID, err)
		utils.InternalError(c, "Failed to build summary")
		return
	}

	utils.Success(c, gin.H{"summary": summary})
}
