package handler

import (
	"log"
	"strconv"
	"strings"
	"time"

	"backend/dto"
	"backend/model"
	"backend/repository"
	"backend/usecase"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamRepo    *repository.TeamRepo
	userRepo    *repository.UserRepo
	leaderboard *usecase.LeaderboardService
}

func NewTeamHandler(teamRepo *repository.TeamRepo, userRepo *repository.UserRepo, leaderboard *usecase.LeaderboardService) *TeamHandler {
	return &TeamHandler{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		leaderboard: leaderboard,
	}
}

func generateTeamCode(now time.Time) string {
	return "TEAM_" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

func (h *TeamHandler) memberFor(userID string) model.TeamMember {
	member := model.TeamMember{UserID: userID}
	if user, err := h.userRepo.FindUser(userID); err == nil && user != nil {
		member.Name = user.Username
		member.Email = user.Email
	}
	return member
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Team name is required")
		return
	}

	team := &model.Team{
		TeamCode:    generateTeamCode(time.Now()),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID.(string),
		CreatedAt:   time.Now(),
		Members:     []model.TeamMember{h.memberFor(userID.(string))},
		MemberCount: 1,
	}

	if err := h.teamRepo.CreateTeam(c.Request.Context(), team); err != nil {
		log.Printf("Error creating team for %s: %v", userID, err)
		utils.InternalError(c, "Failed to create team")
		return
	}

	if err := h.userRepo.UpdateUserTeam(userID.(string), team.TeamCode); err != nil {
		log.Printf("Warning: Failed to record team for user %s: %v", userID, err)
	}

	utils.Created(c, gin.H{"team": team, "team_code": team.TeamCode})
}

func (h *TeamHandler) JoinTeam(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Team code is required")
		return
	}

	team, err := h.teamRepo.FindTeamByCode(c.Request.Context(), req.TeamCode)
	if err != nil {
		log.Printf("Error finding team %s: %v", req.TeamCode, err)
		utils.InternalError(c, "Failed to find team")
		return
	}
	if team == nil {
		utils.NotFound(c, "Team not found")
		return
	}

	if err := h.teamRepo.AddMember(c.Request.Context(), req.TeamCode, h.memberFor(userID.(string))); err != nil {
		utils.Conflict(c, "Already a member of this team")
		return
	}

	if err := h.userRepo.UpdateUserTeam(userID.(string), req.TeamCode); err != nil {
		log.Printf("Warning: Failed to record team for user %s: %v", userID, err)
	}

	team, err = h.teamRepo.FindTeamByCode(c.Request.Context(), req.TeamCode)
	if err != nil || team == nil {
		utils.InternalError(c, "Failed to load team")
		return
	}

	utils.Success(c, gin.H{"team": team})
}

// GetTeam returns the team plus its leaderboard, ranked by completed days
// then current streak.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	_, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	teamCode := c.Param("code")
	team, err := h.teamRepo.FindTeamByCode(c.Request.Context(), teamCode)
	if err != nil {
		log.Printf("Error finding team %s: %v", teamCode, err)
		utils.InternalError(c, "Failed to find team")
		return
	}
	if team == nil {
		utils.NotFound(c, "Team not found")
		return
	}

	entries := h.leaderboard.Build(c.Request.Context(), team)

	utils.Success(c, gin.H{
		"team":        team,
		"leaderboard": entries,
	})
}
