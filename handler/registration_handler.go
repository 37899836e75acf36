package handler

import (
	"log"

	"backend/dto"
	"backend/model"
	"backend/repository"
	"backend/services"
	"backend/usecase"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		utils.BadRequest(c, "Invalid request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	userService := &usecase.UserService{UserRepo: userRepo}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		TeamCode: req.TeamCode,
	}

	if err := userService.CreateUser(c.Request.Context(), user); err != nil {
		if err.Error() == "username already exists" {
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "username already exists")
			return
		}
		log.Printf("CreateUser error: %v", err)
		utils.TrackAuthAttempt("failure", "register")
		utils.BadRequest(c, "Invalid request")
		return
	}

	// A team code at signup joins the team straight away; failure to join
	// does not fail the registration.
	if req.TeamCode != "" {
		teamRepo := repository.GetTeamRepo(utils.MongoClient)
		member := model.TeamMember{UserID: user.UserID, Name: user.Username, Email: user.Email}
		if err := teamRepo.AddMember(c.Request.Context(), req.TeamCode, member); err != nil {
			log.Printf("Warning: Failed to join team %s at signup: %v", req.TeamCode, err)
		}
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"user_id": user.UserID,
		"token":   token,
		"refresh": refreshToken,
	})
}
