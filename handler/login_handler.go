package handler

import (
	"log"

	"backend/dto"
	"backend/middleware"
	"backend/repository"
	"backend/services"
	"backend/usecase"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

func LoginHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	var loginReq dto.LoginRequest

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	userService := &usecase.UserService{UserRepo: userRepo}

	user, err := userService.FindUserByUsername(loginReq.Username)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid username")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid username")
		return
	}

	checkPassword, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil || !checkPassword {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Incorrect Password")
		return
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

	if sessionRepo != nil {
		if err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
			log.Printf("Warning: Failed to create session: %v", err)
		}
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
	})
}
