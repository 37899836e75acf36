package handler

import (
	"fmt"
	"strings"

	"backend/repository"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid access token")
		return
	}

	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	_, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		utils.Unauthorized(c, "Invalid access token")
		return
	}

	refreshToken := c.GetHeader("Refresh-Token")
	if refreshToken == "" {
		utils.BadRequest(c, "Missing refresh token")
		return
	}

	_, err = jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		utils.BadRequest(c, "Invalid refresh token")
		return
	}

	if err := services.BlacklistTokens(accessToken, refreshToken); err != nil {
		utils.InternalError(c, "Failed to logout")
		return
	}

	if sessionRepo != nil {
		if userID, exists := c.Get("user_id"); exists {
			if err := sessionRepo.EndAllUserSessions(userID.(string)); err != nil {
				utils.TrackError("database", "session_end_failed")
			}
		}
	}

	utils.TrackAuthAttempt("success", "logout")
	utils.Success(c, gin.H{
		"message": "Successfully logged out",
	})
}
