package middleware

import (
	"fmt"
	"time"

	"backend/model"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionRepository interface {
	CreateSession(*model.Session) error
	GetSession(string) (*model.Session, error)
	UpdateSession(*model.Session) error
	CountActiveSessions(string) (int, error)
}

func SessionMiddleware(sessionRepo SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(sessionID)
		if err != nil || session == nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		// Inactivity timeout (48 hours)
		if time.Since(session.LastActivityAt) > 48*time.Hour {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		session.LastActivityAt = time.Now()
		sessionRepo.UpdateSession(session)

		c.Set("session", session)
		c.Next()
	}
}

func CreateSession(c *gin.Context, userID string, sessionRepo SessionRepository) error {
	userAgent := c.Request.UserAgent()
	browser, _, device := utils.ParseUserAgent(userAgent)

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    fmt.Sprintf("%s (%s)", browser, device),
		DeviceInfo:     utils.DeviceInfo(userAgent),
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		LastActivityAt: time.Now(),
		IPAddress:      c.ClientIP(),
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(session); err != nil {
		return err
	}

	c.SetCookie(
		"session_id",
		session.SessionID,
		int(time.Until(session.ExpiresAt).Seconds()),
		"/",
		"",
		true,
		true,
	)

	return nil
}
