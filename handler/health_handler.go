package handler

import (
	"context"
	"time"

	"backend/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness plus basic system load. Mongo
// connectivity is checked with a short timeout so the endpoint stays fast.
func HealthHandler(c *gin.Context) {
	status := "ok"

	if utils.MongoClient != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := utils.MongoClient.Ping(ctx, nil); err != nil {
			status = "degraded"
		}
	}

	utils.Success(c, gin.H{
		"status":         status,
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
