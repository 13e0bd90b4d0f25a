package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Venturely backend running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Venturely API root"})
}
