package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/models"
	"petlink/internal/utils"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile returns a user's public page: recent logs and reviews.
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var logs []models.PetLog
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(10).Find(&logs)

	var reviews []models.Review
	db.DB.Preload("Product").Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(10).Find(&reviews)

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"days_joined": utils.GetDaysSinceJoined(user.CreatedAt),
		"logs":        logs,
		"reviews":     reviews,
	})
}

type settingsRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

// UpdateSettings updates the session user's profile fields.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := CurrentUser(c)

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	user.Bio = req.Bio

	if err := db.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}
