package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/models"
	"petlink/internal/utils"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List returns the session user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var notifications []models.Notification
	db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)

	c.JSON(http.StatusOK, notifications)
}

// Read marks one notification as read.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("is_read", true)

	c.Status(http.StatusNoContent)
}

// ReadAll marks every notification as read.
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)

	c.Status(http.StatusNoContent)
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	db.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Notification{})

	c.Status(http.StatusNoContent)
}
