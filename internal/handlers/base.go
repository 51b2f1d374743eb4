package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"petlink/internal/discussion"
	"petlink/internal/middleware"
	"petlink/internal/models"
)

// CurrentUser returns the session user set by middleware.LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// ActorID returns the acting user's id, zero when not logged in. The
// discussion service treats zero as "auth required".
func ActorID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// FailDiscussion maps the discussion error taxonomy onto HTTP statuses.
// Every lifecycle failure is local to the discussion panel; nothing here
// is fatal.
func FailDiscussion(c *gin.Context, err error) {
	switch {
	case errors.Is(err, discussion.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, discussion.ErrAuthRequired):
		// Signal to the client to prompt login rather than hard-fail.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required", "login": true})
	case errors.Is(err, discussion.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, discussion.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, discussion.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		var se *discussion.StoreError
		if errors.As(err, &se) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "temporary failure, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
