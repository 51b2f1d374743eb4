package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/discussion"
	"petlink/internal/models"
	"petlink/internal/utils"
)

type PetLogHandler struct {
	svc *discussion.Service
}

func NewPetLogHandler(svc *discussion.Service) *PetLogHandler {
	return &PetLogHandler{svc: svc}
}

// List returns recent logs, optionally filtered to one user.
func (h *PetLogHandler) List(c *gin.Context) {
	page := 1
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		page = p
	}
	perPage := 30

	q := db.DB.Preload("User").Preload("Product").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage)
	if userID := utils.StringToUint(c.Query("user_id")); userID > 0 {
		q = q.Where("user_id = ?", userID)
	}

	var logs []models.PetLog
	q.Find(&logs)

	c.JSON(http.StatusOK, gin.H{"logs": logs, "page": page})
}

// Detail returns the log with its comment tree and Q&A thread list. This
// is the log detail drawer payload: everything the panel needs in one
// round trip.
func (h *PetLogHandler) Detail(c *gin.Context) {
	lid := c.Param("lid")

	cacheKey := fmt.Sprintf("petlog:detail:%s", lid)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var petLog models.PetLog
	if err := db.DB.Preload("User").Preload("Product").
		Where("lid = ?", lid).First(&petLog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}

	posts, err := h.svc.Posts(discussion.Scope{Kind: discussion.ScopeLog, ID: petLog.ID})
	if err != nil {
		FailDiscussion(c, err)
		return
	}
	comments := discussion.RenderTree(posts, discussion.ScopeLog, nil)

	threads, err := h.svc.Threads(petLog.ID)
	if err != nil {
		FailDiscussion(c, err)
		return
	}

	payload := gin.H{
		"log":      petLog,
		"comments": comments,
		"threads":  threads,
	}
	utils.GetCache().Set(cacheKey, payload, 5*time.Minute)
	c.JSON(http.StatusOK, payload)
}

type petLogRequest struct {
	PetName   string `json:"pet_name" binding:"required"`
	PetKind   string `json:"pet_kind"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	ProductID *uint  `json:"product_id"`
}

func (h *PetLogHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req petLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	petLog := models.PetLog{
		Lid:       utils.RandStringBytesMaskImpr(8),
		UserID:    user.ID,
		PetName:   req.PetName,
		PetKind:   req.PetKind,
		Title:     req.Title,
		Content:   req.Content,
		ProductID: req.ProductID,
	}
	if err := db.DB.Create(&petLog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, petLog)
}

func (h *PetLogHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	lid := c.Param("lid")

	var petLog models.PetLog
	if err := db.DB.Where("lid = ?", lid).First(&petLog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}
	if petLog.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}

	var req petLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	petLog.PetName = req.PetName
	petLog.PetKind = req.PetKind
	petLog.Title = req.Title
	petLog.Content = req.Content
	petLog.ProductID = req.ProductID
	if err := db.DB.Save(&petLog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", lid))
	c.JSON(http.StatusOK, petLog)
}

func (h *PetLogHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	lid := c.Param("lid")

	var petLog models.PetLog
	if err := db.DB.Where("lid = ?", lid).First(&petLog).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if petLog.UserID != user.ID {
		c.Status(http.StatusForbidden)
		return
	}

	// Hard delete; threads and posts cascade with the log row.
	db.DB.Unscoped().Delete(&petLog)
	utils.GetCache().Delete(fmt.Sprintf("petlog:detail:%s", lid))

	c.Status(http.StatusNoContent)
}
