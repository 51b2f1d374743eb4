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

type ReviewHandler struct {
	svc *discussion.Service
}

func NewReviewHandler(svc *discussion.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// ListByProduct returns reviews for a product, newest first.
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID := utils.StringToUint(c.Param("id"))

	var reviews []models.Review
	db.DB.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(50).
		Find(&reviews)

	c.JSON(http.StatusOK, reviews)
}

// Detail returns one review with rendered body and its comment tree.
func (h *ReviewHandler) Detail(c *gin.Context) {
	rid := c.Param("rid")

	cacheKey := fmt.Sprintf("review:detail:%s", rid)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var review models.Review
	if err := db.DB.Preload("User").Preload("Product").Preload("Product.Brand").
		Where("rid = ?", rid).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}

	posts, err := h.svc.Posts(discussion.Scope{Kind: discussion.ScopeReview, ID: review.ID})
	if err != nil {
		FailDiscussion(c, err)
		return
	}
	comments := discussion.RenderTree(posts, discussion.ScopeReview, nil)

	payload := gin.H{
		"review":       review,
		"content_html": utils.RenderMarkdown(review.Content),
		"comments":     comments,
	}
	utils.GetCache().Set(cacheKey, payload, 5*time.Minute)
	c.JSON(http.StatusOK, payload)
}

type reviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	review := models.Review{
		Rid:       utils.RandStringBytesMaskImpr(8),
		ProductID: product.ID,
		UserID:    user.ID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := db.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	rid := c.Param("rid")

	var review models.Review
	if err := db.DB.Where("rid = ?", rid).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	if review.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Content = req.Content
	if err := db.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("review:detail:%s", rid))
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	rid := c.Param("rid")

	var review models.Review
	if err := db.DB.Where("rid = ?", rid).First(&review).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if review.UserID != user.ID {
		c.Status(http.StatusForbidden)
		return
	}

	// Hard delete; comment posts cascade with the review row.
	db.DB.Unscoped().Delete(&review)
	utils.GetCache().Delete(fmt.Sprintf("review:detail:%s", rid))

	c.Status(http.StatusNoContent)
}
