package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/models"
	"petlink/internal/utils"
)

type BrandHandler struct{}

func NewBrandHandler() *BrandHandler {
	return &BrandHandler{}
}

// ListBrands returns the brand directory.
func (h *BrandHandler) ListBrands(c *gin.Context) {
	cacheKey := "brand:list"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var brands []models.Brand
	db.DB.Order("name ASC").Find(&brands)

	utils.GetCache().Set(cacheKey, brands, 5*time.Minute)
	c.JSON(http.StatusOK, brands)
}

// Detail returns one brand with its products.
func (h *BrandHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var brand models.Brand
	if err := db.DB.First(&brand, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
		return
	}

	var products []models.Product
	db.DB.Where("brand_id = ?", brand.ID).Order("name ASC").Find(&products)
	fillReviewStats(products)

	c.JSON(http.StatusOK, gin.H{
		"brand":    brand,
		"products": products,
	})
}
