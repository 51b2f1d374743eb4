package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/models"
	"petlink/internal/utils"
)

type ProductHandler struct{}

func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// fillReviewStats fills the computed review count/average for products.
func fillReviewStats(products []models.Product) {
	if len(products) == 0 {
		return
	}

	productIDs := make([]uint, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	type statResult struct {
		ProductID uint
		Count     int
		Avg       float64
	}
	var results []statResult
	db.DB.Model(&models.Review{}).
		Select("product_id, COUNT(*) as count, AVG(rating) as avg").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&results)

	statMap := make(map[uint]statResult)
	for _, r := range results {
		statMap[r.ProductID] = r
	}
	for i := range products {
		s := statMap[products[i].ID]
		products[i].ReviewCount = s.Count
		products[i].AvgRating = s.Avg
	}
}

// List returns products, optionally filtered by category or search term.
func (h *ProductHandler) List(c *gin.Context) {
	q := db.DB.Preload("Brand").Order("name ASC").Limit(100)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var products []models.Product
	q.Find(&products)
	fillReviewStats(products)

	c.JSON(http.StatusOK, products)
}

// Detail returns one product with its review stats.
func (h *ProductHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var product models.Product
	if err := db.DB.Preload("Brand").First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	single := []models.Product{product}
	fillReviewStats(single)

	c.JSON(http.StatusOK, single[0])
}
