package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petlink/internal/db"
	"petlink/internal/models"
	"petlink/internal/utils"
)

type FavoriteHandler struct{}

func NewFavoriteHandler() *FavoriteHandler {
	return &FavoriteHandler{}
}

// Toggle adds or removes a product favorite for the session user.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	user := CurrentUser(c)
	productID := utils.StringToUint(c.Param("id"))

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var fav models.Favorite
	err := db.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&fav).Error
	if err == nil {
		db.DB.Delete(&fav)
		c.JSON(http.StatusOK, gin.H{"favorited": false})
		return
	}

	db.DB.Create(&models.Favorite{UserID: user.ID, ProductID: product.ID})
	c.JSON(http.StatusOK, gin.H{"favorited": true})
}

// List returns the session user's favorited products.
func (h *FavoriteHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var favs []models.Favorite
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&favs)

	productIDs := make([]uint, len(favs))
	for i, f := range favs {
		productIDs[i] = f.ProductID
	}

	var products []models.Product
	if len(productIDs) > 0 {
		db.DB.Preload("Brand").Where("id IN ?", productIDs).Find(&products)
	}
	c.JSON(http.StatusOK, products)
}
