package main

import (
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"petlink/internal/config"
	"petlink/internal/db"
	"petlink/internal/models"
	"petlink/internal/utils"
)

// Fills the database with demo users, products, logs and discussions for
// local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	db.Init(conf.DatabaseURL)

	gofakeit.Seed(0)

	users := seedUsers(20)
	products := seedProducts(3)
	logs := seedLogs(users, products, 15)
	seedDiscussions(users, logs)

	log.Println("Seeding complete")
}

func seedUsers(n int) []models.User {
	hash, _ := utils.HashPassword("password123")
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username: gofakeit.Username(),
			Email:    gofakeit.Email(),
			Password: hash,
			Avatar:   utils.GetRandomEmoji(),
			Bio:      gofakeit.Sentence(8),
		}
		if err := db.DB.Create(&user).Error; err != nil {
			continue
		}
		users = append(users, user)
	}
	return users
}

func seedProducts(perBrand int) []models.Product {
	var brands []models.Brand
	db.DB.Find(&brands)

	categories := []models.ProductCategory{
		models.CategoryFeed, models.CategorySnack, models.CategorySupplement,
	}
	var products []models.Product
	for _, brand := range brands {
		for i := 0; i < perBrand; i++ {
			product := models.Product{
				BrandID:     brand.ID,
				Name:        gofakeit.ProductName(),
				Category:    categories[gofakeit.Number(0, len(categories)-1)],
				Description: gofakeit.Sentence(12),
			}
			if err := db.DB.Create(&product).Error; err != nil {
				continue
			}
			products = append(products, product)
		}
	}
	return products
}

func seedLogs(users []models.User, products []models.Product, n int) []models.PetLog {
	logs := make([]models.PetLog, 0, n)
	for i := 0; i < n; i++ {
		user := users[gofakeit.Number(0, len(users)-1)]
		petLog := models.PetLog{
			Lid:     utils.RandStringBytesMaskImpr(8),
			UserID:  user.ID,
			PetName: gofakeit.PetName(),
			PetKind: gofakeit.RandomString([]string{"dog", "cat", "hamster", "parrot"}),
			Title:   gofakeit.Sentence(5),
			Content: gofakeit.Paragraph(1, 3, 10, " "),
		}
		if len(products) > 0 && gofakeit.Bool() {
			id := products[gofakeit.Number(0, len(products)-1)].ID
			petLog.ProductID = &id
		}
		if err := db.DB.Create(&petLog).Error; err != nil {
			continue
		}
		logs = append(logs, petLog)
	}
	return logs
}

func seedDiscussions(users []models.User, logs []models.PetLog) {
	for _, petLog := range logs {
		// A few top-level comments with occasional replies
		var parent *uint
		for i := 0; i < gofakeit.Number(0, 4); i++ {
			user := users[gofakeit.Number(0, len(users)-1)]
			post := models.Post{
				Pid:      utils.RandStringBytesMaskImpr(8),
				LogID:    &petLog.ID,
				UserID:   user.ID,
				Kind:     models.KindComment,
				Content:  gofakeit.Sentence(10),
				ParentID: parent,
			}
			if err := db.DB.Create(&post).Error; err != nil {
				continue
			}
			parent = nil
			if gofakeit.Bool() {
				parent = &post.ID
			}
		}

		// One Q&A thread with an answer
		asker := users[gofakeit.Number(0, len(users)-1)]
		thread := models.Thread{
			LogID:  petLog.ID,
			Title:  gofakeit.Question(),
			UserID: asker.ID,
		}
		if err := db.DB.Create(&thread).Error; err != nil {
			continue
		}
		question := models.Post{
			Pid:      utils.RandStringBytesMaskImpr(8),
			ThreadID: &thread.ID,
			UserID:   asker.ID,
			Kind:     models.KindQuestion,
			Content:  gofakeit.Sentence(12),
		}
		if err := db.DB.Create(&question).Error; err != nil {
			continue
		}
		answerer := users[gofakeit.Number(0, len(users)-1)]
		answer := models.Post{
			Pid:      utils.RandStringBytesMaskImpr(8),
			ThreadID: &thread.ID,
			UserID:   answerer.ID,
			Kind:     models.KindAnswer,
			Content:  gofakeit.Sentence(15),
			ParentID: &question.ID,
		}
		db.DB.Create(&answer)
	}
}
